// Package cli is the command-line adapter: it wires configuration, catalog
// sources and the resolver behind cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msgsource/internal/application"
	"msgsource/internal/config"
	"msgsource/internal/domain"
	"msgsource/internal/domain/entities"
	"msgsource/internal/infrastructure/database"
	"msgsource/internal/infrastructure/formatcache"
	"msgsource/internal/infrastructure/i18n"
	"msgsource/internal/infrastructure/metrics"
	"msgsource/internal/ports/output"
	"msgsource/pkg/logger"
)

// App holds the state shared by all commands of one invocation.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	builtin   *entities.CatalogSet
	ui        *i18n.Translator
	reg       *prometheus.Registry
	collector *metrics.Collector
	out       io.Writer
	errOut    io.Writer

	lang        string
	dir         string
	basenames   []string
	source      string
	showMetrics bool
}

// NewApp creates an App writing command output to out and failures to errOut.
func NewApp(out, errOut io.Writer) (*App, error) {
	builtin, err := i18n.LoadBuiltin(context.Background(), nil)
	if err != nil {
		return nil, fmt.Errorf("cli: load builtin catalogs: %w", err)
	}
	reg := prometheus.NewRegistry()
	return &App{
		logger:    zap.NewNop(),
		builtin:   builtin,
		ui:        i18n.NewTranslator(application.NewMessageCatalogResolver(builtin), "", nil),
		reg:       reg,
		collector: metrics.NewCollector(reg),
		out:       out,
		errOut:    errOut,
	}, nil
}

// RootCommand builds the msgsource command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "msgsource",
		Short:         "Resolve localized messages from catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if !a.showMetrics {
				return nil
			}
			return a.printMetrics()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.dir, "dir", "", "directory holding catalog files (MESSAGES_DIR)")
	flags.StringArrayVar(&a.basenames, "basename", nil, "catalog base name, repeatable (MESSAGES_BASENAME)")
	flags.StringVar(&a.source, "source", "", "catalog source: files or database (MESSAGES_SOURCE)")
	flags.StringVar(&a.lang, "lang", "", "language of the tool's own output")
	flags.BoolVar(&a.showMetrics, "metrics", false, "print resolution counters after the command")

	root.AddCommand(
		a.resolveCommand(),
		a.listCommand(),
		a.importCommand(),
		a.migrateCommand(),
	)
	return root
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	app, err := NewApp(out, errOut)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	root := app.RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		app.logger.Debug("cli: command failed", zap.Error(err))
		fmt.Fprintln(errOut, app.ui.Error(app.lang, err))
		return 1
	}
	return 0
}

// setup loads the environment configuration and applies flag overrides.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.MessagesDir = a.dir
	}
	if flags.Changed("basename") {
		cfg.Basenames = a.basenames
	}
	if flags.Changed("source") {
		cfg.Source = strings.ToLower(strings.TrimSpace(a.source))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.Format(cfg.LogFormat)})
	a.ui = i18n.NewTranslator(
		application.NewMessageCatalogResolver(a.builtin, application.WithLogger(a.logger)), "", a.logger)
	return nil
}

// loadCatalogs reads the catalogs from the configured source.
func (a *App) loadCatalogs(ctx context.Context) (*entities.CatalogSet, error) {
	var loader output.CatalogLoader
	switch a.cfg.Source {
	case config.SourceFiles:
		loader = a.fileLoader()
	case config.SourceDatabase:
		pool, err := database.NewPool(ctx, a.cfg.DatabaseURL, a.logger)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		loader = database.NewMessageRepository(pool, a.logger)
	default:
		return nil, fmt.Errorf("cli: %w: %q", domain.ErrUnknownSource, a.cfg.Source)
	}
	return loader.Load(ctx)
}

func (a *App) fileLoader() *i18n.FileLoader {
	return i18n.NewFileLoader(os.DirFS(a.cfg.MessagesDir), a.cfg.Basenames, i18n.WithLoaderLogger(a.logger))
}

// resolver builds a MessageCatalogResolver over the configured catalogs.
func (a *App) resolver(ctx context.Context, lenient bool) (*application.MessageCatalogResolver, error) {
	set, err := a.loadCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	opts := []application.Option{
		application.WithLogger(a.logger),
		application.WithObserver(a.collector),
		application.WithUseCodeAsDefaultMessage(a.cfg.UseCodeAsDefault || lenient),
		application.WithLanguageFallback(a.cfg.LanguageFallback),
	}
	if a.cfg.FormatCacheSize > 0 {
		cache, err := formatcache.New(a.cfg.FormatCacheSize)
		if err != nil {
			return nil, fmt.Errorf("cli: format cache: %w", err)
		}
		opts = append(opts, application.WithFormatter(cache))
	}
	return application.NewMessageCatalogResolver(set, opts...), nil
}

func (a *App) printMetrics() error {
	families, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("cli: gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			fmt.Fprintf(a.out, "%s %g\n", name, m.GetCounter().GetValue())
		}
	}
	return nil
}
