package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"msgsource/internal/infrastructure/database"
)

var errDatabaseURLRequired = errors.New("DATABASE_URL is required")

func (a *App) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load catalog files and upsert them into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseURL == "" {
				return fmt.Errorf("import: %w", errDatabaseURLRequired)
			}
			ctx := cmd.Context()
			set, err := a.fileLoader().Load(ctx)
			if err != nil {
				return err
			}
			pool, err := database.NewPool(ctx, a.cfg.DatabaseURL, a.logger)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := database.NewMessageRepository(pool, a.logger).Import(ctx, set); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ui.T(a.lang, "import.done", len(set.All())))
			return nil
		},
	}
}

func (a *App) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseURL == "" {
				return fmt.Errorf("migrate: %w", errDatabaseURLRequired)
			}
			if err := database.RunMigrations(a.cfg.DatabaseURL, a.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ui.T(a.lang, "migrate.done"))
			return nil
		},
	}
}
