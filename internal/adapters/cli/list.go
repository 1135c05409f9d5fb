package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"msgsource/internal/domain/entities"
	"msgsource/pkg/locale"
)

func (a *App) listCommand() *cobra.Command {
	var loc string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the codes and templates of the loaded catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := a.loadCatalogs(cmd.Context())
			if err != nil {
				return err
			}
			catalogs := set.All()
			if cmd.Flags().Changed("locale") {
				catalog := set.Default()
				if loc != "" {
					var ok bool
					if catalog, ok = set.Catalog(loc); !ok {
						return fmt.Errorf("list: no catalog for locale %q", locale.Normalize(loc))
					}
				}
				catalogs = []entities.Catalog{catalog}
			}
			for _, catalog := range catalogs {
				a.printCatalog(cmd.OutOrStdout(), catalog)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&loc, "locale", "l", "", "only list this locale's catalog (empty for the default one)")
	return cmd
}

func (a *App) printCatalog(w io.Writer, catalog entities.Catalog) {
	name := catalog.Locale()
	if name == "" {
		name = a.ui.T(a.lang, "list.default")
	}
	fmt.Fprintln(w, a.ui.T(a.lang, "list.header", name, catalog.Len()))
	for _, code := range catalog.Codes() {
		template, _ := catalog.Lookup(code)
		fmt.Fprintf(w, "  %s = %s\n", code, template)
	}
}
