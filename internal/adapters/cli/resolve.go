package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"msgsource/internal/domain/entities"
)

func (a *App) resolveCommand() *cobra.Command {
	var (
		loc     string
		def     string
		lenient bool
	)
	cmd := &cobra.Command{
		Use:   "resolve CODE [ARG...]",
		Short: "Resolve a message code for a locale",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver(cmd.Context(), lenient)
			if err != nil {
				return err
			}
			req := entities.ResolutionRequest{Code: args[0], Locale: loc, Args: toArgs(args[1:])}
			if cmd.Flags().Changed("default") {
				req = req.WithDefault(def)
			}
			msg, err := r.Resolve(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&loc, "locale", "l", "", "requested locale, e.g. en-US")
	cmd.Flags().StringVarP(&def, "default", "d", "", "message returned verbatim when the code is unknown")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "print the code itself when it is unknown")
	return cmd
}

func toArgs(in []string) []any {
	if len(in) == 0 {
		return nil
	}
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
