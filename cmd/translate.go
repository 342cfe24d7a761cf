package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTranslateCmd(app *app) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "translate <key>",
		Short: "Resolve a dotted catalog key in the given locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := app.resolver(locale)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), resolver.Resolve(args[0]))
			return err
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Locale (zh or en); defaults to the configured locale")

	return cmd
}
