package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMemoriesCmd(app *app) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "memories",
		Short: "List the long-term memories a fresh session starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(sessionOptions{locale: locale, instant: true})
			if err != nil {
				return err
			}

			for _, memory := range s.director.Snapshot().Memories {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					memory.ID, memory.Type, memory.SourceAgent, memory.Content, memory.CreatedLabel)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Locale (zh or en); defaults to the configured locale")

	return cmd
}
