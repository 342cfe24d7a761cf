package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/concierge/internal/domain"
	"github.com/spf13/cobra"
)

func newAgentCmd(app *app) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "agent <id>",
		Short: "Show an agent's profile and recent activity",
		Long:  "Show an agent's profile and recent activity. Known agents: " + strings.Join(agentIDNames(), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseAgentID(args[0])
			if err != nil {
				return err
			}

			s, err := app.newSession(sessionOptions{locale: locale, instant: true})
			if err != nil {
				return err
			}

			doc, err := s.director.AgentDoc(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", doc.Name, doc.ID)
			_, _ = fmt.Fprintf(out, "role: %s\n", doc.Role)
			_, _ = fmt.Fprintf(out, "skills: %s\n", strings.Join(doc.Skills, ", "))
			_, _ = fmt.Fprintf(out, "instruction: %s\n", doc.Instruction)
			_, _ = fmt.Fprintln(out)
			for _, entry := range s.director.ActivityLog() {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", entry.Time, entry.Status, entry.Event)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Locale (zh or en); defaults to the configured locale")

	return cmd
}

func agentIDNames() []string {
	ids := domain.AgentIDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return names
}
