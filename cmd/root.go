package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "concierge",
		Short:         "Concierge: a scripted multi-agent travel desk simulation",
		Long:          "concierge runs the scripted luxury concierge simulation: five agents plan a trip, react to a spoken dietary change, propose long-term memories and handle a proactive flight alert.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlanCmd(app),
		newVoiceCmd(app),
		newDemoCmd(app),
		newTranslateCmd(app),
		newMemoriesCmd(app),
		newAgentCmd(app),
		newConsoleCmd(app),
	)

	return rootCmd
}
