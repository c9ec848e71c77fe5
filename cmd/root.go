package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ct",
		Short:         "Upgrade tracker (ct): builder and lab timers across your accounts",
		Long:          "ct tracks builder and laboratory upgrade timers across multiple game accounts, stores them locally, and shows what finishes next.",
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
		newAccountCmd(app),
		newConfigCmd(app),
		newTimerCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newNotifyCmd(app),
		newPrefsCmd(app),
	)

	return rootCmd
}
