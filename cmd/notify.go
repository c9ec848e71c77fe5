package cmd

import (
	"fmt"

	notifyterminal "github.com/mgrude/clashtrack/internal/adapters/notify/terminal"
	"github.com/mgrude/clashtrack/internal/application"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Completion notifications",
	}

	cmd.AddCommand(newNotifyCheckCmd(app))

	return cmd
}

func newNotifyCheckCmd(app *app) *cobra.Command {
	var lead int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Announce completions due within the lead window",
		Long:  "Checks every account for timers finishing within the configured lead time and announces each at most once. Suitable for running on an interval.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			notifier := notifyterminal.New(cmd.OutOrStdout())
			service := application.NewNotifyService(app.repo, app.prefs, notifier, app.clock)

			emitted, err := service.Check(cmd.Context(), lead)
			if err != nil {
				return err
			}

			if emitted == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No completions due.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lead, "lead", 0, "override lead time in minutes for this check")

	return cmd
}
