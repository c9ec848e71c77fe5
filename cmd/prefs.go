package cmd

import (
	"fmt"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage user preferences",
	}

	cmd.AddCommand(
		newPrefsThemeCmd(app),
		newPrefsNotifyCmd(app),
	)

	return cmd
}

func newPrefsThemeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <light|dark|system>",
		Short: "Set the dashboard theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := domain.Theme(args[0])
			if !theme.Valid() {
				return fmt.Errorf("unknown theme %q: expected light, dark, or system", args[0])
			}

			prefs, err := app.prefs.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load preferences: %w", err)
			}

			prefs.Theme = theme
			if err := app.prefs.Save(cmd.Context(), prefs); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
			return nil
		},
	}
}

func newPrefsNotifyCmd(app *app) *cobra.Command {
	var (
		enabled bool
		lead    int
		sound   bool
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Set notification preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := app.prefs.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load preferences: %w", err)
			}

			if cmd.Flags().Changed("enabled") {
				prefs.Notifications.Enabled = enabled
			}
			if cmd.Flags().Changed("lead") {
				prefs.Notifications.LeadMinutes = lead
			}
			if cmd.Flags().Changed("sound") {
				prefs.Notifications.SoundEnabled = sound
			}

			if err := prefs.Notifications.Validate(); err != nil {
				return err
			}

			if err := app.prefs.Save(cmd.Context(), prefs); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Notifications: enabled=%t lead=%dm sound=%t\n",
				prefs.Notifications.Enabled, prefs.Notifications.LeadMinutes, prefs.Notifications.SoundEnabled)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "enable completion notifications")
	cmd.Flags().IntVar(&lead, "lead", 1, "lead time in minutes (1, 5, 15, 30, or 60)")
	cmd.Flags().BoolVar(&sound, "sound", true, "terminal bell on notification")

	return cmd
}
