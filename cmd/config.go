package cmd

import (
	"fmt"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage per-account capacity config",
	}

	cmd.AddCommand(newConfigSetCmd(app))

	return cmd
}

func newConfigSetCmd(app *app) *cobra.Command {
	var (
		mainBuilders int
		mainLab      bool
		bbBuilders   int
		bbLab        bool
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Resize builder pools and toggle labs for an account",
		Long:  "Sets the account's capacity config and reconciles its resource pools. Shrinking a pool below its active timer count drops the timers that no longer fit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.AccountID(args[0])

			account, err := app.service.GetAccount(cmd.Context(), id)
			if err != nil {
				return err
			}

			config := account.Config
			if cmd.Flags().Changed("main-builders") {
				config.MaxMainVillageBuilders = mainBuilders
			}
			if cmd.Flags().Changed("main-lab") {
				config.HasMainVillageLab = mainLab
			}
			if cmd.Flags().Changed("bb-builders") {
				config.MaxBuilderBaseBuilders = bbBuilders
			}
			if cmd.Flags().Changed("bb-lab") {
				config.HasBuilderBaseLab = bbLab
			}

			if _, err := app.service.UpdateConfig(cmd.Context(), id, config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"Updated config for %s: main builders %d (lab %t), builder base builders %d (lab %t)\n",
				id, config.MaxMainVillageBuilders, config.HasMainVillageLab,
				config.MaxBuilderBaseBuilders, config.HasBuilderBaseLab)
			return nil
		},
	}

	cmd.Flags().IntVar(&mainBuilders, "main-builders", 0, "main village builder count (0-6)")
	cmd.Flags().BoolVar(&mainLab, "main-lab", true, "main village lab enabled")
	cmd.Flags().IntVar(&bbBuilders, "bb-builders", 0, "builder base builder count (0-2)")
	cmd.Flags().BoolVar(&bbLab, "bb-lab", true, "builder base lab enabled")

	return cmd
}
