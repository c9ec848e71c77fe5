package cmd

import (
	"encoding/json"
	"fmt"

	dashboardadapter "github.com/mgrude/clashtrack/internal/adapters/render/dashboard"
	"github.com/mgrude/clashtrack/internal/application"
	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		accountID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the upgrade dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := loadSummaries(cmd, app, accountID)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			next, err := app.service.GetNextCompletions(cmd.Context())
			if err != nil {
				return err
			}

			prefs, err := app.prefs.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load preferences: %w", err)
			}

			rendered, err := app.dashboardRenderer(summaries, next, dashboardadapter.RenderOptions{
				Now:   app.now(),
				Theme: prefs.Theme,
			})
			if err != nil {
				return fmt.Errorf("render dashboard: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "limit to a single account id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of the rendered view")

	return cmd
}

func loadSummaries(cmd *cobra.Command, app *app, accountID string) ([]application.Summary, error) {
	if accountID == "" {
		return app.service.GetSummaryAll(cmd.Context())
	}

	summary, err := app.service.GetSummary(cmd.Context(), domain.AccountID(accountID))
	if err != nil {
		return nil, err
	}

	return []application.Summary{summary}, nil
}
