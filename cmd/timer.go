package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mgrude/clashtrack/internal/application"
	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, cancel, and clear upgrade timers",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerCancelCmd(app),
		newTimerClearCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *app) *cobra.Command {
	var (
		accountID string
		target    string
		days      int
		hours     int
		minutes   int
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start an upgrade timer on a builder or lab",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 0 || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
				return fmt.Errorf("duration out of range: days >= 0, hours 0-23, minutes 0-59")
			}

			account, err := app.service.GetAccount(cmd.Context(), domain.AccountID(accountID))
			if err != nil {
				return err
			}

			ref, err := parseTarget(target, account)
			if err != nil {
				return err
			}

			updated, err := app.service.StartTimer(cmd.Context(), application.StartTimerCommand{
				AccountID: account.ID,
				Target:    ref,
				Duration:  domain.Duration{Days: days, Hours: hours, Minutes: minutes},
			})
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrZeroDuration):
					return fmt.Errorf("nothing to start: duration is zero")
				case errors.Is(err, domain.ErrCategoryDisabled):
					return fmt.Errorf("%s is disabled in this account's config", ref.Category.Label())
				case errors.Is(err, domain.ErrUpgraderBusy):
					return fmt.Errorf("%s is already running an upgrade", ref.Category.Label())
				default:
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started %s in %s (%s remaining)\n",
				ref.Category.Label(), updated.Name, remainingForTarget(updated, ref, app))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id")
	cmd.Flags().StringVar(&target, "target", "", "target: main:N, bb:N, main-lab, or bb-lab")
	cmd.Flags().IntVar(&days, "days", 0, "days")
	cmd.Flags().IntVar(&hours, "hours", 0, "hours (0-23)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutes (0-59)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newTimerCancelCmd(app *app) *cobra.Command {
	var (
		accountID string
		target    string
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the timer on a builder or lab",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.service.GetAccount(cmd.Context(), domain.AccountID(accountID))
			if err != nil {
				return err
			}

			ref, err := parseTarget(target, account)
			if err != nil {
				return err
			}

			updated, err := app.service.CancelTimer(cmd.Context(), application.CancelTimerCommand{
				AccountID: account.ID,
				Target:    ref,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s in %s\n", ref.Category.Label(), updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id")
	cmd.Flags().StringVar(&target, "target", "", "target: main:N, bb:N, main-lab, or bb-lab")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newTimerClearCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset every completed upgrader in an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, changed, err := app.service.ClearCompleted(cmd.Context(), domain.AccountID(accountID))
			if err != nil {
				return err
			}

			if !changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clear in %s\n", account.Name)
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared completed upgrades in %s\n", account.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

// parseTarget resolves the CLI target syntax against an account:
// "main:N" and "bb:N" address builder slots 1-based, "main-lab" and
// "bb-lab" address the singleton labs.
func parseTarget(raw string, account domain.Account) (domain.Target, error) {
	switch strings.TrimSpace(raw) {
	case "main-lab":
		return domain.Target{Category: domain.CategoryMainLab, ID: account.MainVillageLab.ID}, nil
	case "bb-lab":
		return domain.Target{Category: domain.CategoryBuilderBaseLab, ID: account.BuilderBaseLab.ID}, nil
	}

	prefix, slotRaw, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return domain.Target{}, fmt.Errorf("invalid target %q: expected main:N, bb:N, main-lab, or bb-lab", raw)
	}

	var (
		category domain.Category
		pool     []domain.Builder
	)
	switch prefix {
	case "main":
		category = domain.CategoryMainBuilder
		pool = account.MainVillageBuilders
	case "bb":
		category = domain.CategoryBuilderBaseBuilder
		pool = account.BuilderBaseBuilders
	default:
		return domain.Target{}, fmt.Errorf("invalid target %q: unknown category %q", raw, prefix)
	}

	slot, err := strconv.Atoi(slotRaw)
	if err != nil {
		return domain.Target{}, fmt.Errorf("invalid target %q: slot must be a number", raw)
	}
	if slot < 1 || slot > len(pool) {
		return domain.Target{}, fmt.Errorf("invalid target %q: slot must be between 1 and %d", raw, len(pool))
	}

	return domain.Target{Category: category, ID: pool[slot-1].ID}, nil
}

func remainingForTarget(account domain.Account, ref domain.Target, app *app) string {
	now := app.clock.Now()

	switch ref.Category {
	case domain.CategoryMainLab:
		return domain.FormatRemainingTime(account.MainVillageLab.EndTime, now)
	case domain.CategoryBuilderBaseLab:
		return domain.FormatRemainingTime(account.BuilderBaseLab.EndTime, now)
	}

	pool := account.MainVillageBuilders
	if ref.Category == domain.CategoryBuilderBaseBuilder {
		pool = account.BuilderBaseBuilders
	}
	for _, b := range pool {
		if b.ID == ref.ID {
			return domain.FormatRemainingTime(b.EndTime, now)
		}
	}

	return ""
}
