package application

import (
	"context"
	"fmt"
	"time"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/mgrude/clashtrack/internal/ports"
)

// PendingAlert is one completion falling inside the notification lead
// window that has not been announced yet.
type PendingAlert struct {
	Key         string
	AccountName string
	Category    domain.Category
	EndTime     time.Time
}

// NotifyService decides which upcoming completions to announce. Emitted
// keys are persisted in the preference store so repeated checks never
// re-announce the same timer instance.
type NotifyService struct {
	repo     ports.AccountRepository
	prefs    ports.PreferenceStore
	notifier ports.Notifier
	clock    ports.Clock
}

func NewNotifyService(repo ports.AccountRepository, prefs ports.PreferenceStore, notifier ports.Notifier, clock ports.Clock) *NotifyService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &NotifyService{repo: repo, prefs: prefs, notifier: notifier, clock: clock}
}

// Check announces every completion due within the lead window and returns
// how many notifications were emitted. leadOverride replaces the stored
// lead minutes when positive.
func (s *NotifyService) Check(ctx context.Context, leadOverride int) (int, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load preferences: %w", err)
	}
	if !prefs.Notifications.Enabled {
		return 0, nil
	}

	lead := prefs.Notifications.Lead()
	if leadOverride > 0 {
		lead = time.Duration(leadOverride) * time.Minute
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list accounts: %w", err)
	}

	now := s.clock.Now()
	seen := make(map[string]struct{}, len(prefs.Notified))
	for _, key := range prefs.Notified {
		seen[key] = struct{}{}
	}

	alerts := PendingAlerts(accounts, lead, now, seen)

	emitted := 0
	for _, alert := range alerts {
		title := fmt.Sprintf("%s finishing soon", alert.Category.Label())
		body := fmt.Sprintf("%s in %s completes in %s.",
			alert.Category.Label(), alert.AccountName, domain.FormatRemainingTime(&alert.EndTime, now))
		if err := s.notifier.Notify(ctx, title, body, prefs.Notifications.SoundEnabled); err != nil {
			return emitted, fmt.Errorf("emit notification: %w", err)
		}
		seen[alert.Key] = struct{}{}
		emitted++
	}

	// Keep only keys that still correspond to a pending timer, so the
	// list does not grow without bound.
	prefs.Notified = liveKeys(accounts, now, seen)
	if err := s.prefs.Save(ctx, prefs); err != nil {
		return emitted, fmt.Errorf("save notified keys: %w", err)
	}

	return emitted, nil
}

// PendingAlerts returns the completions inside [now, now+lead] whose keys
// are not in seen, in account and category order.
func PendingAlerts(accounts []domain.Account, lead time.Duration, now time.Time, seen map[string]struct{}) []PendingAlert {
	var alerts []PendingAlert

	for _, account := range accounts {
		forEachPending(account, now, func(category domain.Category, slot int, end time.Time) {
			until := end.Sub(now)
			if until <= 0 || until > lead {
				return
			}
			key := domain.NotificationKey(account.ID, category, slot, end)
			if _, ok := seen[key]; ok {
				return
			}
			alerts = append(alerts, PendingAlert{
				Key:         key,
				AccountName: account.Name,
				Category:    category,
				EndTime:     end,
			})
		})
	}

	return alerts
}

// liveKeys filters seen down to keys of timers that are still running.
func liveKeys(accounts []domain.Account, now time.Time, seen map[string]struct{}) []string {
	var keys []string

	for _, account := range accounts {
		forEachPending(account, now, func(category domain.Category, slot int, end time.Time) {
			key := domain.NotificationKey(account.ID, category, slot, end)
			if _, ok := seen[key]; ok {
				keys = append(keys, key)
			}
		})
	}

	return keys
}

// forEachPending visits every in-use upgrader with a future end time.
// Lab groups are skipped while disabled by config.
func forEachPending(account domain.Account, now time.Time, visit func(category domain.Category, slot int, end time.Time)) {
	for i, b := range account.MainVillageBuilders {
		if b.InUse && b.EndTime != nil && b.EndTime.After(now) {
			visit(domain.CategoryMainBuilder, i, *b.EndTime)
		}
	}
	for i, b := range account.BuilderBaseBuilders {
		if b.InUse && b.EndTime != nil && b.EndTime.After(now) {
			visit(domain.CategoryBuilderBaseBuilder, i, *b.EndTime)
		}
	}
	if account.Config.HasMainVillageLab {
		lab := account.MainVillageLab
		if lab.InUse && lab.EndTime != nil && lab.EndTime.After(now) {
			visit(domain.CategoryMainLab, 0, *lab.EndTime)
		}
	}
	if account.Config.HasBuilderBaseLab {
		lab := account.BuilderBaseLab
		if lab.InUse && lab.EndTime != nil && lab.EndTime.After(now) {
			visit(domain.CategoryBuilderBaseLab, 0, *lab.EndTime)
		}
	}
}
