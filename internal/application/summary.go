package application

import (
	"sort"
	"time"

	"github.com/mgrude/clashtrack/internal/domain"
)

// Availability reports, per category, whether at least one upgrader is
// free to start a timer. A disabled category is never available.
type Availability struct {
	MainBuilders        bool
	MainLab             bool
	BuilderBaseBuilders bool
	BuilderBaseLab      bool
}

// Summary is the per-account display aggregate for the dashboard.
type Summary struct {
	Account          domain.Account
	ActiveBuilders   int
	TotalBuilders    int
	ActiveLabs       int
	EnabledLabs      int
	ReadyToClear     int
	NextCompletion   *time.Time
	NextCompletionIn string
	Availability     Availability
}

// Completion is one pending future completion: the earliest active timer
// of a category within an account.
type Completion struct {
	EndTime     time.Time
	AccountID   domain.AccountID
	AccountName string
	Category    domain.Category
}

func AvailabilityFor(account domain.Account) Availability {
	return Availability{
		MainBuilders:        account.Config.MaxMainVillageBuilders > 0 && anyIdle(account.MainVillageBuilders),
		MainLab:             account.Config.HasMainVillageLab && !account.MainVillageLab.InUse,
		BuilderBaseBuilders: account.Config.MaxBuilderBaseBuilders > 0 && anyIdle(account.BuilderBaseBuilders),
		BuilderBaseLab:      account.Config.HasBuilderBaseLab && !account.BuilderBaseLab.InUse,
	}
}

func anyIdle(builders []domain.Builder) bool {
	for _, b := range builders {
		if !b.InUse {
			return true
		}
	}

	return false
}

// Summarize derives the dashboard aggregate for one account. An upgrader
// whose end time has passed while still in use counts as ready-to-clear,
// not as pending; lab groups only count while enabled by config.
func Summarize(account domain.Account, now time.Time) Summary {
	summary := Summary{
		Account:       account,
		TotalBuilders: len(account.MainVillageBuilders) + len(account.BuilderBaseBuilders),
		Availability:  AvailabilityFor(account),
	}
	if account.Config.HasMainVillageLab {
		summary.EnabledLabs++
	}
	if account.Config.HasBuilderBaseLab {
		summary.EnabledLabs++
	}

	var nearest *time.Time
	consider := func(end *time.Time) {
		if end == nil || !end.After(now) {
			return
		}
		if nearest == nil || end.Before(*nearest) {
			e := *end
			nearest = &e
		}
	}

	for _, pool := range [][]domain.Builder{account.MainVillageBuilders, account.BuilderBaseBuilders} {
		for _, b := range pool {
			if !b.InUse {
				continue
			}
			summary.ActiveBuilders++
			if elapsed(b.EndTime, now) {
				summary.ReadyToClear++
			}
			consider(b.EndTime)
		}
	}

	labs := []struct {
		lab     domain.Laboratory
		enabled bool
	}{
		{account.MainVillageLab, account.Config.HasMainVillageLab},
		{account.BuilderBaseLab, account.Config.HasBuilderBaseLab},
	}
	for _, entry := range labs {
		if !entry.enabled || !entry.lab.InUse {
			continue
		}
		summary.ActiveLabs++
		if elapsed(entry.lab.EndTime, now) {
			summary.ReadyToClear++
		}
		consider(entry.lab.EndTime)
	}

	summary.NextCompletion = nearest
	summary.NextCompletionIn = domain.FormatRemainingTime(nearest, now)

	return summary
}

// NextCompletions emits at most one record per (account, category) with a
// pending future completion, across all accounts, sorted ascending by end
// time. The first record overall is the global "next up"; the first record
// per category is that category's nearest finish.
func NextCompletions(accounts []domain.Account, now time.Time) []Completion {
	completions := make([]Completion, 0, len(accounts)*4)

	for _, account := range accounts {
		if end := earliestBuilderEnd(account.MainVillageBuilders, now); end != nil {
			completions = append(completions, completion(account, domain.CategoryMainBuilder, *end))
		}
		if end := earliestBuilderEnd(account.BuilderBaseBuilders, now); end != nil {
			completions = append(completions, completion(account, domain.CategoryBuilderBaseBuilder, *end))
		}
		if account.Config.HasMainVillageLab {
			if end := futureEnd(account.MainVillageLab.EndTime, account.MainVillageLab.InUse, now); end != nil {
				completions = append(completions, completion(account, domain.CategoryMainLab, *end))
			}
		}
		if account.Config.HasBuilderBaseLab {
			if end := futureEnd(account.BuilderBaseLab.EndTime, account.BuilderBaseLab.InUse, now); end != nil {
				completions = append(completions, completion(account, domain.CategoryBuilderBaseLab, *end))
			}
		}
	}

	sort.SliceStable(completions, func(i, j int) bool {
		return completions[i].EndTime.Before(completions[j].EndTime)
	})

	return completions
}

func completion(account domain.Account, category domain.Category, end time.Time) Completion {
	return Completion{
		EndTime:     end,
		AccountID:   account.ID,
		AccountName: account.Name,
		Category:    category,
	}
}

func earliestBuilderEnd(builders []domain.Builder, now time.Time) *time.Time {
	var earliest *time.Time
	for _, b := range builders {
		end := futureEnd(b.EndTime, b.InUse, now)
		if end == nil {
			continue
		}
		if earliest == nil || end.Before(*earliest) {
			earliest = end
		}
	}

	return earliest
}

func futureEnd(end *time.Time, inUse bool, now time.Time) *time.Time {
	if !inUse || end == nil || !end.After(now) {
		return nil
	}

	e := *end
	return &e
}

func elapsed(end *time.Time, now time.Time) bool {
	return end != nil && !end.After(now)
}
