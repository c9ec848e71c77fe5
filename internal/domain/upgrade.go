package domain

import "time"

// StartTimer begins an upgrade on the targeted upgrader and returns the
// updated account. The input account is never modified. Rejections are
// sentinel errors: zero duration, a category disabled by config, a busy
// target, or an unknown target.
func StartTimer(account Account, target Target, d Duration, now time.Time) (Account, error) {
	if d.IsZero() {
		return account, ErrZeroDuration
	}
	if !target.Category.Enabled(account.Config) {
		return account, ErrCategoryDisabled
	}

	end := CalculateEndTime(now, d)
	updated := account.clone()

	if target.Category.IsLab() {
		lab := updated.lab(target.Category)
		if lab.InUse {
			return account, ErrUpgraderBusy
		}
		lab.EndTime = &end
		lab.InUse = true
		return updated, nil
	}

	builder := updated.builder(target)
	if builder == nil {
		return account, ErrUpgraderNotFound
	}
	if builder.InUse {
		return account, ErrUpgraderBusy
	}
	builder.EndTime = &end
	builder.InUse = true

	return updated, nil
}

// CancelTimer resets the targeted upgrader to idle. No validation beyond
// locating the target: cancelling an idle upgrader is a no-op success.
func CancelTimer(account Account, target Target) (Account, error) {
	updated := account.clone()

	if target.Category.IsLab() {
		lab := updated.lab(target.Category)
		lab.EndTime = nil
		lab.InUse = false
		return updated, nil
	}

	builder := updated.builder(target)
	if builder == nil {
		return account, ErrUpgraderNotFound
	}
	builder.EndTime = nil
	builder.InUse = false

	return updated, nil
}

// ClearCompleted resets every upgrader whose timer has elapsed and reports
// whether anything actually changed, so callers can tell a real clear from
// a no-op.
func ClearCompleted(account Account, now time.Time) (Account, bool) {
	updated := account.clone()
	changed := false

	clearPool := func(builders []Builder) {
		for i := range builders {
			if builders[i].InUse && elapsed(builders[i].EndTime, now) {
				builders[i].EndTime = nil
				builders[i].InUse = false
				changed = true
			}
		}
	}
	clearLab := func(lab *Laboratory) {
		if lab.InUse && elapsed(lab.EndTime, now) {
			lab.EndTime = nil
			lab.InUse = false
			changed = true
		}
	}

	clearPool(updated.MainVillageBuilders)
	clearPool(updated.BuilderBaseBuilders)
	clearLab(&updated.MainVillageLab)
	clearLab(&updated.BuilderBaseLab)

	return updated, changed
}

func elapsed(end *time.Time, now time.Time) bool {
	return end != nil && !end.After(now)
}

// Reconcile resizes the builder pools and lab availability to match a new
// config. Growing a pool appends fresh idle builders with names continuing
// the numbering. Shrinking keeps in-use builders first (in original order)
// and truncates to the new maximum, discarding whatever no longer fits;
// in-progress timers on dropped slots are lost without confirmation.
// A newly disabled lab is force-reset if it was running.
func Reconcile(account Account, config AccountConfig) Account {
	updated := account.clone()

	updated.MainVillageBuilders = reconcilePool(
		updated.MainVillageBuilders, config.MaxMainVillageBuilders, CategoryMainBuilder)
	updated.BuilderBaseBuilders = reconcilePool(
		updated.BuilderBaseBuilders, config.MaxBuilderBaseBuilders, CategoryBuilderBaseBuilder)

	if !config.HasMainVillageLab && updated.MainVillageLab.InUse {
		updated.MainVillageLab.EndTime = nil
		updated.MainVillageLab.InUse = false
	}
	if !config.HasBuilderBaseLab && updated.BuilderBaseLab.InUse {
		updated.BuilderBaseLab.EndTime = nil
		updated.BuilderBaseLab.InUse = false
	}

	updated.Config = config

	return updated
}

func reconcilePool(builders []Builder, max int, category Category) []Builder {
	switch {
	case len(builders) < max:
		return append(builders, newBuilders(category, len(builders), max-len(builders))...)
	case len(builders) > max:
		active := make([]Builder, 0, len(builders))
		idle := make([]Builder, 0, len(builders))
		for _, b := range builders {
			if b.InUse {
				active = append(active, b)
			} else {
				idle = append(idle, b)
			}
		}

		if len(active) >= max {
			return active[:max]
		}

		kept := active
		for _, b := range idle {
			if len(kept) == max {
				break
			}
			kept = append(kept, b)
		}
		return kept
	default:
		return builders
	}
}

// lab returns a pointer into the account for the given lab category.
// Callers pass a cloned account.
func (a *Account) lab(category Category) *Laboratory {
	if category == CategoryBuilderBaseLab {
		return &a.BuilderBaseLab
	}

	return &a.MainVillageLab
}

// builder locates the targeted slot within its category's pool by id.
func (a *Account) builder(target Target) *Builder {
	pool := a.MainVillageBuilders
	if target.Category == CategoryBuilderBaseBuilder {
		pool = a.BuilderBaseBuilders
	}

	for i := range pool {
		if pool[i].ID == target.ID {
			return &pool[i]
		}
	}

	return nil
}
