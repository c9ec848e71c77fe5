package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimerSetsEndTimeOnTargetOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")
	target := Target{Category: CategoryMainBuilder, ID: account.MainVillageBuilders[2].ID}

	updated, err := StartTimer(account, target, Duration{Hours: 2}, now)
	require.NoError(t, err)

	want := now.Add(2 * time.Hour)
	assert.True(t, updated.MainVillageBuilders[2].InUse)
	require.NotNil(t, updated.MainVillageBuilders[2].EndTime)
	assert.Equal(t, want, *updated.MainVillageBuilders[2].EndTime)

	for i, b := range updated.MainVillageBuilders {
		if i == 2 {
			continue
		}
		assert.False(t, b.InUse)
		assert.Nil(t, b.EndTime)
	}

	// Input account untouched.
	assert.False(t, account.MainVillageBuilders[2].InUse)
	assert.Nil(t, account.MainVillageBuilders[2].EndTime)
}

func TestStartTimerOnLab(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")

	updated, err := StartTimer(account, Target{Category: CategoryBuilderBaseLab}, Duration{Days: 3}, now)
	require.NoError(t, err)

	assert.True(t, updated.BuilderBaseLab.InUse)
	require.NotNil(t, updated.BuilderBaseLab.EndTime)
	assert.False(t, updated.MainVillageLab.InUse)
}

func TestStartTimerRejections(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	t.Run("zero duration", func(t *testing.T) {
		t.Parallel()
		account := NewAccount("Town1")
		target := Target{Category: CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}

		_, err := StartTimer(account, target, Duration{}, now)
		assert.ErrorIs(t, err, ErrZeroDuration)
	})

	t.Run("busy target leaves account unchanged", func(t *testing.T) {
		t.Parallel()
		account := NewAccount("Town1")
		target := Target{Category: CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}

		busy, err := StartTimer(account, target, Duration{Hours: 1}, now)
		require.NoError(t, err)

		got, err := StartTimer(busy, target, Duration{Hours: 5}, now)
		assert.ErrorIs(t, err, ErrUpgraderBusy)
		assert.Equal(t, busy, got)
	})

	t.Run("disabled lab", func(t *testing.T) {
		t.Parallel()
		account := NewAccount("Town1")
		config := account.Config
		config.HasMainVillageLab = false
		account = Reconcile(account, config)

		_, err := StartTimer(account, Target{Category: CategoryMainLab}, Duration{Hours: 1}, now)
		assert.ErrorIs(t, err, ErrCategoryDisabled)
	})

	t.Run("disabled builder pool", func(t *testing.T) {
		t.Parallel()
		account := NewAccount("Town1")
		config := account.Config
		config.MaxBuilderBaseBuilders = 0
		account = Reconcile(account, config)

		_, err := StartTimer(account, Target{Category: CategoryBuilderBaseBuilder}, Duration{Hours: 1}, now)
		assert.ErrorIs(t, err, ErrCategoryDisabled)
	})

	t.Run("unknown builder id", func(t *testing.T) {
		t.Parallel()
		account := NewAccount("Town1")

		_, err := StartTimer(account, Target{Category: CategoryMainBuilder, ID: "missing"}, Duration{Hours: 1}, now)
		assert.ErrorIs(t, err, ErrUpgraderNotFound)
	})
}

func TestCancelTimerThenStartSucceeds(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")
	target := Target{Category: CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}

	account, err := StartTimer(account, target, Duration{Hours: 1}, now)
	require.NoError(t, err)

	account, err = CancelTimer(account, target)
	require.NoError(t, err)
	assert.False(t, account.MainVillageBuilders[0].InUse)
	assert.Nil(t, account.MainVillageBuilders[0].EndTime)

	account, err = StartTimer(account, target, Duration{Minutes: 30}, now)
	require.NoError(t, err)
	assert.True(t, account.MainVillageBuilders[0].InUse)
}

func TestCancelTimerOnIdleUpgraderIsANoOp(t *testing.T) {
	t.Parallel()

	account := NewAccount("Town1")
	target := Target{Category: CategoryMainBuilder, ID: account.MainVillageBuilders[1].ID}

	got, err := CancelTimer(account, target)
	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestClearCompletedResetsElapsedAndReportsChange(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")

	past := now.Add(-time.Second)
	account.MainVillageBuilders[0].InUse = true
	account.MainVillageBuilders[0].EndTime = &past

	future := now.Add(time.Hour)
	account.MainVillageLab.InUse = true
	account.MainVillageLab.EndTime = &future

	cleared, changed := ClearCompleted(account, now)
	assert.True(t, changed)
	assert.False(t, cleared.MainVillageBuilders[0].InUse)
	assert.Nil(t, cleared.MainVillageBuilders[0].EndTime)

	// The still-running lab is untouched.
	assert.True(t, cleared.MainVillageLab.InUse)

	_, changed = ClearCompleted(cleared, now)
	assert.False(t, changed)
}

func TestReconcileGrowsPoolWithSequentialNames(t *testing.T) {
	t.Parallel()

	account := NewAccount("Town1")
	config := account.Config
	config.MaxMainVillageBuilders = 2
	account = Reconcile(account, config)
	require.Len(t, account.MainVillageBuilders, 2)

	config.MaxMainVillageBuilders = 4
	account = Reconcile(account, config)

	require.Len(t, account.MainVillageBuilders, 4)
	assert.Equal(t, "Builder 3", account.MainVillageBuilders[2].Name)
	assert.Equal(t, "Builder 4", account.MainVillageBuilders[3].Name)
	assert.False(t, account.MainVillageBuilders[2].InUse)
	assert.Equal(t, config, account.Config)
}

func TestReconcileShrinkKeepsActiveFirstAndTruncates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")

	// Pattern: in-use, in-use, free, free, in-use, free.
	for _, i := range []int{0, 1, 4} {
		end := now.Add(time.Duration(i+1) * time.Hour)
		account.MainVillageBuilders[i].InUse = true
		account.MainVillageBuilders[i].EndTime = &end
	}
	survivors := []UpgraderID{account.MainVillageBuilders[0].ID, account.MainVillageBuilders[1].ID}

	config := account.Config
	config.MaxMainVillageBuilders = 2
	account = Reconcile(account, config)

	require.Len(t, account.MainVillageBuilders, 2)
	assert.Equal(t, survivors[0], account.MainVillageBuilders[0].ID)
	assert.Equal(t, survivors[1], account.MainVillageBuilders[1].ID)
	assert.True(t, account.MainVillageBuilders[0].InUse)
	assert.True(t, account.MainVillageBuilders[1].InUse)
}

func TestReconcileShrinkFillsWithIdleWhenActiveFit(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")

	end := now.Add(time.Hour)
	account.MainVillageBuilders[3].InUse = true
	account.MainVillageBuilders[3].EndTime = &end
	activeID := account.MainVillageBuilders[3].ID
	firstIdleID := account.MainVillageBuilders[0].ID

	config := account.Config
	config.MaxMainVillageBuilders = 2
	account = Reconcile(account, config)

	require.Len(t, account.MainVillageBuilders, 2)
	assert.Equal(t, activeID, account.MainVillageBuilders[0].ID)
	assert.Equal(t, firstIdleID, account.MainVillageBuilders[1].ID)
}

func TestReconcileDisablingLabForceResetsIt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	account := NewAccount("Town1")

	end := now.Add(time.Hour)
	account.BuilderBaseLab.InUse = true
	account.BuilderBaseLab.EndTime = &end

	config := account.Config
	config.HasBuilderBaseLab = false
	account = Reconcile(account, config)

	assert.False(t, account.BuilderBaseLab.InUse)
	assert.Nil(t, account.BuilderBaseLab.EndTime)
	assert.False(t, account.Config.HasBuilderBaseLab)
}
