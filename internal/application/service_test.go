package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/mgrude/clashtrack/internal/adapters/repo/toml"
	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/mgrude/clashtrack/internal/ports"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an advanceable clock for deterministic timer tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*Service, ports.AccountRepository, *fakeClock) {
	t.Helper()

	config := viper.New()
	config.Set("accounts.path", filepath.Join(t.TempDir(), "accounts.toml"))

	repo, err := tomlrepo.NewRepository(config)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	return NewService(repo, clock), repo, clock
}

func TestServiceCreateAccountPersistsDefaults(t *testing.T) {
	t.Parallel()

	service, repo, _ := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)
	assert.Equal(t, "Town1", account.Name)
	assert.Equal(t, domain.DefaultConfig(), account.Config)

	stored, err := repo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, stored)
}

func TestServiceStartTimerPersistsEndTime(t *testing.T) {
	t.Parallel()

	service, repo, clock := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)

	target := domain.Target{Category: domain.CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}
	updated, err := service.StartTimer(context.Background(), StartTimerCommand{
		AccountID: account.ID,
		Target:    target,
		Duration:  domain.Duration{Hours: 1},
	})
	require.NoError(t, err)

	want := clock.Now().Add(time.Hour)
	require.NotNil(t, updated.MainVillageBuilders[0].EndTime)
	assert.Equal(t, want, *updated.MainVillageBuilders[0].EndTime)

	stored, err := repo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, stored.MainVillageBuilders[0].InUse)
}

func TestServiceStartTimerRejectionDoesNotPersist(t *testing.T) {
	t.Parallel()

	service, repo, _ := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)

	target := domain.Target{Category: domain.CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}
	_, err = service.StartTimer(context.Background(), StartTimerCommand{
		AccountID: account.ID,
		Target:    target,
		Duration:  domain.Duration{Hours: 1},
	})
	require.NoError(t, err)

	_, err = service.StartTimer(context.Background(), StartTimerCommand{
		AccountID: account.ID,
		Target:    target,
		Duration:  domain.Duration{Hours: 9},
	})
	assert.ErrorIs(t, err, domain.ErrUpgraderBusy)

	stored, err := repo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, clockStart().Add(time.Hour), *stored.MainVillageBuilders[0].EndTime)
}

func clockStart() time.Time {
	return time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
}

func TestServiceClearCompletedEndToEnd(t *testing.T) {
	t.Parallel()

	service, _, clock := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)

	target := domain.Target{Category: domain.CategoryMainBuilder, ID: account.MainVillageBuilders[0].ID}
	updated, err := service.StartTimer(context.Background(), StartTimerCommand{
		AccountID: account.ID,
		Target:    target,
		Duration:  domain.Duration{Minutes: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "1m", domain.FormatRemainingTime(updated.MainVillageBuilders[0].EndTime, clock.Now()))

	clock.Advance(61 * time.Second)
	stored, err := service.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Complete", domain.FormatRemainingTime(stored.MainVillageBuilders[0].EndTime, clock.Now()))

	cleared, changed, err := service.ClearCompleted(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, cleared.MainVillageBuilders[0].InUse)
	assert.Nil(t, cleared.MainVillageBuilders[0].EndTime)

	_, changed, err = service.ClearCompleted(context.Background(), account.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestServiceUpdateConfigReconcilesPools(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)

	config := account.Config
	config.MaxMainVillageBuilders = 2
	config.HasBuilderBaseLab = false

	accounts, err := service.UpdateConfig(context.Background(), account.ID, config)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Len(t, accounts[0].MainVillageBuilders, 2)
	assert.False(t, accounts[0].Config.HasBuilderBaseLab)
}

func TestServiceUpdateConfigRejectsOutOfBounds(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t)

	account, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)

	config := account.Config
	config.MaxMainVillageBuilders = 7

	_, err = service.UpdateConfig(context.Background(), account.ID, config)
	assert.ErrorContains(t, err, "main village builders")
}

func TestServiceRenameAndRemove(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t)

	first, err := service.CreateAccount(context.Background(), "Town1")
	require.NoError(t, err)
	second, err := service.CreateAccount(context.Background(), "Town2")
	require.NoError(t, err)

	renamed, err := service.RenameAccount(context.Background(), first.ID, "Capital")
	require.NoError(t, err)
	assert.Equal(t, "Capital", renamed.Name)

	accounts, err := service.RemoveAccount(context.Background(), second.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, first.ID, accounts[0].ID)

	_, err = service.GetAccount(context.Background(), second.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
