package cmd

import (
	"fmt"
	"time"

	dashboardadapter "github.com/mgrude/clashtrack/internal/adapters/render/dashboard"
	tomlrepo "github.com/mgrude/clashtrack/internal/adapters/repo/toml"
	"github.com/mgrude/clashtrack/internal/application"
	"github.com/mgrude/clashtrack/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	service           *application.Service
	repo              ports.AccountRepository
	prefs             ports.PreferenceStore
	dashboardRenderer func([]application.Summary, []application.Completion, dashboardadapter.RenderOptions) (string, error)
	clock             ports.Clock
	now               func() time.Time
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	prefs, err := tomlrepo.NewPreferenceStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire preference store: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		service:           application.NewService(repo, clock),
		repo:              repo,
		prefs:             prefs,
		dashboardRenderer: dashboardadapter.Render,
		clock:             clock,
		now:               time.Now,
	}, nil
}
