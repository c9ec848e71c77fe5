package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/mgrude/clashtrack/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// PreferenceStore persists the theme and notification preferences in
// prefs.toml next to the accounts file.
type PreferenceStore struct {
	prefsPath string
	mu        *sync.RWMutex
}

var _ ports.PreferenceStore = (*PreferenceStore)(nil)

func NewPreferenceStore(cfg *viper.Viper) (*PreferenceStore, error) {
	prefsPath, err := resolvePath(cfg, prefsPathKey, prefsFile)
	if err != nil {
		return nil, err
	}

	return &PreferenceStore{prefsPath: prefsPath, mu: lockForPath(prefsPath)}, nil
}

type prefsSchema struct {
	Version       int                 `toml:"version"`
	Theme         string              `toml:"theme"`
	Notifications notificationsSchema `toml:"notifications"`
}

type notificationsSchema struct {
	Enabled      bool     `toml:"enabled"`
	LeadMinutes  int      `toml:"lead_minutes"`
	SoundEnabled bool     `toml:"sound_enabled"`
	Notified     []string `toml:"notified,omitempty"`
}

func (s *PreferenceStore) Load(ctx context.Context) (domain.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preferences{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.prefsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultPreferences(), nil
		}
		return domain.Preferences{}, fmt.Errorf("read prefs file: %w", err)
	}

	var file prefsSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode prefs file: %w", err)
	}
	if file.Version > currentSchemaVersion {
		return domain.Preferences{}, fmt.Errorf("unsupported prefs schema version %d (current %d)", file.Version, currentSchemaVersion)
	}

	prefs := domain.Preferences{
		Theme: domain.Theme(file.Theme),
		Notifications: domain.NotificationPreferences{
			Enabled:      file.Notifications.Enabled,
			LeadMinutes:  file.Notifications.LeadMinutes,
			SoundEnabled: file.Notifications.SoundEnabled,
		},
		Notified: file.Notifications.Notified,
	}
	if !prefs.Theme.Valid() {
		prefs.Theme = domain.ThemeSystem
	}
	if prefs.Notifications.LeadMinutes == 0 {
		prefs.Notifications.LeadMinutes = domain.DefaultPreferences().Notifications.LeadMinutes
	}

	return prefs, nil
}

func (s *PreferenceStore) Save(ctx context.Context, prefs domain.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := prefsSchema{
		Version: currentSchemaVersion,
		Theme:   string(prefs.Theme),
		Notifications: notificationsSchema{
			Enabled:      prefs.Notifications.Enabled,
			LeadMinutes:  prefs.Notifications.LeadMinutes,
			SoundEnabled: prefs.Notifications.SoundEnabled,
			Notified:     prefs.Notified,
		},
	}

	return atomicWrite(s.prefsPath, prefsTempPat, func() ([]byte, error) {
		data, err := toml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("encode prefs file: %w", err)
		}
		return data, nil
	})
}
