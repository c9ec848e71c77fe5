package domain

import (
	"fmt"
	"time"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// NotificationPreferences controls the completion lead-time alerts.
type NotificationPreferences struct {
	Enabled      bool
	LeadMinutes  int
	SoundEnabled bool
}

var allowedLeadMinutes = []int{1, 5, 15, 30, 60}

func (p NotificationPreferences) Validate() error {
	for _, allowed := range allowedLeadMinutes {
		if p.LeadMinutes == allowed {
			return nil
		}
	}

	return fmt.Errorf("lead minutes must be one of %v", allowedLeadMinutes)
}

func (p NotificationPreferences) Lead() time.Duration {
	return time.Duration(p.LeadMinutes) * time.Minute
}

// Preferences is the explicit user-preference object handed down to the
// render and notification layers. Notified holds the keys of completion
// alerts already emitted, so a timer is alerted at most once.
type Preferences struct {
	Theme         Theme
	Notifications NotificationPreferences
	Notified      []string
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme: ThemeSystem,
		Notifications: NotificationPreferences{
			Enabled:      true,
			LeadMinutes:  1,
			SoundEnabled: true,
		},
	}
}
