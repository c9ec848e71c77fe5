package ports

import (
	"context"

	"github.com/mgrude/clashtrack/internal/domain"
)

type PreferenceStore interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
