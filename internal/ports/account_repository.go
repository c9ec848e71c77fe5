package ports

import (
	"context"

	"github.com/mgrude/clashtrack/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	Remove(ctx context.Context, id domain.AccountID) error
	SaveAll(ctx context.Context, accounts []domain.Account) error
}
