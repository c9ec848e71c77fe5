package application

import (
	"context"
	"fmt"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/mgrude/clashtrack/internal/ports"
)

// Service runs the account mutation operations. Every mutation follows the
// same discipline: load, compute a new account through the domain state
// machine, persist, return the refreshed state. The repository collection
// is only ever replaced wholesale, never partially mutated.
type Service struct {
	repo  ports.AccountRepository
	clock ports.Clock
}

func NewService(repo ports.AccountRepository, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{repo: repo, clock: clock}
}

func (s *Service) CreateAccount(ctx context.Context, name string) (domain.Account, error) {
	account := domain.NewAccount(name)

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save new account: %w", err)
	}

	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (s *Service) RenameAccount(ctx context.Context, id domain.AccountID, name string) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	account.Name = name

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save account name: %w", err)
	}

	return account, nil
}

func (s *Service) RemoveAccount(ctx context.Context, id domain.AccountID) ([]domain.Account, error) {
	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, fmt.Errorf("remove account: %w", err)
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (s *Service) StartTimer(ctx context.Context, cmd StartTimerCommand) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	updated, err := domain.StartTimer(account, cmd.Target, cmd.Duration, s.clock.Now())
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Account{}, fmt.Errorf("save account timers: %w", err)
	}

	return updated, nil
}

func (s *Service) CancelTimer(ctx context.Context, cmd CancelTimerCommand) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	updated, err := domain.CancelTimer(account, cmd.Target)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Account{}, fmt.Errorf("save account timers: %w", err)
	}

	return updated, nil
}

// ClearCompleted resets elapsed timers and reports whether anything was
// cleared. A no-op skips the write entirely.
func (s *Service) ClearCompleted(ctx context.Context, id domain.AccountID) (domain.Account, bool, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("get account by id: %w", err)
	}

	updated, changed := domain.ClearCompleted(account, s.clock.Now())
	if !changed {
		return account, false, nil
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Account{}, false, fmt.Errorf("save account timers: %w", err)
	}

	return updated, true, nil
}

// UpdateConfig validates the new capacity config, reconciles the account's
// resource pools against it, and persists the result.
func (s *Service) UpdateConfig(ctx context.Context, id domain.AccountID, config domain.AccountConfig) ([]domain.Account, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	updated := domain.Reconcile(account, config)

	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save account config: %w", err)
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (s *Service) GetSummary(ctx context.Context, id domain.AccountID) (Summary, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Summary{}, fmt.Errorf("get account by id: %w", err)
	}

	return Summarize(account, s.clock.Now()), nil
}

func (s *Service) GetSummaryAll(ctx context.Context) ([]Summary, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	summaries := make([]Summary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, Summarize(account, s.clock.Now()))
	}

	return summaries, nil
}

func (s *Service) GetNextCompletions(ctx context.Context) ([]Completion, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return NextCompletions(accounts, s.clock.Now()), nil
}
