package application

import "github.com/mgrude/clashtrack/internal/domain"

type StartTimerCommand struct {
	AccountID domain.AccountID
	Target    domain.Target
	Duration  domain.Duration
}

type CancelTimerCommand struct {
	AccountID domain.AccountID
	Target    domain.Target
}
