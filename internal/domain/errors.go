package domain

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrUpgraderNotFound = errors.New("upgrader not found")
	ErrUpgraderBusy     = errors.New("upgrader already in use")
	ErrZeroDuration     = errors.New("upgrade duration is zero")
	ErrCategoryDisabled = errors.New("category disabled by account config")
)
