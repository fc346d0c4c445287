package goal

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrMissingName        = errors.New("goal name is required")
	ErrInvalidTarget      = errors.New("target amount must be positive")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidDeposit     = errors.New("deposit amount must be positive")
	ErrInvalidWithdrawal  = errors.New("withdrawal amount must be positive")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrUnauthorizedAccess = errors.New("unauthorized goal access")
)
