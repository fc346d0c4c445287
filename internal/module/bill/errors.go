package bill

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrMissingName        = errors.New("bill name is required")
	ErrInvalidAmount      = errors.New("bill amount must be positive")
	ErrMissingCategory    = errors.New("bill category is required")
	ErrInvalidDueDay      = errors.New("due day must be between 1 and 31")
	ErrBillNotFound       = errors.New("bill not found")
	ErrUnauthorizedAccess = errors.New("unauthorized bill access")
	ErrAlreadyPaid        = errors.New("bill already paid this month")
)
