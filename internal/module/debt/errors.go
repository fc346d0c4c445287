package debt

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrMissingPerson      = errors.New("debt person is required")
	ErrInvalidAmount      = errors.New("debt amount must be positive")
	ErrInvalidType        = errors.New("invalid debt type")
	ErrDebtNotFound       = errors.New("debt not found")
	ErrUnauthorizedAccess = errors.New("unauthorized debt access")
	ErrAlreadySettled     = errors.New("debt already settled")
)
