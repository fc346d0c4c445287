package ledger

import "errors"

var (
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidType         = errors.New("transaction type must be income or expense")
	ErrMissingCategory     = errors.New("category is required")
	ErrMissingDate         = errors.New("transaction date is required")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnauthorizedAccess  = errors.New("unauthorized transaction access")
	ErrWalletNotOwned      = errors.New("wallet does not belong to user")
)
