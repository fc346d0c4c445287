package wallet

import "errors"

var (
	// Validation errors
	ErrInvalidUserID         = errors.New("invalid user ID")
	ErrInvalidWalletID       = errors.New("invalid wallet ID")
	ErrMissingWalletName     = errors.New("wallet name is required")
	ErrWalletNameTooLong     = errors.New("wallet name exceeds 100 characters")
	ErrInvalidWalletType     = errors.New("invalid wallet type")
	ErrCreditLimitNotAllowed = errors.New("credit limit only applies to credit wallets")
	ErrNegativeCreditLimit   = errors.New("credit limit cannot be negative")
	ErrDuplicateWalletName   = errors.New("wallet name already exists for this user")

	// Repository errors
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrUnauthorizedAccess = errors.New("unauthorized wallet access")

	// Deletion guard
	ErrWalletHasTransactions = errors.New("wallet still has transactions")
)
