package asset

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrMissingName        = errors.New("asset name is required")
	ErrInvalidKind        = errors.New("invalid asset kind")
	ErrInvalidValue       = errors.New("asset value must not be negative")
	ErrMissingQuantity    = errors.New("unit-based asset requires a positive quantity")
	ErrMissingPrice       = errors.New("unit-based asset requires a current price")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrUnauthorizedAccess = errors.New("unauthorized asset access")
)
