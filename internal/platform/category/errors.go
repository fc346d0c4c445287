package category

import "errors"

var (
	ErrMissingName       = errors.New("category name is required")
	ErrNameTooLong       = errors.New("category name exceeds 50 characters")
	ErrShadowsStandard   = errors.New("category name collides with a standard category")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrStandardReadOnly  = errors.New("standard categories cannot be removed")
)
