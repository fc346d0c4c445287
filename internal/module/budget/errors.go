package budget

import "errors"

var (
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidLimit    = errors.New("budget limit must be positive")
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrInvalidIncome   = errors.New("planned income cannot be negative")
)
