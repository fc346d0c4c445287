package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryBudget is a monthly spending limit for one category. There is no
// per-month history: the same limit applies to whichever month is being
// viewed, and month-over-month comparisons are computed from transaction
// history instead of stored budgets.
type CategoryBudget struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PlannedIncome is the income a user expects for a month, used for jar
// allocation before the actual income lands.
type PlannedIncome struct {
	UserID uuid.UUID       `json:"user_id"`
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryReport compares one category's limit with actual spending
type CategoryReport struct {
	Category       string          `json:"category"`
	Limit          decimal.Decimal `json:"limit"`
	Spent          decimal.Decimal `json:"spent"`
	LastMonthSpent decimal.Decimal `json:"last_month_spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	OverLimit      bool            `json:"over_limit"`
}

// Report is the full budget picture for one month
type Report struct {
	Year       int              `json:"year"`
	Month      time.Month       `json:"month"`
	Categories []CategoryReport `json:"categories"`
	TotalLimit decimal.Decimal  `json:"total_limit"`
	TotalSpent decimal.Decimal  `json:"total_spent"`
}

// JarReport is the six-jars allocation of one jar for a month
type JarReport struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Percent   float64         `json:"percent"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// JarsReport is the full six-jars view for a month
type JarsReport struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Income decimal.Decimal `json:"income"` // planned if set, otherwise actual
	Jars   []JarReport     `json:"jars"`
}
