package bill

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringBill is a bill expected every month on a fixed day. Whether it has
// been paid in a given month is never stored; it is derived from the ledger.
type RecurringBill struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	DueDay    int             `json:"due_day"` // 1..31, clamped to month length
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidateCreate validates bill fields for creation
func (b *RecurringBill) ValidateCreate() error {
	if b.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if b.Name == "" {
		return ErrMissingName
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if b.Category == "" {
		return ErrMissingCategory
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

// DueDateIn returns the bill's due date within a given month, clamping the
// due day to the month's length (a bill due on the 31st is due Feb 28/29).
func (b *RecurringBill) DueDateIn(year int, month time.Month) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := b.DueDay
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Status is a bill with its derived payment state for one month
type Status struct {
	RecurringBill
	DueDate time.Time `json:"due_date"`
	Paid    bool      `json:"paid"`
	Overdue bool      `json:"overdue"`
}
