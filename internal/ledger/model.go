package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type determines the sign semantics of a transaction. Amounts are always
// stored positive; the type says which way the money moved.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// IsValid checks if the transaction type is valid
func (t Type) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Source identifies what created a transaction. Most are entered by hand;
// paying a bill, funding a goal or settling a debt records one as a side
// effect.
type Source string

const (
	SourceManual Source = "manual"
	SourceBill   Source = "bill"
	SourceGoal   Source = "goal"
	SourceDebt   Source = "debt"
)

// Transaction is a single income or expense record
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"` // always positive
	Type            Type            `json:"type"`
	Category        string          `json:"category"`
	Note            string          `json:"note"`
	OccurredAt      time.Time       `json:"occurred_at"`
	WalletID        *uuid.UUID      `json:"wallet_id,omitempty"`
	RecurringBillID *uuid.UUID      `json:"recurring_bill_id,omitempty"`
	Source          Source          `json:"source"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate validates a transaction for creation or edit
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	if t.OccurredAt.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// SignedAmount returns the amount with income positive and expense negative
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Filters narrows transaction listings
type Filters struct {
	WalletID        *uuid.UUID
	RecurringBillID *uuid.UUID
	Type            *Type
	Category        *string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// MonthlySummary aggregates a user's transactions for one calendar month
type MonthlySummary struct {
	Year              int                        `json:"year"`
	Month             time.Month                 `json:"month"`
	Income            decimal.Decimal            `json:"income"`
	Expense           decimal.Decimal            `json:"expense"`
	Net               decimal.Decimal            `json:"net"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
}

// MonthRange returns the [start, end) interval of a calendar month in UTC
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
