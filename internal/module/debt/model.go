package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type says which direction the money went when the debt was created
type Type string

const (
	TypeLend   Type = "lend"   // money handed out, someone owes the user
	TypeBorrow Type = "borrow" // money received, the user owes someone
)

// IsValid checks if the debt type is valid
func (t Type) IsValid() bool {
	return t == TypeLend || t == TypeBorrow
}

// Debt tracks money lent to or borrowed from another person. Creating one
// records a matching cashflow transaction; settling it records the offsetting
// one. Settlement is one-way.
type Debt struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Person    string          `json:"person"`
	Amount    decimal.Decimal `json:"amount"`
	Type      Type            `json:"type"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	Note      string          `json:"note"`
	IsPaid    bool            `json:"is_paid"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidateCreate validates debt fields for creation
func (d *Debt) ValidateCreate() error {
	if d.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if d.Person == "" {
		return ErrMissingPerson
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}
