package bill

import (
	"context"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Repository defines the interface for recurring bill persistence
type Repository interface {
	Create(ctx context.Context, b *RecurringBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*RecurringBill, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*RecurringBill, error)
	Update(ctx context.Context, b *RecurringBill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Ledger is the slice of the transaction service the bill module needs:
// recording payments and reading the month's transactions to derive payment
// state. *ledger.Service satisfies it.
type Ledger interface {
	Record(ctx context.Context, tx *ledger.Transaction) (*ledger.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error)
}
