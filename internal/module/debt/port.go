package debt

import (
	"context"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Repository defines the interface for debt persistence
type Repository interface {
	Create(ctx context.Context, d *Debt) error
	GetByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Debt, error)
	Update(ctx context.Context, d *Debt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRecorder records the cashflow side of creating or settling a
// debt. *ledger.Service satisfies it.
type TransactionRecorder interface {
	Record(ctx context.Context, tx *ledger.Transaction) (*ledger.Transaction, error)
}
