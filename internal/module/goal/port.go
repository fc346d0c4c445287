package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Repository defines the interface for savings goal persistence
type Repository interface {
	Create(ctx context.Context, g *SavingsGoal) error
	GetByID(ctx context.Context, id uuid.UUID) (*SavingsGoal, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*SavingsGoal, error)
	Update(ctx context.Context, g *SavingsGoal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRecorder records the ledger side of a deposit or withdrawal.
// *ledger.Service satisfies it.
type TransactionRecorder interface {
	Record(ctx context.Context, tx *ledger.Transaction) (*ledger.Transaction, error)
}
