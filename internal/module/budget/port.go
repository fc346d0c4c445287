package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Repository defines the interface for budget persistence
type Repository interface {
	Upsert(ctx context.Context, b *CategoryBudget) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*CategoryBudget, error)
	Delete(ctx context.Context, userID uuid.UUID, category string) error

	GetPlannedIncome(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*PlannedIncome, error)
	SetPlannedIncome(ctx context.Context, p *PlannedIncome) error
}

// SpendingReader is the slice of the ledger the budget module reads.
// *ledger.Service satisfies it.
type SpendingReader interface {
	Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*ledger.MonthlySummary, error)
}
