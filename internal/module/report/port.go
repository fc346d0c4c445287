package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Store snapshots and restores a user's full dataset. Restore replaces
// everything the user owns in one transaction: either the whole backup lands
// or nothing changes.
type Store interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*Backup, error)
	Restore(ctx context.Context, userID uuid.UUID, b *Backup) error
}

// TransactionLister reads transactions for the CSV export.
// *ledger.Service satisfies it.
type TransactionLister interface {
	List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error)
}
