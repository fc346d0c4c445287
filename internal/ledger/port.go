package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for transaction persistence
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, f Filters) ([]*Transaction, error)

	// SumByType totals transaction amounts of one type in [from, to)
	SumByType(ctx context.Context, userID uuid.UUID, txType Type, from, to time.Time) (decimal.Decimal, error)

	// ExpenseByCategory totals expenses per category in [from, to)
	ExpenseByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)

	// NetFlowByWallet returns income minus expense for one wallet
	NetFlowByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)

	// CountByWallet counts transactions referencing a wallet
	CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// WalletReader is the slice of the wallet store the ledger needs to verify
// that a referenced wallet belongs to the transaction's user.
type WalletReader interface {
	OwnerOf(ctx context.Context, walletID uuid.UUID) (uuid.UUID, error)
}
