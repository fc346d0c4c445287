package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for wallet data access
type Repository interface {
	Create(ctx context.Context, wallet *Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Wallet, error)
	Update(ctx context.Context, wallet *Wallet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

// LedgerReader is the slice of the transaction store the wallet service needs
// to compute balances and guard deletion.
type LedgerReader interface {
	// NetFlowByWallet returns income minus expense recorded against a wallet.
	NetFlowByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)

	// CountByWallet returns the number of transactions referencing a wallet.
	CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}
