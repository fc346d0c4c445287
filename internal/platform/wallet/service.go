package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides business logic for wallet operations
type Service struct {
	repo   Repository
	ledger LedgerReader
}

// NewService creates a new wallet service
func NewService(repo Repository, ledger LedgerReader) *Service {
	return &Service{repo: repo, ledger: ledger}
}

// Create creates a new wallet for a user
func (s *Service) Create(ctx context.Context, w *Wallet) (*Wallet, error) {
	if err := w.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.repo.ExistsByUserAndName(ctx, w.UserID, w.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check wallet existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateWalletName
	}

	w.ID = uuid.New()

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return w, nil
}

// GetByID retrieves a wallet by ID and validates user ownership
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Wallet, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if w.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return w, nil
}

// GetBalance retrieves a wallet with its current balance computed as
// initial balance plus the net of its transactions.
func (s *Service) GetBalance(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Balance, error) {
	w, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	net, err := s.ledger.NetFlowByWallet(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute wallet balance: %w", err)
	}

	return &Balance{Wallet: *w, CurrentBalance: w.InitialBalance.Add(net)}, nil
}

// ListBalances retrieves all wallets for a user with computed balances
func (s *Service) ListBalances(ctx context.Context, userID uuid.UUID) ([]*Balance, error) {
	wallets, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	balances := make([]*Balance, 0, len(wallets))
	for _, w := range wallets {
		net, err := s.ledger.NetFlowByWallet(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute wallet balance: %w", err)
		}
		balances = append(balances, &Balance{Wallet: *w, CurrentBalance: w.InitialBalance.Add(net)})
	}

	return balances, nil
}

// Update updates an existing wallet
func (s *Service) Update(ctx context.Context, w *Wallet, userID uuid.UUID) (*Wallet, error) {
	if err := w.ValidateUpdate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	if w.Name != existing.Name {
		exists, err := s.repo.ExistsByUserAndName(ctx, userID, w.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check wallet name: %w", err)
		}
		if exists {
			return nil, ErrDuplicateWalletName
		}
	}

	w.UserID = existing.UserID

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	return w, nil
}

// Delete deletes a wallet. A wallet that still has transactions referencing
// it cannot be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if w.UserID != userID {
		return ErrUnauthorizedAccess
	}

	count, err := s.ledger.CountByWallet(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check wallet transactions: %w", err)
	}
	if count > 0 {
		return ErrWalletHasTransactions
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	return nil
}
