package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// savingsCategory is the ledger category used for goal movements
const savingsCategory = "Tiết kiệm"

// Service provides business logic for savings goals
type Service struct {
	repo   Repository
	ledger TransactionRecorder
}

// NewService creates a new goal service
func NewService(repo Repository, recorder TransactionRecorder) *Service {
	return &Service{repo: repo, ledger: recorder}
}

// Create creates a new savings goal
func (s *Service) Create(ctx context.Context, g *SavingsGoal) (*SavingsGoal, error) {
	if err := g.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	g.ID = uuid.New()
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

// GetByID retrieves a goal and verifies ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*SavingsGoal, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return g, nil
}

// List lists a user's goals
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*SavingsGoal, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Delete removes a goal
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Deposit moves money into the goal and records the matching expense
// transaction, optionally against a wallet.
func (s *Service) Deposit(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal, walletID *uuid.UUID) (*SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidDeposit
	}

	g, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.Record(ctx, &ledger.Transaction{
		UserID:     userID,
		Amount:     amount,
		Type:       ledger.TypeExpense,
		Category:   savingsCategory,
		Note:       fmt.Sprintf("Gửi vào mục tiêu: %s", g.Name),
		OccurredAt: time.Now(),
		WalletID:   walletID,
		Source:     ledger.SourceGoal,
	}); err != nil {
		return nil, fmt.Errorf("failed to record deposit transaction: %w", err)
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

// Withdraw moves money out of the goal, clamped at zero, and records the
// matching income transaction.
func (s *Service) Withdraw(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal, walletID *uuid.UUID) (*SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidWithdrawal
	}

	g, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Clamp: never withdraw more than the goal holds
	withdrawn := amount
	if withdrawn.GreaterThan(g.CurrentAmount) {
		withdrawn = g.CurrentAmount
	}
	if withdrawn.IsZero() {
		return g, nil
	}

	if _, err := s.ledger.Record(ctx, &ledger.Transaction{
		UserID:     userID,
		Amount:     withdrawn,
		Type:       ledger.TypeIncome,
		Category:   savingsCategory,
		Note:       fmt.Sprintf("Rút từ mục tiêu: %s", g.Name),
		OccurredAt: time.Now(),
		WalletID:   walletID,
		Source:     ledger.SourceGoal,
	}); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal transaction: %w", err)
	}

	g.CurrentAmount = g.CurrentAmount.Sub(withdrawn)
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}
