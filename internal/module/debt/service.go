package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

const debtCategory = "Vay nợ"

// Service provides business logic for personal debts
type Service struct {
	repo     Repository
	recorder TransactionRecorder
	now      func() time.Time
}

// NewService creates a new debt service
func NewService(repo Repository, recorder TransactionRecorder) *Service {
	return &Service{repo: repo, recorder: recorder, now: time.Now}
}

// Create registers a debt and records the cashflow it caused: lending money
// is an expense, borrowing is an income.
func (s *Service) Create(ctx context.Context, d *Debt, walletID *uuid.UUID) (*Debt, error) {
	if err := d.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	d.ID = uuid.New()
	d.IsPaid = false
	now := s.now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	txType := ledger.TypeExpense
	note := fmt.Sprintf("Cho vay: %s", d.Person)
	if d.Type == TypeBorrow {
		txType = ledger.TypeIncome
		note = fmt.Sprintf("Đi vay: %s", d.Person)
	}

	if _, err := s.recorder.Record(ctx, &ledger.Transaction{
		UserID:     d.UserID,
		Amount:     d.Amount,
		Type:       txType,
		Category:   debtCategory,
		Note:       note,
		OccurredAt: now,
		WalletID:   walletID,
		Source:     ledger.SourceDebt,
	}); err != nil {
		return nil, fmt.Errorf("failed to record debt transaction: %w", err)
	}

	return d, nil
}

// GetByID retrieves a debt and verifies ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Debt, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return d, nil
}

// List returns all debts of a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Debt, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Settle marks a debt as paid and records the offsetting transaction: a
// repaid loan comes back as income, a repaid borrowing goes out as expense.
// Settling twice is refused; settlement never flips back.
func (s *Service) Settle(ctx context.Context, id, userID uuid.UUID, walletID *uuid.UUID) (*Debt, error) {
	d, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.IsPaid {
		return nil, ErrAlreadySettled
	}

	now := s.now()
	d.IsPaid = true
	d.UpdatedAt = now

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to settle debt: %w", err)
	}

	txType := ledger.TypeIncome
	note := fmt.Sprintf("Thu nợ: %s", d.Person)
	if d.Type == TypeBorrow {
		txType = ledger.TypeExpense
		note = fmt.Sprintf("Trả nợ: %s", d.Person)
	}

	if _, err := s.recorder.Record(ctx, &ledger.Transaction{
		UserID:     d.UserID,
		Amount:     d.Amount,
		Type:       txType,
		Category:   debtCategory,
		Note:       note,
		OccurredAt: now,
		WalletID:   walletID,
		Source:     ledger.SourceDebt,
	}); err != nil {
		return nil, fmt.Errorf("failed to record settlement transaction: %w", err)
	}

	return d, nil
}

// Delete removes a debt record. The transactions it created stay in the
// ledger; deleting the record does not undo the cashflow.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// OutstandingOwed sums the user's unsettled borrowings. This is the debt load
// the financial health score counts against assets.
func (s *Service) OutstandingOwed(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	debts, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load debts: %w", err)
	}

	total := decimal.Zero
	for _, d := range debts {
		if d.Type == TypeBorrow && !d.IsPaid {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

// OutstandingLent sums the user's unsettled loans to others
func (s *Service) OutstandingLent(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	debts, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load debts: %w", err)
	}

	total := decimal.Zero
	for _, d := range debts {
		if d.Type == TypeLend && !d.IsPaid {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}
