package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for the transaction ledger
type Service struct {
	repo    Repository
	wallets WalletReader
}

// NewService creates a new ledger service
func NewService(repo Repository, wallets WalletReader) *Service {
	return &Service{repo: repo, wallets: wallets}
}

// Record creates a new transaction. Side-effect records (bill payments, goal
// deposits, debt settlements) come through here too, with their Source and
// link fields set by the owning module.
func (s *Service) Record(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if tx.Source == "" {
		tx.Source = SourceManual
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if tx.WalletID != nil {
		owner, err := s.wallets.OwnerOf(ctx, *tx.WalletID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve wallet: %w", err)
		}
		if owner != tx.UserID {
			return nil, ErrWalletNotOwned
		}
	}

	tx.ID = uuid.New()
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// GetByID retrieves a transaction and verifies ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return tx, nil
}

// Update applies an explicit edit to an existing transaction
func (s *Service) Update(ctx context.Context, tx *Transaction, userID uuid.UUID) (*Transaction, error) {
	existing, err := s.GetByID(ctx, tx.ID, userID)
	if err != nil {
		return nil, err
	}

	tx.UserID = existing.UserID
	tx.Source = existing.Source
	tx.CreatedAt = existing.CreatedAt

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if tx.WalletID != nil {
		owner, err := s.wallets.OwnerOf(ctx, *tx.WalletID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve wallet: %w", err)
		}
		if owner != userID {
			return nil, ErrWalletNotOwned
		}
	}

	tx.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction after verifying ownership
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// List lists a user's transactions with optional filters
func (s *Service) List(ctx context.Context, userID uuid.UUID, f Filters) ([]*Transaction, error) {
	return s.repo.List(ctx, userID, f)
}

// Summarize aggregates one calendar month: income, expense, net and the
// per-category expense breakdown.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*MonthlySummary, error) {
	from, to := MonthRange(year, month)

	income, err := s.repo.SumByType(ctx, userID, TypeIncome, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}

	expense, err := s.repo.SumByType(ctx, userID, TypeExpense, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expense: %w", err)
	}

	byCategory, err := s.repo.ExpenseByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to break down expenses: %w", err)
	}

	return &MonthlySummary{
		Year:              year,
		Month:             month,
		Income:            income,
		Expense:           expense,
		Net:               income.Sub(expense),
		ExpenseByCategory: byCategory,
	}, nil
}

// RecentMonthlyExpenses returns the expense totals of the n calendar months
// before the given one, newest first. The health scorer uses these for the
// average-burn fallback chain.
func (s *Service) RecentMonthlyExpenses(ctx context.Context, userID uuid.UUID, year int, month time.Month, n int) ([]decimal.Decimal, error) {
	expenses := make([]decimal.Decimal, 0, n)
	cursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		cursor = cursor.AddDate(0, -1, 0)
		from, to := MonthRange(cursor.Year(), cursor.Month())
		expense, err := s.repo.SumByType(ctx, userID, TypeExpense, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to sum expense for %s: %w", cursor.Format("2006-01"), err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}
