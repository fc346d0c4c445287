package bill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// Service provides business logic for recurring bills
type Service struct {
	repo   Repository
	ledger Ledger
	now    func() time.Time
}

// NewService creates a new bill service
func NewService(repo Repository, l Ledger) *Service {
	return &Service{repo: repo, ledger: l, now: time.Now}
}

// Create creates a new recurring bill
func (s *Service) Create(ctx context.Context, b *RecurringBill) (*RecurringBill, error) {
	if err := b.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	b.ID = uuid.New()
	now := s.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return b, nil
}

// GetByID retrieves a bill and verifies ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*RecurringBill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return b, nil
}

// Update edits a bill
func (s *Service) Update(ctx context.Context, b *RecurringBill, userID uuid.UUID) (*RecurringBill, error) {
	existing, err := s.GetByID(ctx, b.ID, userID)
	if err != nil {
		return nil, err
	}

	b.UserID = existing.UserID
	b.CreatedAt = existing.CreatedAt

	if err := b.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	b.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return b, nil
}

// Delete removes a bill. Past payment transactions keep their link but the
// bill itself disappears from the monthly view.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Pay records this month's payment of a bill as an expense transaction
// carrying an explicit bill link. Paying an already-paid bill is refused.
func (s *Service) Pay(ctx context.Context, id, userID uuid.UUID, walletID *uuid.UUID) (*ledger.Transaction, error) {
	b, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paid, err := s.isPaid(ctx, b, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, ErrAlreadyPaid
	}

	tx, err := s.ledger.Record(ctx, &ledger.Transaction{
		UserID:          userID,
		Amount:          b.Amount,
		Type:            ledger.TypeExpense,
		Category:        b.Category,
		Note:            fmt.Sprintf("Thanh toán hóa đơn: %s", b.Name),
		OccurredAt:      now,
		WalletID:        walletID,
		RecurringBillID: &b.ID,
		Source:          ledger.SourceBill,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record bill payment: %w", err)
	}
	return tx, nil
}

// MonthlyStatus derives each bill's payment state for one month
func (s *Service) MonthlyStatus(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]*Status, error) {
	bills, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	now := s.now()
	statuses := make([]*Status, 0, len(bills))
	for _, b := range bills {
		paid, err := s.isPaid(ctx, b, year, month)
		if err != nil {
			return nil, err
		}

		dueDate := b.DueDateIn(year, month)
		statuses = append(statuses, &Status{
			RecurringBill: *b,
			DueDate:       dueDate,
			Paid:          paid,
			Overdue:       !paid && now.After(dueDate.AddDate(0, 0, 1)),
		})
	}
	return statuses, nil
}

// isPaid checks the explicit bill link on the month's transactions first and
// falls back to substring-matching the bill name against transaction notes,
// which keeps payments recorded by hand (or imported from the old data
// format) counted.
func (s *Service) isPaid(ctx context.Context, b *RecurringBill, year int, month time.Month) (bool, error) {
	from, to := ledger.MonthRange(year, month)

	linked, err := s.ledger.List(ctx, b.UserID, ledger.Filters{
		RecurringBillID: &b.ID,
		From:            &from,
		To:              &to,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check bill payments: %w", err)
	}
	if len(linked) > 0 {
		return true, nil
	}

	// Fallback: fuzzy name match against expense notes
	expense := ledger.TypeExpense
	txs, err := s.ledger.List(ctx, b.UserID, ledger.Filters{
		Type: &expense,
		From: &from,
		To:   &to,
	})
	if err != nil {
		return false, fmt.Errorf("failed to scan month transactions: %w", err)
	}

	needle := strings.ToLower(b.Name)
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Note), needle) {
			return true, nil
		}
	}
	return false, nil
}
