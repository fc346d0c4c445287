package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/pkg/vnd"
)

// utf8BOM makes Excel open the CSV with the right encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Ngày", "Loại", "Danh mục", "Số tiền", "Ghi chú"}

// Service produces CSV exports and JSON backups, and restores backups
type Service struct {
	store        Store
	transactions TransactionLister
	now          func() time.Time
}

// NewService creates a new report service
func NewService(store Store, transactions TransactionLister) *Service {
	return &Service{store: store, transactions: transactions, now: time.Now}
}

// ExportCSV renders the user's transactions in a date range as a UTF-8 CSV
// with a BOM, dates as dd/mm/yyyy and amounts grouped Vietnamese style.
func (s *Service) ExportCSV(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	txs, err := s.transactions.List(ctx, userID, ledger.Filters{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range txs {
		kind := "Thu nhập"
		if tx.Type == ledger.TypeExpense {
			kind = "Chi tiêu"
		}
		record := []string{
			tx.OccurredAt.Format("02/01/2006"),
			kind,
			tx.Category,
			vnd.Format(tx.Amount),
			tx.Note,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBackup snapshots everything the user owns as JSON
func (s *Service) ExportBackup(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	b, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot user data: %w", err)
	}
	b.Version = BackupVersion
	b.ExportedAt = s.now()

	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return raw, nil
}

// ImportBackup validates a backup file and replaces the user's data with its
// contents atomically.
func (s *Service) ImportBackup(ctx context.Context, userID uuid.UUID, raw []byte) (*Backup, error) {
	b, err := ParseBackup(raw)
	if err != nil {
		return nil, err
	}

	// Restored records belong to the importing user regardless of the IDs
	// baked into the file.
	for _, tx := range b.Transactions {
		tx.UserID = userID
	}
	for _, w := range b.Wallets {
		w.UserID = userID
	}
	for _, a := range b.Assets {
		a.UserID = userID
	}
	for _, d := range b.Debts {
		d.UserID = userID
	}
	for _, g := range b.SavingsGoals {
		g.UserID = userID
	}
	for _, rb := range b.RecurringBills {
		rb.UserID = userID
	}
	for _, cb := range b.CategoryBudgets {
		cb.UserID = userID
	}
	for _, pi := range b.PlannedIncomes {
		pi.UserID = userID
	}
	for _, cc := range b.CustomCategories {
		cc.UserID = userID
	}

	if err := s.store.Restore(ctx, userID, b); err != nil {
		return nil, fmt.Errorf("failed to restore backup: %w", err)
	}
	return b, nil
}

// ParseBackup decodes and validates a backup file. A file missing the
// transactions or wallets collections is rejected before anything is touched.
func ParseBackup(raw []byte) (*Backup, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if _, ok := keys["transactions"]; !ok {
		return nil, fmt.Errorf("%w: missing transactions", ErrInvalidBackup)
	}
	if _, ok := keys["wallets"]; !ok {
		return nil, fmt.Errorf("%w: missing wallets", ErrInvalidBackup)
	}

	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if b.Version > BackupVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, b.Version)
	}
	return &b, nil
}
