package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// LedgerRepository implements the transaction repository using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL transaction repository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const txColumns = `id, user_id, amount, type, category, note, occurred_at, wallet_id, recurring_bill_id, source, created_at, updated_at`

func scanTransaction(row pgx.Row) (*ledger.Transaction, error) {
	tx := &ledger.Transaction{}
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Type,
		&tx.Category,
		&tx.Note,
		&tx.OccurredAt,
		&tx.WalletID,
		&tx.RecurringBillID,
		&tx.Source,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Create creates a new transaction
func (r *LedgerRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Note,
		tx.OccurredAt,
		tx.WalletID,
		tx.RecurringBillID,
		tx.Source,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// Update updates an existing transaction
func (r *LedgerRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, type = $2, category = $3, note = $4, occurred_at = $5,
		    wallet_id = $6, recurring_bill_id = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Note,
		tx.OccurredAt,
		tx.WalletID,
		tx.RecurringBillID,
		tx.UpdatedAt,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

// Delete deletes a transaction by ID
func (r *LedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

// List retrieves a user's transactions, newest first, narrowed by filters
func (r *LedgerRepository) List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + txColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	addArg := func(clause string, v any) {
		args = append(args, v)
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", clause, len(args)))
	}

	if f.WalletID != nil {
		addArg("wallet_id", *f.WalletID)
	}
	if f.RecurringBillID != nil {
		addArg("recurring_bill_id", *f.RecurringBillID)
	}
	if f.Type != nil {
		addArg("type", *f.Type)
	}
	if f.Category != nil {
		addArg("category", *f.Category)
	}
	if f.From != nil {
		args = append(args, *f.From)
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		sb.WriteString(fmt.Sprintf(" AND occurred_at < $%d", len(args)))
	}

	sb.WriteString(" ORDER BY occurred_at DESC, created_at DESC")

	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

// SumByType totals transaction amounts of one type in [from, to)
func (r *LedgerRepository) SumByType(ctx context.Context, userID uuid.UUID, txType ledger.Type, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND occurred_at >= $3 AND occurred_at < $4
	`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query, userID, txType, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

// ExpenseByCategory totals expenses per category in [from, to)
func (r *LedgerRepository) ExpenseByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND occurred_at >= $2 AND occurred_at < $3
		GROUP BY category
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals[category] = total
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense totals: %w", err)
	}
	return totals, nil
}

// NetFlowByWallet returns income minus expense recorded against a wallet
func (r *LedgerRepository) NetFlowByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE wallet_id = $1
	`

	var net decimal.Decimal
	err := r.pool.QueryRow(ctx, query, walletID).Scan(&net)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute wallet net flow: %w", err)
	}
	return net, nil
}

// CountByWallet counts transactions referencing a wallet
func (r *LedgerRepository) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, walletID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}
	return count, nil
}
