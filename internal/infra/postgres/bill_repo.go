package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/module/bill"
)

// BillRepository implements the recurring bill repository using PostgreSQL
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new PostgreSQL bill repository
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

// Create creates a new recurring bill
func (r *BillRepository) Create(ctx context.Context, b *bill.RecurringBill) error {
	query := `
		INSERT INTO recurring_bills (id, user_id, name, amount, category, due_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Name,
		b.Amount,
		b.Category,
		b.DueDay,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetByID retrieves a recurring bill by ID
func (r *BillRepository) GetByID(ctx context.Context, id uuid.UUID) (*bill.RecurringBill, error) {
	query := `
		SELECT id, user_id, name, amount, category, due_day, created_at, updated_at
		FROM recurring_bills
		WHERE id = $1
	`

	b := &bill.RecurringBill{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Amount,
		&b.Category,
		&b.DueDay,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bill.ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

// GetByUserID retrieves all recurring bills of a user
func (r *BillRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*bill.RecurringBill, error) {
	query := `
		SELECT id, user_id, name, amount, category, due_day, created_at, updated_at
		FROM recurring_bills
		WHERE user_id = $1
		ORDER BY due_day
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.RecurringBill
	for rows.Next() {
		b := &bill.RecurringBill{}
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Name,
			&b.Amount,
			&b.Category,
			&b.DueDay,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

// Update updates an existing recurring bill
func (r *BillRepository) Update(ctx context.Context, b *bill.RecurringBill) error {
	query := `
		UPDATE recurring_bills
		SET name = $1, amount = $2, category = $3, due_day = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(ctx, query,
		b.Name,
		b.Amount,
		b.Category,
		b.DueDay,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}

// Delete deletes a recurring bill by ID
func (r *BillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM recurring_bills WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}
