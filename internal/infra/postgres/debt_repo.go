package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/module/debt"
)

// DebtRepository implements the debt repository using PostgreSQL
type DebtRepository struct {
	pool *pgxpool.Pool
}

// NewDebtRepository creates a new PostgreSQL debt repository
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{pool: pool}
}

// Create creates a new debt
func (r *DebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (id, user_id, person, amount, type, due_date, note, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID,
		d.UserID,
		d.Person,
		d.Amount,
		d.Type,
		d.DueDate,
		d.Note,
		d.IsPaid,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

// GetByID retrieves a debt by ID
func (r *DebtRepository) GetByID(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	query := `
		SELECT id, user_id, person, amount, type, due_date, note, is_paid, created_at, updated_at
		FROM debts
		WHERE id = $1
	`

	d := &debt.Debt{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.UserID,
		&d.Person,
		&d.Amount,
		&d.Type,
		&d.DueDate,
		&d.Note,
		&d.IsPaid,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, debt.ErrDebtNotFound
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return d, nil
}

// GetByUserID retrieves all debts of a user
func (r *DebtRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*debt.Debt, error) {
	query := `
		SELECT id, user_id, person, amount, type, due_date, note, is_paid, created_at, updated_at
		FROM debts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt
	for rows.Next() {
		d := &debt.Debt{}
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Person,
			&d.Amount,
			&d.Type,
			&d.DueDate,
			&d.Note,
			&d.IsPaid,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

// Update updates an existing debt
func (r *DebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE debts
		SET person = $1, amount = $2, type = $3, due_date = $4, note = $5, is_paid = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.pool.Exec(ctx, query,
		d.Person,
		d.Amount,
		d.Type,
		d.DueDate,
		d.Note,
		d.IsPaid,
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return debt.ErrDebtNotFound
	}
	return nil
}

// Delete deletes a debt by ID
func (r *DebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM debts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return debt.ErrDebtNotFound
	}
	return nil
}
