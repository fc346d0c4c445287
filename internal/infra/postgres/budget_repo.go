package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/module/budget"
)

// BudgetRepository implements the budget repository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new PostgreSQL budget repository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert creates or replaces a category budget
func (r *BudgetRepository) Upsert(ctx context.Context, b *budget.CategoryBudget) error {
	query := `
		INSERT INTO category_budgets (id, user_id, category, "limit", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, category)
		DO UPDATE SET "limit" = EXCLUDED."limit", updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Category,
		b.Limit,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// GetByUserID retrieves all category budgets of a user
func (r *BudgetRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*budget.CategoryBudget, error) {
	query := `
		SELECT id, user_id, category, "limit", created_at, updated_at
		FROM category_budgets
		WHERE user_id = $1
		ORDER BY category
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.CategoryBudget
	for rows.Next() {
		b := &budget.CategoryBudget{}
		err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// Delete removes a category budget
func (r *BudgetRepository) Delete(ctx context.Context, userID uuid.UUID, category string) error {
	query := `DELETE FROM category_budgets WHERE user_id = $1 AND category = $2`

	result, err := r.pool.Exec(ctx, query, userID, category)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if result.RowsAffected() == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}

// GetPlannedIncome retrieves the planned income for a month, nil when unset
func (r *BudgetRepository) GetPlannedIncome(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*budget.PlannedIncome, error) {
	query := `
		SELECT user_id, year, month, amount
		FROM planned_incomes
		WHERE user_id = $1 AND year = $2 AND month = $3
	`

	p := &budget.PlannedIncome{}
	err := r.pool.QueryRow(ctx, query, userID, year, int(month)).Scan(
		&p.UserID,
		&p.Year,
		&p.Month,
		&p.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get planned income: %w", err)
	}
	return p, nil
}

// SetPlannedIncome creates or replaces the planned income for a month
func (r *BudgetRepository) SetPlannedIncome(ctx context.Context, p *budget.PlannedIncome) error {
	query := `
		INSERT INTO planned_incomes (user_id, year, month, amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year, month)
		DO UPDATE SET amount = EXCLUDED.amount
	`

	_, err := r.pool.Exec(ctx, query, p.UserID, p.Year, int(p.Month), p.Amount)
	if err != nil {
		return fmt.Errorf("failed to set planned income: %w", err)
	}
	return nil
}
