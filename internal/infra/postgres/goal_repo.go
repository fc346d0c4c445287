package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/module/goal"
)

// GoalRepository implements the savings goal repository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create creates a new savings goal
func (r *GoalRepository) Create(ctx context.Context, g *goal.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, deadline, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		g.ID,
		g.UserID,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.Deadline,
		g.Image,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID retrieves a savings goal by ID
func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*goal.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, image, created_at, updated_at
		FROM savings_goals
		WHERE id = $1
	`

	g := &goal.SavingsGoal{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.Image,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

// GetByUserID retrieves all savings goals of a user
func (r *GoalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*goal.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, image, created_at, updated_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.SavingsGoal
	for rows.Next() {
		g := &goal.SavingsGoal{}
		err := rows.Scan(
			&g.ID,
			&g.UserID,
			&g.Name,
			&g.TargetAmount,
			&g.CurrentAmount,
			&g.Deadline,
			&g.Image,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// Update updates an existing savings goal
func (r *GoalRepository) Update(ctx context.Context, g *goal.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET name = $1, target_amount = $2, current_amount = $3, deadline = $4, image = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.pool.Exec(ctx, query,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.Deadline,
		g.Image,
		g.UpdatedAt,
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// Delete deletes a savings goal by ID
func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM savings_goals WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}
