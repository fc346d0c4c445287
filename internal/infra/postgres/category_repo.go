package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/platform/category"
)

// CategoryRepository implements the custom category repository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a custom category
func (r *CategoryRepository) Create(ctx context.Context, c *category.CustomCategory) error {
	query := `
		INSERT INTO custom_categories (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.UserID, c.Name, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create custom category: %w", err)
	}
	return nil
}

// GetByUserID retrieves all custom categories of a user
func (r *CategoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*category.CustomCategory, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM custom_categories
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.CustomCategory
	for rows.Next() {
		c := &category.CustomCategory{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom categories: %w", err)
	}
	return categories, nil
}

// Delete removes a custom category by name
func (r *CategoryRepository) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	query := `DELETE FROM custom_categories WHERE user_id = $1 AND name = $2`

	result, err := r.pool.Exec(ctx, query, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete custom category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Exists checks if a custom category with the given name exists for the user
func (r *CategoryRepository) Exists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM custom_categories WHERE user_id = $1 AND name = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}
