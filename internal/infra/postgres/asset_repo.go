package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hieutran/moneykeeper/internal/module/asset"
)

// AssetRepository implements the asset repository using PostgreSQL
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new PostgreSQL asset repository
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO assets (id, user_id, name, kind, value, initial_value, quantity, buy_price, current_price, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Name,
		a.Kind,
		a.Value,
		a.InitialValue,
		a.Quantity,
		a.BuyPrice,
		a.CurrentPrice,
		a.Note,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	query := `
		SELECT id, user_id, name, kind, value, initial_value, quantity, buy_price, current_price, note, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	a := &asset.Asset{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Kind,
		&a.Value,
		&a.InitialValue,
		&a.Quantity,
		&a.BuyPrice,
		&a.CurrentPrice,
		&a.Note,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, asset.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return a, nil
}

// GetByUserID retrieves all assets of a user
func (r *AssetRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*asset.Asset, error) {
	query := `
		SELECT id, user_id, name, kind, value, initial_value, quantity, buy_price, current_price, note, created_at, updated_at
		FROM assets
		WHERE user_id = $1
		ORDER BY value DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []*asset.Asset
	for rows.Next() {
		a := &asset.Asset{}
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Kind,
			&a.Value,
			&a.InitialValue,
			&a.Quantity,
			&a.BuyPrice,
			&a.CurrentPrice,
			&a.Note,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}
	return assets, nil
}

// Update updates an existing asset
func (r *AssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	query := `
		UPDATE assets
		SET name = $1, kind = $2, value = $3, initial_value = $4, quantity = $5,
		    buy_price = $6, current_price = $7, note = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.pool.Exec(ctx, query,
		a.Name,
		a.Kind,
		a.Value,
		a.InitialValue,
		a.Quantity,
		a.BuyPrice,
		a.CurrentPrice,
		a.Note,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}

// Delete deletes an asset by ID
func (r *AssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}
