package asset

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for asset persistence
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Asset, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}
