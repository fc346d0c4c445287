package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for custom category data access
type Repository interface {
	Create(ctx context.Context, c *CustomCategory) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*CustomCategory, error)
	Delete(ctx context.Context, userID uuid.UUID, name string) error
	Exists(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
