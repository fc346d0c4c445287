package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service merges the fixed standard categories with each user's custom set
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the standard categories followed by the user's custom ones
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	customs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom categories: %w", err)
	}

	cats := StandardCategories()
	for _, c := range customs {
		cats = append(cats, Category{Name: c.Name, Custom: true})
	}
	return cats, nil
}

// Lookup resolves a name against the merged set
func (s *Service) Lookup(ctx context.Context, userID uuid.UUID, name string) (Category, bool, error) {
	if IsStandard(name) {
		return Category{Name: name}, true, nil
	}

	exists, err := s.repo.Exists(ctx, userID, name)
	if err != nil {
		return Category{}, false, fmt.Errorf("failed to look up category: %w", err)
	}
	if !exists {
		return Category{}, false, nil
	}
	return Category{Name: name, Custom: true}, true, nil
}

// Add creates a new custom category for the user
func (s *Service) Add(ctx context.Context, userID uuid.UUID, name string) (*CustomCategory, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if len([]rune(name)) > 50 {
		return nil, ErrNameTooLong
	}
	if IsStandard(name) {
		return nil, ErrShadowsStandard
	}

	exists, err := s.repo.Exists(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCategory
	}

	c := &CustomCategory{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// Remove deletes a custom category. Standard categories cannot be removed.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, name string) error {
	if IsStandard(name) {
		return ErrStandardReadOnly
	}

	exists, err := s.repo.Exists(ctx, userID, name)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return ErrCategoryNotFound
	}

	return s.repo.Delete(ctx, userID, name)
}
