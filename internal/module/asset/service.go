package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for the asset portfolio
type Service struct {
	repo Repository
}

// NewService creates a new asset service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an asset. Unit-based assets get their values derived from
// quantity and prices before storage.
func (s *Service) Create(ctx context.Context, a *Asset) (*Asset, error) {
	if err := a.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	a.ID = uuid.New()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Normalize()

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return a, nil
}

// GetByID retrieves an asset and verifies ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return a, nil
}

// List returns all assets of a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Asset, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update edits an asset, re-deriving unit-based values
func (s *Service) Update(ctx context.Context, a *Asset, userID uuid.UUID) (*Asset, error) {
	existing, err := s.GetByID(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}

	a.UserID = existing.UserID
	a.CreatedAt = existing.CreatedAt

	if err := a.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	a.UpdatedAt = time.Now()
	a.Normalize()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return a, nil
}

// UpdatePrice refreshes the current unit price of a unit-based asset and
// re-derives its value
func (s *Service) UpdatePrice(ctx context.Context, id, userID uuid.UUID, price decimal.Decimal) (*Asset, error) {
	a, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !a.Kind.IsUnitBased() {
		return nil, ErrInvalidKind
	}
	if price.IsNegative() {
		return nil, ErrMissingPrice
	}

	a.CurrentPrice = &price
	a.UpdatedAt = time.Now()
	a.Normalize()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update asset price: %w", err)
	}
	return a, nil
}

// Delete removes an asset
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// BuildPortfolio aggregates the user's assets into totals
func (s *Service) BuildPortfolio(ctx context.Context, userID uuid.UUID) (*Portfolio, error) {
	assets, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	p := &Portfolio{
		Total:    decimal.Zero,
		Liquid:   decimal.Zero,
		Invested: decimal.Zero,
		GainLoss: decimal.Zero,
		ByKind:   make(map[Kind]decimal.Decimal),
	}
	for _, a := range assets {
		p.Total = p.Total.Add(a.Value)
		p.GainLoss = p.GainLoss.Add(a.GainLoss())
		if a.Kind.IsLiquid() {
			p.Liquid = p.Liquid.Add(a.Value)
		}
		if a.Kind.IsInvested() {
			p.Invested = p.Invested.Add(a.Value)
		}
		p.ByKind[a.Kind] = p.ByKind[a.Kind].Add(a.Value)
	}
	return p, nil
}
