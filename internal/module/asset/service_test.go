package asset

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Asset), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Asset), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, a *Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("derives unit-based values", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*asset.Asset")).Return(nil)

		a, err := svc.Create(ctx, &Asset{
			UserID:       userID,
			Name:         "Vàng SJC",
			Kind:         KindGold,
			Quantity:     decPtr(dec(5)),
			BuyPrice:     decPtr(dec(70_000_000)),
			CurrentPrice: decPtr(dec(75_000_000)),
		})

		require.NoError(t, err)
		assert.True(t, a.Value.Equal(dec(375_000_000)))
		assert.True(t, a.InitialValue.Equal(dec(350_000_000)))
		assert.True(t, a.GainLoss().Equal(dec(25_000_000)))
	})

	t.Run("unit-based asset requires quantity", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(ctx, &Asset{
			UserID:       userID,
			Name:         "VNM",
			Kind:         KindStock,
			CurrentPrice: decPtr(dec(65_000)),
		})

		assert.ErrorIs(t, err, ErrMissingQuantity)
	})

	t.Run("plain asset defaults initial value", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.Anything).Return(nil)

		a, err := svc.Create(ctx, &Asset{
			UserID: userID,
			Name:   "Sổ tiết kiệm VCB",
			Kind:   KindSavings,
			Value:  dec(100_000_000),
		})

		require.NoError(t, err)
		assert.True(t, a.InitialValue.Equal(dec(100_000_000)))
	})
}

func TestService_UpdatePrice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("re-derives value", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		a := &Asset{
			ID:           uuid.New(),
			UserID:       userID,
			Name:         "BTC",
			Kind:         KindCrypto,
			Quantity:     decPtr(decimal.NewFromFloat(0.5)),
			BuyPrice:     decPtr(dec(1_000_000_000)),
			CurrentPrice: decPtr(dec(1_200_000_000)),
		}
		a.Normalize()

		repo.On("GetByID", ctx, a.ID).Return(a, nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		updated, err := svc.UpdatePrice(ctx, a.ID, userID, dec(1_500_000_000))

		require.NoError(t, err)
		assert.True(t, updated.Value.Equal(dec(750_000_000)))
		assert.True(t, updated.InitialValue.Equal(dec(500_000_000)), "initial value stays derived from buy price")
	})

	t.Run("rejects non unit-based kind", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		a := &Asset{ID: uuid.New(), UserID: userID, Kind: KindRealEstate, Value: dec(2_000_000_000)}
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		_, err := svc.UpdatePrice(ctx, a.ID, userID, dec(1))

		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestService_BuildPortfolio(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByUserID", ctx, userID).Return([]*Asset{
		{Kind: KindSavings, Value: dec(100_000_000), InitialValue: dec(100_000_000)},
		{Kind: KindGold, Value: dec(375_000_000), InitialValue: dec(350_000_000)},
		{Kind: KindStock, Value: dec(50_000_000), InitialValue: dec(60_000_000)},
		{Kind: KindRealEstate, Value: dec(2_000_000_000), InitialValue: dec(1_800_000_000)},
		{Kind: KindOther, Value: dec(10_000_000), InitialValue: dec(10_000_000)},
	}, nil)

	p, err := svc.BuildPortfolio(ctx, userID)
	require.NoError(t, err)

	assert.True(t, p.Total.Equal(dec(2_535_000_000)))
	assert.True(t, p.Liquid.Equal(dec(475_000_000)), "savings plus gold")
	assert.True(t, p.Invested.Equal(dec(2_425_000_000)), "gold, stock and real estate")
	assert.True(t, p.GainLoss.Equal(dec(215_000_000)))
	assert.True(t, p.ByKind[KindGold].Equal(dec(375_000_000)))
}
