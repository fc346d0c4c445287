package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/ledger"
)

// MockRepository is a mock implementation of ledger.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *MockRepository) SumByType(ctx context.Context, userID uuid.UUID, txType ledger.Type, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRepository) ExpenseByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockRepository) NetFlowByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRepository) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

// MockWalletReader is a mock implementation of ledger.WalletReader
type MockWalletReader struct {
	mock.Mock
}

func (m *MockWalletReader) OwnerOf(ctx context.Context, walletID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func validTransaction(userID uuid.UUID) *ledger.Transaction {
	return &ledger.Transaction{
		UserID:     userID,
		Amount:     decimal.NewFromInt(150_000),
		Type:       ledger.TypeExpense,
		Category:   "Ăn uống",
		Note:       "Bún chả",
		OccurredAt: time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid manual transaction", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

		svc := ledger.NewService(repo, new(MockWalletReader))
		tx, err := svc.Record(ctx, validTransaction(userID))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.Equal(t, ledger.SourceManual, tx.Source)
		repo.AssertExpectations(t)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		tx := validTransaction(userID)
		tx.Amount = decimal.Zero

		svc := ledger.NewService(new(MockRepository), new(MockWalletReader))
		_, err := svc.Record(ctx, tx)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		tx := validTransaction(userID)
		tx.Amount = decimal.NewFromInt(-500)

		svc := ledger.NewService(new(MockRepository), new(MockWalletReader))
		_, err := svc.Record(ctx, tx)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		tx := validTransaction(userID)
		tx.Type = "transfer"

		svc := ledger.NewService(new(MockRepository), new(MockWalletReader))
		_, err := svc.Record(ctx, tx)
		assert.ErrorIs(t, err, ledger.ErrInvalidType)
	})

	t.Run("wallet of another user rejected", func(t *testing.T) {
		walletID := uuid.New()
		tx := validTransaction(userID)
		tx.WalletID = &walletID

		wallets := new(MockWalletReader)
		wallets.On("OwnerOf", ctx, walletID).Return(uuid.New(), nil)

		svc := ledger.NewService(new(MockRepository), wallets)
		_, err := svc.Record(ctx, tx)
		assert.ErrorIs(t, err, ledger.ErrWalletNotOwned)
	})

	t.Run("own wallet accepted", func(t *testing.T) {
		walletID := uuid.New()
		tx := validTransaction(userID)
		tx.WalletID = &walletID

		wallets := new(MockWalletReader)
		wallets.On("OwnerOf", ctx, walletID).Return(userID, nil)

		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

		svc := ledger.NewService(repo, wallets)
		_, err := svc.Record(ctx, tx)
		require.NoError(t, err)
	})
}

func TestService_Update_PreservesProvenance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	existing := validTransaction(userID)
	existing.ID = uuid.New()
	existing.Source = ledger.SourceBill
	existing.CreatedAt = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	repo := new(MockRepository)
	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

	svc := ledger.NewService(repo, new(MockWalletReader))

	edit := validTransaction(userID)
	edit.ID = existing.ID
	edit.Amount = decimal.NewFromInt(200_000)
	edit.Source = ledger.SourceManual // must not override

	updated, err := svc.Update(ctx, edit, userID)
	require.NoError(t, err)
	assert.Equal(t, ledger.SourceBill, updated.Source)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
}

func TestService_Delete_ChecksOwnership(t *testing.T) {
	ctx := context.Background()
	tx := validTransaction(uuid.New())
	tx.ID = uuid.New()

	repo := new(MockRepository)
	repo.On("GetByID", ctx, tx.ID).Return(tx, nil)

	svc := ledger.NewService(repo, new(MockWalletReader))
	err := svc.Delete(ctx, tx.ID, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrUnauthorizedAccess)
}

func TestService_Summarize(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	from, to := ledger.MonthRange(2026, time.August)

	repo := new(MockRepository)
	repo.On("SumByType", ctx, userID, ledger.TypeIncome, from, to).
		Return(decimal.NewFromInt(50_000_000), nil)
	repo.On("SumByType", ctx, userID, ledger.TypeExpense, from, to).
		Return(decimal.NewFromInt(32_000_000), nil)
	repo.On("ExpenseByCategory", ctx, userID, from, to).
		Return(map[string]decimal.Decimal{
			"Ăn uống":  decimal.NewFromInt(12_000_000),
			"Hóa đơn": decimal.NewFromInt(20_000_000),
		}, nil)

	svc := ledger.NewService(repo, new(MockWalletReader))
	sum, err := svc.Summarize(ctx, userID, 2026, time.August)

	require.NoError(t, err)
	assert.True(t, sum.Net.Equal(decimal.NewFromInt(18_000_000)))
	assert.Len(t, sum.ExpenseByCategory, 2)
}

func TestService_RecentMonthlyExpenses(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockRepository)
	for i, amount := range []int64{30_000_000, 28_000_000, 35_000_000} {
		cursor := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(i + 1), 0)
		from, to := ledger.MonthRange(cursor.Year(), cursor.Month())
		repo.On("SumByType", ctx, userID, ledger.TypeExpense, from, to).
			Return(decimal.NewFromInt(amount), nil)
	}

	svc := ledger.NewService(repo, new(MockWalletReader))
	expenses, err := svc.RecentMonthlyExpenses(ctx, userID, 2026, time.August, 3)

	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.True(t, expenses[0].Equal(decimal.NewFromInt(30_000_000))) // July
	assert.True(t, expenses[2].Equal(decimal.NewFromInt(35_000_000))) // May
}
