package wallet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/platform/wallet"
)

// MockRepository is a mock implementation of wallet.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Wallet), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

// MockLedgerReader is a mock implementation of wallet.LedgerReader
type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) NetFlowByWallet(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerReader) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name      string
		wallet    *wallet.Wallet
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "valid cash wallet",
			wallet: &wallet.Wallet{
				UserID: userID,
				Name:   "Ví tiền mặt",
				Type:   wallet.TypeCash,
			},
			setupMock: func(m *MockRepository) {
				m.On("ExistsByUserAndName", ctx, userID, "Ví tiền mặt").Return(false, nil)
				m.On("Create", ctx, mock.AnythingOfType("*wallet.Wallet")).Return(nil)
			},
		},
		{
			name: "duplicate name",
			wallet: &wallet.Wallet{
				UserID: userID,
				Name:   "Vietcombank",
				Type:   wallet.TypeBank,
			},
			setupMock: func(m *MockRepository) {
				m.On("ExistsByUserAndName", ctx, userID, "Vietcombank").Return(true, nil)
			},
			wantErr: wallet.ErrDuplicateWalletName,
		},
		{
			name: "invalid type",
			wallet: &wallet.Wallet{
				UserID: userID,
				Name:   "Mystery",
				Type:   "checking",
			},
			setupMock: func(m *MockRepository) {},
			wantErr:   wallet.ErrInvalidWalletType,
		},
		{
			name: "credit limit on non-credit wallet",
			wallet: func() *wallet.Wallet {
				limit := decimal.NewFromInt(50_000_000)
				return &wallet.Wallet{
					UserID:      userID,
					Name:        "Momo",
					Type:        wallet.TypeEWallet,
					CreditLimit: &limit,
				}
			}(),
			setupMock: func(m *MockRepository) {},
			wantErr:   wallet.ErrCreditLimitNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := wallet.NewService(repo, new(MockLedgerReader))
			created, err := svc.Create(ctx, tt.wallet)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetBalance_FoldsTransactions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	w := &wallet.Wallet{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           "Vietcombank",
		Type:           wallet.TypeBank,
		InitialBalance: decimal.NewFromInt(10_000_000),
	}

	repo := new(MockRepository)
	repo.On("GetByID", ctx, w.ID).Return(w, nil)

	ledger := new(MockLedgerReader)
	// +5M income, -2M expense over the wallet's lifetime
	ledger.On("NetFlowByWallet", ctx, w.ID).Return(decimal.NewFromInt(3_000_000), nil)

	svc := wallet.NewService(repo, ledger)
	bal, err := svc.GetBalance(ctx, w.ID, userID)

	require.NoError(t, err)
	assert.True(t, bal.CurrentBalance.Equal(decimal.NewFromInt(13_000_000)),
		"got %s", bal.CurrentBalance)
}

func TestService_GetBalance_WrongUser(t *testing.T) {
	ctx := context.Background()
	w := &wallet.Wallet{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Private",
		Type:   wallet.TypeCash,
	}

	repo := new(MockRepository)
	repo.On("GetByID", ctx, w.ID).Return(w, nil)

	svc := wallet.NewService(repo, new(MockLedgerReader))
	_, err := svc.GetBalance(ctx, w.ID, uuid.New())

	assert.ErrorIs(t, err, wallet.ErrUnauthorizedAccess)
}

func TestService_Delete_GuardedByTransactions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	w := &wallet.Wallet{ID: uuid.New(), UserID: userID, Name: "Old", Type: wallet.TypeCash}

	t.Run("refuses when transactions reference the wallet", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, w.ID).Return(w, nil)

		ledger := new(MockLedgerReader)
		ledger.On("CountByWallet", ctx, w.ID).Return(int64(4), nil)

		svc := wallet.NewService(repo, ledger)
		err := svc.Delete(ctx, w.ID, userID)
		assert.ErrorIs(t, err, wallet.ErrWalletHasTransactions)
	})

	t.Run("deletes an unreferenced wallet", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, w.ID).Return(w, nil)
		repo.On("Delete", ctx, w.ID).Return(nil)

		ledger := new(MockLedgerReader)
		ledger.On("CountByWallet", ctx, w.ID).Return(int64(0), nil)

		svc := wallet.NewService(repo, ledger)
		require.NoError(t, svc.Delete(ctx, w.ID, userID))
		repo.AssertExpectations(t)
	})
}
