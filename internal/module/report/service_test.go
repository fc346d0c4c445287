package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/platform/wallet"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Snapshot(ctx context.Context, userID uuid.UUID) (*Backup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Backup), args.Error(1)
}

func (m *MockStore) Restore(ctx context.Context, userID uuid.UUID, b *Backup) error {
	args := m.Called(ctx, userID, b)
	return args.Error(0)
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func TestService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	lister := new(MockLister)
	svc := NewService(new(MockStore), lister)

	lister.On("List", ctx, userID, mock.Anything).Return([]*ledger.Transaction{
		{
			Type:       ledger.TypeExpense,
			Category:   "Ăn uống",
			Amount:     decimal.NewFromInt(1_250_000),
			Note:       "Ăn nhà hàng",
			OccurredAt: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Type:       ledger.TypeIncome,
			Category:   "Lương",
			Amount:     decimal.NewFromInt(30_000_000),
			OccurredAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	out, err := svc.ExportCSV(ctx, userID, nil, nil)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "starts with UTF-8 BOM")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ngày", "Loại", "Danh mục", "Số tiền", "Ghi chú"}, rows[0])
	assert.Equal(t, []string{"05/03/2025", "Chi tiêu", "Ăn uống", "1.250.000", "Ăn nhà hàng"}, rows[1])
	assert.Equal(t, "01/03/2025", rows[2][0])
	assert.Equal(t, "Thu nhập", rows[2][1])
	assert.Equal(t, "30.000.000", rows[2][3])
}

func TestService_ExportBackup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := new(MockStore)
	svc := NewService(store, new(MockLister))

	store.On("Snapshot", ctx, userID).Return(&Backup{
		Transactions: []*ledger.Transaction{{ID: uuid.New()}},
		Wallets:      []*wallet.Wallet{{ID: uuid.New(), Name: "Ví chính"}},
	}, nil)

	raw, err := svc.ExportBackup(ctx, userID)
	require.NoError(t, err)

	var decoded Backup
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, BackupVersion, decoded.Version)
	assert.False(t, decoded.ExportedAt.IsZero())
	assert.Len(t, decoded.Transactions, 1)
}

func TestService_ImportBackup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects file missing required collections", func(t *testing.T) {
		svc := NewService(new(MockStore), new(MockLister))

		_, err := svc.ImportBackup(ctx, userID, []byte(`{"wallets": []}`))
		assert.ErrorIs(t, err, ErrInvalidBackup)

		_, err = svc.ImportBackup(ctx, userID, []byte(`{"transactions": []}`))
		assert.ErrorIs(t, err, ErrInvalidBackup)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		svc := NewService(new(MockStore), new(MockLister))

		_, err := svc.ImportBackup(ctx, userID, []byte(`{not json`))
		assert.ErrorIs(t, err, ErrInvalidBackup)
	})

	t.Run("rejects future versions", func(t *testing.T) {
		svc := NewService(new(MockStore), new(MockLister))

		_, err := svc.ImportBackup(ctx, userID, []byte(`{"version": 99, "transactions": [], "wallets": []}`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("reassigns ownership and restores atomically", func(t *testing.T) {
		store := new(MockStore)
		svc := NewService(store, new(MockLister))

		foreign := uuid.New()
		b := &Backup{
			Transactions: []*ledger.Transaction{{ID: uuid.New(), UserID: foreign}},
			Wallets:      []*wallet.Wallet{{ID: uuid.New(), UserID: foreign}},
		}
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		store.On("Restore", ctx, userID, mock.MatchedBy(func(b *Backup) bool {
			return len(b.Transactions) == 1 &&
				b.Transactions[0].UserID == userID &&
				b.Wallets[0].UserID == userID
		})).Return(nil)

		_, err = svc.ImportBackup(ctx, userID, raw)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}
