//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/platform/user"
	"github.com/hieutran/moneykeeper/internal/platform/wallet"
	"github.com/hieutran/moneykeeper/testutil/testdb"
)

func setupDB(t *testing.T) (*testdb.TestDB, context.Context) {
	t.Helper()
	ctx := context.Background()

	db, err := testdb.NewTestDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })

	return db, ctx
}

func seedUser(t *testing.T, ctx context.Context, db *testdb.TestDB) uuid.UUID {
	t.Helper()

	u := &user.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(db.Pool).Create(ctx, u))
	return u.ID
}

func seedWallet(t *testing.T, ctx context.Context, db *testdb.TestDB, userID uuid.UUID) uuid.UUID {
	t.Helper()

	w := &wallet.Wallet{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           "Ví chính",
		Type:           wallet.TypeCash,
		InitialBalance: decimal.NewFromInt(1_000_000),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, NewWalletRepository(db.Pool).Create(ctx, w))
	return w.ID
}

func newTx(userID uuid.UUID, walletID *uuid.UUID, txType ledger.Type, amount int64, category string, occurredAt time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     decimal.NewFromInt(amount),
		Type:       txType,
		Category:   category,
		OccurredAt: occurredAt,
		WalletID:   walletID,
		Source:     ledger.SourceManual,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestLedgerRepository_Integration(t *testing.T) {
	db, ctx := setupDB(t)
	repo := NewLedgerRepository(db.Pool)

	userID := seedUser(t, ctx, db)
	walletID := seedWallet(t, ctx, db, userID)

	march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("create and read back", func(t *testing.T) {
		tx := newTx(userID, &walletID, ledger.TypeExpense, 500_000, "Ăn uống", march)
		require.NoError(t, repo.Create(ctx, tx))

		got, err := repo.GetByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, got.ID)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(500_000)))
		assert.Equal(t, ledger.TypeExpense, got.Type)
		require.NotNil(t, got.WalletID)
		assert.Equal(t, walletID, *got.WalletID)
	})

	t.Run("aggregates", func(t *testing.T) {
		require.NoError(t, db.Reset(ctx))
		userID = seedUser(t, ctx, db)
		walletID = seedWallet(t, ctx, db, userID)

		require.NoError(t, repo.Create(ctx, newTx(userID, &walletID, ledger.TypeIncome, 30_000_000, "Lương", march)))
		require.NoError(t, repo.Create(ctx, newTx(userID, &walletID, ledger.TypeExpense, 5_000_000, "Ăn uống", march)))
		require.NoError(t, repo.Create(ctx, newTx(userID, &walletID, ledger.TypeExpense, 2_000_000, "Di chuyển", march)))

		from, to := ledger.MonthRange(2025, time.March)

		income, err := repo.SumByType(ctx, userID, ledger.TypeIncome, from, to)
		require.NoError(t, err)
		assert.True(t, income.Equal(decimal.NewFromInt(30_000_000)))

		byCat, err := repo.ExpenseByCategory(ctx, userID, from, to)
		require.NoError(t, err)
		assert.True(t, byCat["Ăn uống"].Equal(decimal.NewFromInt(5_000_000)))
		assert.True(t, byCat["Di chuyển"].Equal(decimal.NewFromInt(2_000_000)))

		net, err := repo.NetFlowByWallet(ctx, walletID)
		require.NoError(t, err)
		assert.True(t, net.Equal(decimal.NewFromInt(23_000_000)))

		count, err := repo.CountByWallet(ctx, walletID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("filters by bill link", func(t *testing.T) {
		require.NoError(t, db.Reset(ctx))
		userID = seedUser(t, ctx, db)

		billID := uuid.New()
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO recurring_bills (id, user_id, name, amount, category, due_day, created_at, updated_at)
			VALUES ($1, $2, 'Tiền điện', 500000, 'Hóa đơn', 5, NOW(), NOW())`,
			billID, userID,
		)
		require.NoError(t, err)

		linked := newTx(userID, nil, ledger.TypeExpense, 500_000, "Hóa đơn", march)
		linked.RecurringBillID = &billID
		linked.Source = ledger.SourceBill
		require.NoError(t, repo.Create(ctx, linked))
		require.NoError(t, repo.Create(ctx, newTx(userID, nil, ledger.TypeExpense, 100_000, "Ăn uống", march)))

		got, err := repo.List(ctx, userID, ledger.Filters{RecurringBillID: &billID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, linked.ID, got[0].ID)
	})
}
