package bill

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

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *RecurringBill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*RecurringBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RecurringBill), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*RecurringBill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*RecurringBill), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, b *RecurringBill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Record(ctx context.Context, tx *ledger.Transaction) (*ledger.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedger) List(ctx context.Context, userID uuid.UUID, f ledger.Filters) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func testBill(userID uuid.UUID) *RecurringBill {
	return &RecurringBill{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     "Tiền điện",
		Amount:   decimal.NewFromInt(500_000),
		Category: "Hóa đơn & Tiện ích",
		DueDay:   5,
	}
}

func fixedService(repo Repository, l Ledger, now time.Time) *Service {
	s := NewService(repo, l)
	s.now = func() time.Time { return now }
	return s
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates valid bill", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockLedger))

		repo.On("Create", ctx, mock.AnythingOfType("*bill.RecurringBill")).Return(nil)

		b := testBill(userID)
		b.ID = uuid.Nil
		created, err := svc.Create(ctx, b)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("rejects due day out of range", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockLedger))

		b := testBill(userID)
		b.DueDay = 32
		_, err := svc.Create(ctx, b)

		assert.ErrorIs(t, err, ErrInvalidDueDay)
	})
}

func TestService_Pay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	from, to := ledger.MonthRange(2025, time.March)

	t.Run("records linked expense", func(t *testing.T) {
		repo := new(MockRepository)
		l := new(MockLedger)
		svc := fixedService(repo, l, now)

		b := testBill(userID)
		repo.On("GetByID", ctx, b.ID).Return(b, nil)

		// no payment yet this month, neither linked nor by note
		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID != nil && *f.RecurringBillID == b.ID &&
				f.From.Equal(from) && f.To.Equal(to)
		})).Return([]*ledger.Transaction{}, nil)
		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID == nil && f.Type != nil && *f.Type == ledger.TypeExpense
		})).Return([]*ledger.Transaction{}, nil)

		l.On("Record", ctx, mock.MatchedBy(func(tx *ledger.Transaction) bool {
			return tx.Type == ledger.TypeExpense &&
				tx.Source == ledger.SourceBill &&
				tx.RecurringBillID != nil && *tx.RecurringBillID == b.ID &&
				tx.Amount.Equal(b.Amount) &&
				tx.Category == b.Category
		})).Return(&ledger.Transaction{ID: uuid.New()}, nil)

		_, err := svc.Pay(ctx, b.ID, userID, nil)

		require.NoError(t, err)
		l.AssertExpectations(t)
	})

	t.Run("refuses double payment", func(t *testing.T) {
		repo := new(MockRepository)
		l := new(MockLedger)
		svc := fixedService(repo, l, now)

		b := testBill(userID)
		repo.On("GetByID", ctx, b.ID).Return(b, nil)

		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID != nil
		})).Return([]*ledger.Transaction{{ID: uuid.New()}}, nil)

		_, err := svc.Pay(ctx, b.ID, userID, nil)

		assert.ErrorIs(t, err, ErrAlreadyPaid)
		l.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects foreign bill", func(t *testing.T) {
		repo := new(MockRepository)
		svc := fixedService(repo, new(MockLedger), now)

		b := testBill(uuid.New())
		repo.On("GetByID", ctx, b.ID).Return(b, nil)

		_, err := svc.Pay(ctx, b.ID, userID, nil)

		assert.ErrorIs(t, err, ErrUnauthorizedAccess)
	})
}

func TestService_MonthlyStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("derives paid from explicit link", func(t *testing.T) {
		repo := new(MockRepository)
		l := new(MockLedger)
		now := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
		svc := fixedService(repo, l, now)

		b := testBill(userID)
		repo.On("GetByUserID", ctx, userID).Return([]*RecurringBill{b}, nil)
		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID != nil
		})).Return([]*ledger.Transaction{{ID: uuid.New()}}, nil)

		statuses, err := svc.MonthlyStatus(ctx, userID, 2025, time.March)

		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.True(t, statuses[0].Paid)
		assert.False(t, statuses[0].Overdue)
	})

	t.Run("falls back to note match", func(t *testing.T) {
		repo := new(MockRepository)
		l := new(MockLedger)
		now := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
		svc := fixedService(repo, l, now)

		b := testBill(userID)
		repo.On("GetByUserID", ctx, userID).Return([]*RecurringBill{b}, nil)
		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID != nil
		})).Return([]*ledger.Transaction{}, nil)
		l.On("List", ctx, userID, mock.MatchedBy(func(f ledger.Filters) bool {
			return f.RecurringBillID == nil
		})).Return([]*ledger.Transaction{
			{Note: "Đóng tiền điện tháng 3", Type: ledger.TypeExpense},
		}, nil)

		statuses, err := svc.MonthlyStatus(ctx, userID, 2025, time.March)

		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.True(t, statuses[0].Paid)
	})

	t.Run("marks unpaid bill overdue after due date", func(t *testing.T) {
		repo := new(MockRepository)
		l := new(MockLedger)
		now := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
		svc := fixedService(repo, l, now)

		b := testBill(userID) // due on the 5th
		repo.On("GetByUserID", ctx, userID).Return([]*RecurringBill{b}, nil)
		l.On("List", ctx, userID, mock.Anything).Return([]*ledger.Transaction{}, nil)

		statuses, err := svc.MonthlyStatus(ctx, userID, 2025, time.March)

		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.False(t, statuses[0].Paid)
		assert.True(t, statuses[0].Overdue)
		assert.Equal(t, 5, statuses[0].DueDate.Day())
	})

	t.Run("clamps due day to month length", func(t *testing.T) {
		b := &RecurringBill{DueDay: 31}
		due := b.DueDateIn(2025, time.February)
		assert.Equal(t, 28, due.Day())

		due = b.DueDateIn(2024, time.February)
		assert.Equal(t, 29, due.Day())
	})
}
