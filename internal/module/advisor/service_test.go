package advisor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/finmath"
	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/asset"
	"github.com/hieutran/moneykeeper/pkg/logger"
)

type MockSpending struct {
	mock.Mock
}

func (m *MockSpending) Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*ledger.MonthlySummary, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.MonthlySummary), args.Error(1)
}

func (m *MockSpending) RecentMonthlyExpenses(ctx context.Context, userID uuid.UUID, year int, month time.Month, n int) ([]decimal.Decimal, error) {
	args := m.Called(ctx, userID, year, month, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

type MockPortfolio struct {
	mock.Mock
}

func (m *MockPortfolio) BuildPortfolio(ctx context.Context, userID uuid.UUID) (*asset.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Portfolio), args.Error(1)
}

type MockDebts struct {
	mock.Mock
}

func (m *MockDebts) OutstandingOwed(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockBudgets struct {
	mock.Mock
}

func (m *MockBudgets) TotalLimit(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockAI struct {
	mock.Mock
}

func (m *MockAI) Advise(ctx context.Context, question string, snapshot *finmath.HealthScore) (string, error) {
	args := m.Called(ctx, question, snapshot)
	return args.String(0), args.Error(1)
}

// memCache is a map-backed Cache for tests
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func newTestService(sp SpendingStats, pf PortfolioReader, db DebtReader, bg BudgetReader, c Cache, ai AIClient) *Service {
	return NewService(sp, pf, db, bg, c, ai, time.Hour, logger.NewDefault("test"))
}

func TestService_StressTest(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil, nil)

	loan := finmath.SplitRateLoan{
		Principal:    2_000_000_000,
		TermMonths:   240,
		PrefRatePct:  8,
		PrefMonths:   24,
		FloatRatePct: 12,
	}

	res := svc.StressTest(loan, 60_000_000)

	assert.Greater(t, res.Schedule.PaymentFloat, res.Schedule.PaymentPref)
	assert.Greater(t, res.ShockAmount, 0.0)
	assert.Greater(t, res.ShockPercent, 0.0)
	assert.Greater(t, res.BurdenFloatPct, res.BurdenPrefPct)
	assert.InDelta(t, res.Schedule.PaymentPref/60_000_000*100, res.BurdenPrefPct, 1e-9)
}

func TestService_HealthSnapshot(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setupMocks := func() (*MockSpending, *MockPortfolio, *MockDebts, *MockBudgets) {
		sp := new(MockSpending)
		sp.On("Summarize", ctx, userID, mock.Anything, mock.Anything).Return(&ledger.MonthlySummary{
			Income:  decimal.NewFromInt(60_000_000),
			Expense: decimal.NewFromInt(40_000_000),
		}, nil)
		sp.On("RecentMonthlyExpenses", ctx, userID, mock.Anything, mock.Anything, 3).Return([]decimal.Decimal{
			decimal.NewFromInt(38_000_000),
			decimal.NewFromInt(42_000_000),
			decimal.NewFromInt(40_000_000),
		}, nil)

		pf := new(MockPortfolio)
		pf.On("BuildPortfolio", ctx, userID).Return(&asset.Portfolio{
			Total:    decimal.NewFromInt(1_000_000_000),
			Liquid:   decimal.NewFromInt(300_000_000),
			Invested: decimal.NewFromInt(500_000_000),
		}, nil)

		db := new(MockDebts)
		db.On("OutstandingOwed", ctx, userID).Return(decimal.NewFromInt(100_000_000), nil)

		bg := new(MockBudgets)
		bg.On("TotalLimit", ctx, userID).Return(decimal.NewFromInt(45_000_000), nil)

		return sp, pf, db, bg
	}

	t.Run("computes score from aggregates", func(t *testing.T) {
		sp, pf, db, bg := setupMocks()
		svc := newTestService(sp, pf, db, bg, nil, nil)

		score, err := svc.HealthSnapshot(ctx, userID)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, score.Overall, 0)
		assert.LessOrEqual(t, score.Overall, 100)
		// savings rate 20M/60M = 33% > 20% target
		assert.Equal(t, 100.0, score.SavingsRate)
	})

	t.Run("serves repeated calls from cache", func(t *testing.T) {
		sp, pf, db, bg := setupMocks()
		cache := newMemCache()
		svc := newTestService(sp, pf, db, bg, cache, nil)

		first, err := svc.HealthSnapshot(ctx, userID)
		require.NoError(t, err)

		second, err := svc.HealthSnapshot(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, first.Overall, second.Overall)
		sp.AssertNumberOfCalls(t, "Summarize", 1)
	})
}

func TestService_Consult(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("refused without AI client", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, nil, nil, nil)

		_, err := svc.Consult(ctx, userID, "Tôi nên tiết kiệm bao nhiêu?")

		assert.ErrorIs(t, err, ErrAdvisorUnavailable)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, nil, nil, new(MockAI))

		_, err := svc.Consult(ctx, userID, "")

		assert.ErrorIs(t, err, ErrEmptyQuestion)
	})

	t.Run("caches replies per question", func(t *testing.T) {
		sp := new(MockSpending)
		sp.On("Summarize", ctx, userID, mock.Anything, mock.Anything).Return(&ledger.MonthlySummary{
			Income:  decimal.NewFromInt(60_000_000),
			Expense: decimal.NewFromInt(40_000_000),
		}, nil)
		sp.On("RecentMonthlyExpenses", ctx, userID, mock.Anything, mock.Anything, 3).Return([]decimal.Decimal{}, nil)

		pf := new(MockPortfolio)
		pf.On("BuildPortfolio", ctx, userID).Return(&asset.Portfolio{}, nil)
		db := new(MockDebts)
		db.On("OutstandingOwed", ctx, userID).Return(decimal.Zero, nil)
		bg := new(MockBudgets)
		bg.On("TotalLimit", ctx, userID).Return(decimal.Zero, nil)

		ai := new(MockAI)
		ai.On("Advise", ctx, "Câu hỏi", mock.Anything).Return("Câu trả lời", nil).Once()

		svc := newTestService(sp, pf, db, bg, newMemCache(), ai)

		first, err := svc.Consult(ctx, userID, "Câu hỏi")
		require.NoError(t, err)
		assert.False(t, first.Cached)

		second, err := svc.Consult(ctx, userID, "Câu hỏi")
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, "Câu trả lời", second.Answer)

		ai.AssertExpectations(t)
	})
}
