package advisor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/internal/finmath"
	"github.com/hieutran/moneykeeper/internal/ledger"
	"github.com/hieutran/moneykeeper/internal/module/asset"
)

// SpendingStats is the slice of the ledger the advisor needs.
// *ledger.Service satisfies it.
type SpendingStats interface {
	Summarize(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*ledger.MonthlySummary, error)
	RecentMonthlyExpenses(ctx context.Context, userID uuid.UUID, year int, month time.Month, n int) ([]decimal.Decimal, error)
}

// PortfolioReader supplies asset totals. *asset.Service satisfies it.
type PortfolioReader interface {
	BuildPortfolio(ctx context.Context, userID uuid.UUID) (*asset.Portfolio, error)
}

// DebtReader supplies the outstanding debt load. *debt.Service satisfies it.
type DebtReader interface {
	OutstandingOwed(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// BudgetReader supplies the month's total budget limit. *budget.Service
// satisfies it.
type BudgetReader interface {
	TotalLimit(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// Cache stores computed snapshots and AI replies between requests.
// A miss returns (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// AIClient answers free-form financial questions given the user's current
// health snapshot as context.
type AIClient interface {
	Advise(ctx context.Context, question string, snapshot *finmath.HealthScore) (string, error)
}
