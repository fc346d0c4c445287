package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hieutran/moneykeeper/internal/finmath"
	"github.com/hieutran/moneykeeper/pkg/logger"
)

const healthCacheTTL = 5 * time.Minute

// Service exposes the financial math engine over the user's live data:
// deal evaluation, loan stress tests and the financial health score.
type Service struct {
	spending  SpendingStats
	portfolio PortfolioReader
	debts     DebtReader
	budgets   BudgetReader
	cache     Cache
	ai        AIClient
	replyTTL  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates a new advisor service. cache and ai may be nil; the
// service then computes everything on demand and refuses Consult.
func NewService(
	spending SpendingStats,
	portfolio PortfolioReader,
	debts DebtReader,
	budgets BudgetReader,
	cache Cache,
	ai AIClient,
	replyTTL time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		spending:  spending,
		portfolio: portfolio,
		debts:     debts,
		budgets:   budgets,
		cache:     cache,
		ai:        ai,
		replyTTL:  replyTTL,
		log:       log,
		now:       time.Now,
	}
}

// EvaluateDeal runs the leveraged purchase analyzer on caller-supplied inputs
func (s *Service) EvaluateDeal(input finmath.DealInput) finmath.DealAssessment {
	return finmath.EvaluateDeal(input)
}

// StressTest lays out the payment shock of a split-rate loan. monthlyIncome
// is optional; when positive the result includes payment burden ratios.
func (s *Service) StressTest(loan finmath.SplitRateLoan, monthlyIncome float64) StressResult {
	sched := loan.Schedule()

	res := StressResult{Schedule: sched}
	res.ShockAmount = sched.PaymentFloat - sched.PaymentPref
	if sched.PaymentPref != 0 {
		res.ShockPercent = res.ShockAmount / sched.PaymentPref * 100
	}
	if monthlyIncome > 0 {
		res.BurdenPrefPct = sched.PaymentPref / monthlyIncome * 100
		res.BurdenFloatPct = sched.PaymentFloat / monthlyIncome * 100
	}
	return res
}

// HealthSnapshot aggregates the user's current month, portfolio, debts and
// budget into a health score. Snapshots are cached briefly since scoring
// fans out over four services.
func (s *Service) HealthSnapshot(ctx context.Context, userID uuid.UUID) (*finmath.HealthScore, error) {
	key := fmt.Sprintf("advisor:health:%s", userID)
	if s.cache != nil {
		var cached finmath.HealthScore
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.WithError(err).Warn("health cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	score, err := s.computeHealth(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, score, healthCacheTTL); err != nil {
			s.log.WithError(err).Warn("health cache write failed")
		}
	}
	return score, nil
}

func (s *Service) computeHealth(ctx context.Context, userID uuid.UUID) (*finmath.HealthScore, error) {
	now := s.now()

	summary, err := s.spending.Summarize(ctx, userID, now.Year(), now.Month())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}

	recent, err := s.spending.RecentMonthlyExpenses(ctx, userID, now.Year(), now.Month(), 3)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent expenses: %w", err)
	}
	recentF := make([]float64, len(recent))
	for i, d := range recent {
		recentF[i] = d.InexactFloat64()
	}

	portfolio, err := s.portfolio.BuildPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build portfolio: %w", err)
	}

	owed, err := s.debts.OutstandingOwed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum debts: %w", err)
	}

	limit, err := s.budgets.TotalLimit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget limits: %w", err)
	}

	score := finmath.ScoreHealth(finmath.HealthInput{
		Income:         summary.Income.InexactFloat64(),
		Expense:        summary.Expense.InexactFloat64(),
		LiquidAssets:   portfolio.Liquid.InexactFloat64(),
		InvestedAssets: portfolio.Invested.InexactFloat64(),
		TotalAssets:    portfolio.Total.InexactFloat64(),
		TotalDebt:      owed.InexactFloat64(),
		BudgetLimit:    limit.InexactFloat64(),
		RecentExpenses: recentF,
	})
	return &score, nil
}

// Consult asks the AI advisor a question with the user's health snapshot as
// context. Replies are cached per question.
func (s *Service) Consult(ctx context.Context, userID uuid.UUID, question string) (*Reply, error) {
	if s.ai == nil {
		return nil, ErrAdvisorUnavailable
	}
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	sum := sha256.Sum256([]byte(question))
	key := fmt.Sprintf("advisor:reply:%s:%s", userID, hex.EncodeToString(sum[:8]))

	if s.cache != nil {
		var answer string
		hit, err := s.cache.Get(ctx, key, &answer)
		if err != nil {
			s.log.WithError(err).Warn("reply cache read failed")
		} else if hit {
			return &Reply{Question: question, Answer: answer, Cached: true}, nil
		}
	}

	snapshot, err := s.HealthSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Advise(ctx, question, snapshot)
	if err != nil {
		return nil, fmt.Errorf("advisor call failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, answer, s.replyTTL); err != nil {
			s.log.WithError(err).Warn("reply cache write failed")
		}
	}
	return &Reply{Question: question, Answer: answer}, nil
}
