package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hieutran/moneykeeper/pkg/config"
)

// Service provides budgeting logic: per-category limits and the six-jars
// allocation method.
type Service struct {
	repo     Repository
	spending SpendingReader
	jars     *config.JarsConfig
}

// NewService creates a new budget service
func NewService(repo Repository, spending SpendingReader, jars *config.JarsConfig) *Service {
	return &Service{repo: repo, spending: spending, jars: jars}
}

// SetLimit creates or replaces the monthly limit for a category
func (s *Service) SetLimit(ctx context.Context, userID uuid.UUID, category string, limit decimal.Decimal) (*CategoryBudget, error) {
	if category == "" {
		return nil, ErrMissingCategory
	}
	if !limit.IsPositive() {
		return nil, ErrInvalidLimit
	}

	b := &CategoryBudget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Limit:     limit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	return b, nil
}

// RemoveLimit deletes the limit for a category
func (s *Service) RemoveLimit(ctx context.Context, userID uuid.UUID, category string) error {
	return s.repo.Delete(ctx, userID, category)
}

// List returns all configured category limits
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*CategoryBudget, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// TotalLimit sums all configured category limits. The health scorer uses it
// as the overall monthly budget.
func (s *Service) TotalLimit(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	budgets, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Limit)
	}
	return total, nil
}

// BuildReport compares each category limit against the month's actual
// spending, with last month's figure for trend display.
func (s *Service) BuildReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*Report, error) {
	budgets, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	current, err := s.spending.Summarize(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}

	prevCursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	previous, err := s.spending.Summarize(ctx, userID, prevCursor.Year(), prevCursor.Month())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize previous month: %w", err)
	}

	report := &Report{Year: year, Month: month, TotalLimit: decimal.Zero, TotalSpent: decimal.Zero}
	for _, b := range budgets {
		spent := current.ExpenseByCategory[b.Category]
		last := previous.ExpenseByCategory[b.Category]
		report.Categories = append(report.Categories, CategoryReport{
			Category:       b.Category,
			Limit:          b.Limit,
			Spent:          spent,
			LastMonthSpent: last,
			Remaining:      b.Limit.Sub(spent),
			OverLimit:      spent.GreaterThan(b.Limit),
		})
		report.TotalLimit = report.TotalLimit.Add(b.Limit)
		report.TotalSpent = report.TotalSpent.Add(spent)
	}

	return report, nil
}

// SetPlannedIncome records the expected income for a month
func (s *Service) SetPlannedIncome(ctx context.Context, userID uuid.UUID, year int, month time.Month, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidIncome
	}
	return s.repo.SetPlannedIncome(ctx, &PlannedIncome{
		UserID: userID,
		Year:   year,
		Month:  month,
		Amount: amount,
	})
}

// BuildJarsReport allocates the month's income across the configured jars
// and tallies spending per jar from the category mapping. Planned income
// takes precedence over actual income when set.
func (s *Service) BuildJarsReport(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*JarsReport, error) {
	summary, err := s.spending.Summarize(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}

	income := summary.Income
	planned, err := s.repo.GetPlannedIncome(ctx, userID, year, month)
	if err != nil && !errors.Is(err, ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to load planned income: %w", err)
	}
	if planned != nil && planned.Amount.IsPositive() {
		income = planned.Amount
	}

	report := &JarsReport{Year: year, Month: month, Income: income}
	for _, jar := range s.jars.Jars {
		pct := decimal.NewFromFloat(jar.Percent)
		allocated := income.Mul(pct).Div(decimal.NewFromInt(100))

		spent := decimal.Zero
		for _, cat := range jar.Categories {
			spent = spent.Add(summary.ExpenseByCategory[cat])
		}

		report.Jars = append(report.Jars, JarReport{
			Key:       jar.Key,
			Name:      jar.Name,
			Percent:   jar.Percent,
			Allocated: allocated,
			Spent:     spent,
			Remaining: allocated.Sub(spent),
		})
	}

	return report, nil
}
