package finmath

import "math"

// Sub-score normalization targets. Each sub-score reaches 100 at its target.
const (
	targetSavingsRate     = 0.20 // 20% of income saved
	targetRunwayMonths    = 6.0  // six months of expenses covered
	debtRatioFloor        = 0.6  // debt/assets ratio at which the score hits 0
	targetInvestmentRatio = 0.40 // 40% of assets invested
)

// HealthInput is a snapshot of the figures the health score is computed from.
// Monetary fields are for the currently selected month unless stated.
type HealthInput struct {
	Income         float64 // current-month income
	Expense        float64 // current-month expense
	LiquidAssets   float64
	InvestedAssets float64
	TotalAssets    float64
	TotalDebt      float64
	BudgetLimit    float64   // total monthly budget across categories, 0 if none set
	RecentExpenses []float64 // expense totals of up to the last 3 historical months
}

// HealthScore is the scored snapshot: five sub-scores, two composite axes and
// the overall score, all clamped to [0, 100].
type HealthScore struct {
	SavingsRate    float64 `json:"savings_rate"`
	Runway         float64 `json:"runway"`
	DebtRatio      float64 `json:"debt_ratio"`
	Budget         float64 `json:"budget"`
	Investment     float64 `json:"investment"`
	Defense        float64 `json:"defense"` // mean(runway, debt, budget)
	Offense        float64 `json:"offense"` // mean(savings, investment)
	Overall        int     `json:"overall"` // rounded unweighted mean of the five
	RunwayMonths   float64 `json:"runway_months"`
	AvgMonthlyBurn float64 `json:"avg_monthly_burn"`
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// avgBurn computes the average monthly burn: the mean of the recent
// historical months' expenses, falling back to the current expense, then to 1
// to avoid division by zero.
func avgBurn(in HealthInput) float64 {
	if len(in.RecentExpenses) > 0 {
		sum := 0.0
		for _, e := range in.RecentExpenses {
			sum += e
		}
		if avg := sum / float64(len(in.RecentExpenses)); avg > 0 {
			return avg
		}
	}
	if in.Expense > 0 {
		return in.Expense
	}
	return 1
}

// ScoreHealth reduces a financial snapshot to the five sub-scores and their
// aggregates. Pure, deterministic, clamped to [0, 100] for any input.
func ScoreHealth(in HealthInput) HealthScore {
	var s HealthScore

	// Savings rate: (income − expense) / income, 100 points at 20%.
	// Zero or negative income scores 0.
	if in.Income > 0 {
		rate := (in.Income - in.Expense) / in.Income
		s.SavingsRate = clampScore(rate / targetSavingsRate * 100)
	}

	// Liquidity runway: liquid assets over average monthly burn, 100 points
	// at six months.
	s.AvgMonthlyBurn = avgBurn(in)
	s.RunwayMonths = in.LiquidAssets / s.AvgMonthlyBurn
	s.Runway = clampScore(s.RunwayMonths / targetRunwayMonths * 100)

	// Debt ratio: 100 at zero debt, falling linearly to 0 at ratio 0.6.
	// With no assets, any debt scores 0 and no debt scores 100.
	switch {
	case in.TotalAssets > 0:
		ratio := in.TotalDebt / in.TotalAssets
		s.DebtRatio = clampScore((1 - ratio/debtRatioFloor) * 100)
	case in.TotalDebt > 0:
		s.DebtRatio = 0
	default:
		s.DebtRatio = 100
	}

	// Budget discipline: step function on expense / budget limit. No budget
	// configured means no overspend signal.
	if in.BudgetLimit > 0 {
		u := in.Expense / in.BudgetLimit
		switch {
		case u <= 0.9:
			s.Budget = 100
		case u <= 1.0:
			s.Budget = 80
		case u <= 1.2:
			s.Budget = 40
		default:
			s.Budget = 0
		}
	} else {
		s.Budget = 100
	}

	// Investment ratio: invested share of total assets, 100 points at 40%.
	if in.TotalAssets > 0 {
		ratio := in.InvestedAssets / in.TotalAssets
		s.Investment = clampScore(ratio / targetInvestmentRatio * 100)
	}

	s.Defense = (s.Runway + s.DebtRatio + s.Budget) / 3
	s.Offense = (s.SavingsRate + s.Investment) / 2
	s.Overall = int(math.Round((s.SavingsRate + s.Runway + s.DebtRatio + s.Budget + s.Investment) / 5))

	return s
}
