package finmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseDeal is a realistic Hanoi apartment purchase used across tests.
func baseDeal() DealInput {
	return DealInput{
		PurchasePrice:   4_000_000_000,
		MonthlyRent:     15_000_000,
		CapRatePct:      4,
		LTVPct:          70,
		TermMonths:      240,
		PrefRatePct:     6,
		PrefMonths:      24,
		FloatRatePct:    12,
		PersonalIncome:  40_000_000,
		ExitPrice:       4_600_000_000,
		DiscountRatePct: 7,
	}
}

func TestEvaluateDeal_IntrinsicValue(t *testing.T) {
	// 15M rent at a 4% cap rate: 15,000,000 × 12 / 0.04 = 4.5B exactly
	out := EvaluateDeal(baseDeal())
	assert.InDelta(t, 4_500_000_000, out.Valuation.IntrinsicValue, 1e-3)
}

func TestEvaluateDeal_MarginOfSafetySign(t *testing.T) {
	t.Run("purchase below intrinsic value", func(t *testing.T) {
		in := baseDeal()
		in.PurchasePrice = 4_000_000_000 // intrinsic is 4.5B
		out := EvaluateDeal(in)
		assert.Positive(t, out.Valuation.MarginPercent)
	})

	t.Run("purchase above intrinsic value", func(t *testing.T) {
		in := baseDeal()
		in.PurchasePrice = 5_000_000_000
		out := EvaluateDeal(in)
		assert.Negative(t, out.Valuation.MarginPercent)
	})
}

func TestEvaluateDeal_DSCRMonotonicity(t *testing.T) {
	t.Run("more personal income raises coverage", func(t *testing.T) {
		in := baseDeal()
		low := EvaluateDeal(in)
		in.PersonalIncome += 10_000_000
		high := EvaluateDeal(in)
		assert.Greater(t, high.DebtService.DSCR, low.DebtService.DSCR)
	})

	t.Run("higher floating rate lowers coverage", func(t *testing.T) {
		in := baseDeal()
		low := EvaluateDeal(in)
		in.FloatRatePct += 3
		high := EvaluateDeal(in)
		assert.Less(t, high.DebtService.DSCR, low.DebtService.DSCR)
	})
}

func TestEvaluateDeal_UsesWorstCasePayment(t *testing.T) {
	out := EvaluateDeal(baseDeal())
	// The headline DSCR divides by the floating payment, so it must be the
	// lower of the two coverage figures.
	assert.Less(t, out.DebtService.DSCR, out.DebtService.DSCRPref)
}

func TestRateDSCR_Bands(t *testing.T) {
	tests := []struct {
		dscr float64
		want DSCRRating
	}{
		{1.5, RatingHealthy},
		{1.26, RatingHealthy},
		{1.25, RatingMarginal},
		{1.0, RatingMarginal},
		{0.99, RatingUncovered},
		{0.5, RatingUncovered},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RateDSCR(tt.dscr), "dscr=%v", tt.dscr)
	}
}

func TestEvaluateDeal_NPVFormula(t *testing.T) {
	in := baseDeal()
	out := EvaluateDeal(in)

	// Reconstruct the NPV from the reported layers
	d := in.DiscountRatePct / 100
	cf := out.Efficiency.AnnualCashflow
	want := -out.DebtService.DownPayment +
		cf[0]/(1+d) +
		cf[1]/((1+d)*(1+d)) +
		(cf[2]+out.Efficiency.SaleProceeds)/((1+d)*(1+d)*(1+d))
	assert.InDelta(t, want, out.Efficiency.NPV, 1e-6)
}

func TestEvaluateDeal_AnnualizedReturnProxy(t *testing.T) {
	out := EvaluateDeal(baseDeal())
	want := (out.Efficiency.TotalProfit / out.DebtService.DownPayment) / 3 * 100
	assert.InDelta(t, want, out.Efficiency.AnnualizedReturnPct, 1e-9)
}

func TestEvaluateDeal_SaleProceedsUseSimulatedBalance(t *testing.T) {
	in := baseDeal()
	out := EvaluateDeal(in)

	loan := SplitRateLoan{
		Principal:    out.DebtService.LoanAmount,
		TermMonths:   in.TermMonths,
		PrefRatePct:  in.PrefRatePct,
		PrefMonths:   in.PrefMonths,
		FloatRatePct: in.FloatRatePct,
	}
	balance, _ := loan.Simulate(36)
	assert.InDelta(t, in.ExitPrice-balance, out.Efficiency.SaleProceeds, 1e-3)
}

func TestEvaluateDeal_Verdict(t *testing.T) {
	t.Run("all layers pass", func(t *testing.T) {
		out := EvaluateDeal(baseDeal())
		require.Positive(t, out.Valuation.MarginPercent)
		require.Greater(t, out.DebtService.DSCR, 1.1)
		require.Positive(t, out.Efficiency.NPV)
		assert.True(t, out.Favorable)
	})

	t.Run("negative margin fails the verdict", func(t *testing.T) {
		in := baseDeal()
		in.PurchasePrice = 5_000_000_000
		in.LTVPct = 40 // keep coverage and NPV workable
		out := EvaluateDeal(in)
		assert.False(t, out.Favorable)
	})

	t.Run("weak coverage fails the verdict", func(t *testing.T) {
		in := baseDeal()
		in.PersonalIncome = 0
		out := EvaluateDeal(in)
		require.LessOrEqual(t, out.DebtService.DSCR, 1.1)
		assert.False(t, out.Favorable)
	})
}

func TestEvaluateDeal_Idempotent(t *testing.T) {
	in := baseDeal()
	first := EvaluateDeal(in)
	second := EvaluateDeal(in)
	assert.Equal(t, first, second)
}
