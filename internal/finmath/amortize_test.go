package finmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		months    int
	}{
		{"small loan", 12_000_000, 12},
		{"large loan", 2_000_000_000, 240},
		{"one month", 500_000, 1},
		{"zero principal", 0, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, 0, tt.months)
			assert.InDelta(t, tt.principal/float64(tt.months), got, 1e-9)
		})
	}
}

func TestMonthlyPayment_AnnuityFormula(t *testing.T) {
	// 2 billion VND over 20 years at 6%/yr
	got := MonthlyPayment(2_000_000_000, 6, 240)
	assert.InDelta(t, 14_328_999, got, 500)
}

func TestRemainingBalance_ZeroRate(t *testing.T) {
	// Straight-line: half the term leaves half the principal
	got := RemainingBalance(1_000_000_000, 0, 240, 120)
	assert.InDelta(t, 500_000_000, got, 1e-6)
}

func TestRemainingBalance_Endpoints(t *testing.T) {
	assert.InDelta(t, 1_000_000_000, RemainingBalance(1_000_000_000, 8, 240, 0), 1e-3)
	assert.InDelta(t, 0, RemainingBalance(1_000_000_000, 8, 240, 240), 1e-3)
}

func TestSimulate_FullAmortizationSumsToPrincipal(t *testing.T) {
	// Running the month-by-month schedule to the end must repay the
	// principal within 1 VND.
	loan := SplitRateLoan{
		Principal:   800_000_000,
		TermMonths:  120,
		PrefRatePct: 9,
		PrefMonths:  120, // single-phase
	}

	balance, _ := loan.Simulate(120)
	assert.InDelta(t, 0, balance, 1)
}

func TestSimulate_MatchesClosedFormBalance(t *testing.T) {
	// The simulated balance after k months at the preferential rate must
	// equal the closed-form remaining balance.
	loan := SplitRateLoan{
		Principal:    2_000_000_000,
		TermMonths:   240,
		PrefRatePct:  6,
		PrefMonths:   24,
		FloatRatePct: 12,
	}

	simulated, _ := loan.Simulate(24)
	closedForm := RemainingBalance(2_000_000_000, 6, 240, 24)
	assert.InDelta(t, closedForm, simulated, 1)
}

func TestSchedule_TeaserRateShock(t *testing.T) {
	// 2B VND, 20y term, 6% teaser for 2 years, then 12% floating. The
	// floating payment is a fresh annuity on the month-24 balance over the
	// remaining 216 months and must exceed the teaser payment.
	loan := SplitRateLoan{
		Principal:    2_000_000_000,
		TermMonths:   240,
		PrefRatePct:  6,
		PrefMonths:   24,
		FloatRatePct: 12,
	}

	s := loan.Schedule()

	assert.InDelta(t, 14_328_999, s.PaymentPref, 500)
	assert.Greater(t, s.PaymentFloat, s.PaymentPref)

	// The transition balance must match the closed form
	assert.InDelta(t, RemainingBalance(2_000_000_000, 6, 240, 24), s.TransitionBalance, 1e-3)

	// And the floating payment must amortize that balance over 216 months
	assert.InDelta(t, MonthlyPayment(s.TransitionBalance, 12, 216), s.PaymentFloat, 1e-3)
}

func TestSchedule_PrefCoversWholeTerm(t *testing.T) {
	loan := SplitRateLoan{
		Principal:    100_000_000,
		TermMonths:   12,
		PrefRatePct:  5,
		PrefMonths:   12,
		FloatRatePct: 10,
	}

	s := loan.Schedule()
	require.Equal(t, s.PaymentPref, s.PaymentFloat)
	assert.Zero(t, s.TransitionBalance)
}

func TestSimulate_PaidPerYearBuckets(t *testing.T) {
	loan := SplitRateLoan{
		Principal:    1_200_000_000,
		TermMonths:   240,
		PrefRatePct:  7,
		PrefMonths:   12,
		FloatRatePct: 11,
	}
	s := loan.Schedule()

	_, paid := loan.Simulate(36)
	require.Len(t, paid, 3)

	// Year 1 is all teaser payments, years 2-3 all floating
	assert.InDelta(t, 12*s.PaymentPref, paid[0], 1e-3)
	assert.InDelta(t, 12*s.PaymentFloat, paid[1], 1e-3)
	assert.InDelta(t, 12*s.PaymentFloat, paid[2], 1e-3)
}
