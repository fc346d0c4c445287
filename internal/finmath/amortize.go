// Package finmath implements the pure financial computations behind the
// deal-architect, stress-test and health-score tools: fixed-rate loan
// amortization (including split teaser/floating structures), leveraged
// real-estate deal evaluation, and financial health scoring.
//
// All functions are pure float64 arithmetic. Callers are expected to guard
// inputs; malformed input (negative terms, NaN) propagates as NaN/Inf rather
// than an error, keeping result types plain numbers.
package finmath

import "math"

// monthlyRate converts a nominal annual percentage rate to a monthly fraction.
func monthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100 / 12
}

// MonthlyPayment computes the fixed monthly payment for a loan of principal
// repaid over termMonths at the given nominal annual rate, using the standard
// annuity formula. A zero rate degenerates to straight-line repayment.
//
// Preconditions: principal >= 0, termMonths >= 1, annualRatePct >= 0.
func MonthlyPayment(principal, annualRatePct float64, termMonths int) float64 {
	r := monthlyRate(annualRatePct)
	n := float64(termMonths)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// RemainingBalance computes the outstanding balance of a fixed-rate loan
// after elapsedMonths of the scheduled totalMonths payments:
//
//	balance = P × ((1+r)^N − (1+r)^k) / ((1+r)^N − 1)
//
// A zero rate degenerates to straight-line subtraction.
//
// Preconditions: principal >= 0, totalMonths >= 1, 0 <= elapsedMonths <= totalMonths.
func RemainingBalance(principal, annualRatePct float64, totalMonths, elapsedMonths int) float64 {
	r := monthlyRate(annualRatePct)
	n := float64(totalMonths)
	k := float64(elapsedMonths)
	if r == 0 {
		return principal * (n - k) / n
	}
	growthN := math.Pow(1+r, n)
	growthK := math.Pow(1+r, k)
	return principal * (growthN - growthK) / (growthN - 1)
}

// SplitRateLoan describes a loan with a preferential (teaser) rate for an
// initial period followed by a floating rate for the remainder of the term.
type SplitRateLoan struct {
	Principal    float64
	TermMonths   int
	PrefRatePct  float64 // annual rate during the preferential period
	PrefMonths   int     // length of the preferential period
	FloatRatePct float64 // annual rate assumed after the preferential period
}

// SplitRateSchedule is the two-phase payment structure of a split-rate loan.
// PaymentFloat is recomputed as a fresh annuity on the transition balance over
// the remaining term, which is where the post-teaser payment shock comes from.
type SplitRateSchedule struct {
	PaymentPref       float64 // monthly payment during the preferential period
	TransitionBalance float64 // balance outstanding when the teaser expires
	PaymentFloat      float64 // monthly payment after the switch to the floating rate
}

// Schedule computes both payments and the transition balance for the loan.
// If the preferential period covers the whole term the floating phase never
// applies and PaymentFloat equals PaymentPref.
func (l SplitRateLoan) Schedule() SplitRateSchedule {
	pmtPref := MonthlyPayment(l.Principal, l.PrefRatePct, l.TermMonths)

	if l.PrefMonths >= l.TermMonths {
		return SplitRateSchedule{
			PaymentPref:       pmtPref,
			TransitionBalance: 0,
			PaymentFloat:      pmtPref,
		}
	}

	balance := RemainingBalance(l.Principal, l.PrefRatePct, l.TermMonths, l.PrefMonths)
	pmtFloat := MonthlyPayment(balance, l.FloatRatePct, l.TermMonths-l.PrefMonths)

	return SplitRateSchedule{
		PaymentPref:       pmtPref,
		TransitionBalance: balance,
		PaymentFloat:      pmtFloat,
	}
}

// MonthlyRateFor returns the monthly rate in effect for a given 1-based month
// of the loan.
func (l SplitRateLoan) MonthlyRateFor(month int) float64 {
	if month <= l.PrefMonths {
		return monthlyRate(l.PrefRatePct)
	}
	return monthlyRate(l.FloatRatePct)
}

// PaymentFor returns the scheduled payment in effect for a given 1-based
// month of the loan.
func (l SplitRateLoan) PaymentFor(month int, schedule SplitRateSchedule) float64 {
	if month <= l.PrefMonths {
		return schedule.PaymentPref
	}
	return schedule.PaymentFloat
}

// Simulate runs the month-by-month amortization for the first months periods
// of the loan and returns the remaining balance along with the total amount
// paid in each 12-month block (months 1-12, 13-24, ...).
func (l SplitRateLoan) Simulate(months int) (balance float64, paidPerYear []float64) {
	schedule := l.Schedule()
	balance = l.Principal
	years := (months + 11) / 12
	paidPerYear = make([]float64, years)

	for m := 1; m <= months; m++ {
		payment := l.PaymentFor(m, schedule)
		interest := balance * l.MonthlyRateFor(m)
		principalPortion := payment - interest
		balance -= principalPortion
		paidPerYear[(m-1)/12] += payment
	}

	return balance, paidPerYear
}
