package finmath

import "math"

// DSCR decision thresholds. A deal is rated healthy above DSCRHealthy,
// marginal between DSCRCovered and DSCRHealthy, and uncovered below
// DSCRCovered.
const (
	DSCRHealthy = 1.25
	DSCRCovered = 1.0

	// dscrFavorable is the DSCR floor used by the overall verdict.
	dscrFavorable = 1.1

	// holdingYears is the fixed holding period of the efficiency analysis.
	holdingYears = 3
)

// DSCRRating classifies debt-service coverage.
type DSCRRating string

const (
	RatingHealthy   DSCRRating = "healthy"
	RatingMarginal  DSCRRating = "marginal"
	RatingUncovered DSCRRating = "uncovered"
)

// RateDSCR maps a coverage ratio to its rating band.
func RateDSCR(dscr float64) DSCRRating {
	switch {
	case dscr > DSCRHealthy:
		return RatingHealthy
	case dscr >= DSCRCovered:
		return RatingMarginal
	default:
		return RatingUncovered
	}
}

// DealInput are the parameters of a leveraged property purchase.
type DealInput struct {
	PurchasePrice float64
	MonthlyRent   float64
	CapRatePct    float64 // market capitalization rate
	LTVPct        float64 // loan-to-value, 0..100
	TermMonths    int
	PrefRatePct   float64
	PrefMonths    int
	FloatRatePct  float64
	PersonalIncome  float64 // monthly income available to service debt
	ExitPrice       float64 // assumed sale price at the end of the holding period
	DiscountRatePct float64 // opportunity-cost rate for discounting, annual
}

// Valuation is the cap-rate layer of the assessment.
type Valuation struct {
	IntrinsicValue float64
	MarginOfSafety float64
	MarginPercent  float64
}

// DebtService is the coverage layer of the assessment.
type DebtService struct {
	LoanAmount   float64
	DownPayment  float64
	PaymentPref  float64
	PaymentFloat float64
	DSCR         float64 // worst case, against the floating payment
	DSCRPref     float64 // against the preferential payment
	Rating       DSCRRating
}

// Efficiency is the multi-year layer of the assessment, over a fixed
// three-year holding period.
type Efficiency struct {
	AnnualCashflow [holdingYears]float64
	SaleProceeds   float64
	NPV            float64
	TotalProfit    float64
	// AnnualizedReturnPct is a simple annualized-return approximation
	// (total profit over down payment divided by the holding period), used
	// as an IRR proxy. It is not a true internal rate of return.
	AnnualizedReturnPct float64
}

// DealAssessment is the three-layer output of EvaluateDeal.
type DealAssessment struct {
	Valuation   Valuation
	DebtService DebtService
	Efficiency  Efficiency
	// Favorable requires all three layers to pass: positive margin of
	// safety, DSCR above 1.1 and positive NPV.
	Favorable bool
}

// EvaluateDeal produces the full three-layer assessment of a leveraged
// purchase: cap-rate valuation, debt-service coverage against the split-rate
// loan, and a three-year discounted cashflow simulation.
func EvaluateDeal(in DealInput) DealAssessment {
	// Layer 1: cap-rate valuation
	intrinsic := (in.MonthlyRent * 12) / (in.CapRatePct / 100)
	margin := intrinsic - in.PurchasePrice
	marginPct := margin / intrinsic * 100

	// Layer 2: debt-service coverage
	loanAmount := in.PurchasePrice * in.LTVPct / 100
	downPayment := in.PurchasePrice - loanAmount

	loan := SplitRateLoan{
		Principal:    loanAmount,
		TermMonths:   in.TermMonths,
		PrefRatePct:  in.PrefRatePct,
		PrefMonths:   in.PrefMonths,
		FloatRatePct: in.FloatRatePct,
	}
	schedule := loan.Schedule()

	available := in.MonthlyRent + in.PersonalIncome
	dscr := available / schedule.PaymentFloat
	dscrPref := available / schedule.PaymentPref

	// Layer 3: three-year efficiency
	annualRent := in.MonthlyRent * 12
	balance, paidPerYear := loan.Simulate(holdingYears * 12)

	var eff Efficiency
	for y := 0; y < holdingYears; y++ {
		eff.AnnualCashflow[y] = annualRent - paidPerYear[y]
	}
	eff.SaleProceeds = in.ExitPrice - balance

	d := in.DiscountRatePct / 100
	eff.NPV = -downPayment +
		eff.AnnualCashflow[0]/(1+d) +
		eff.AnnualCashflow[1]/math.Pow(1+d, 2) +
		(eff.AnnualCashflow[2]+eff.SaleProceeds)/math.Pow(1+d, 3)

	totalCashflow := eff.AnnualCashflow[0] + eff.AnnualCashflow[1] + eff.AnnualCashflow[2]
	eff.TotalProfit = totalCashflow + eff.SaleProceeds - downPayment
	eff.AnnualizedReturnPct = (eff.TotalProfit / downPayment) / holdingYears * 100

	return DealAssessment{
		Valuation: Valuation{
			IntrinsicValue: intrinsic,
			MarginOfSafety: margin,
			MarginPercent:  marginPct,
		},
		DebtService: DebtService{
			LoanAmount:   loanAmount,
			DownPayment:  downPayment,
			PaymentPref:  schedule.PaymentPref,
			PaymentFloat: schedule.PaymentFloat,
			DSCR:         dscr,
			DSCRPref:     dscrPref,
			Rating:       RateDSCR(dscr),
		},
		Efficiency: eff,
		Favorable:  marginPct > 0 && dscr > dscrFavorable && eff.NPV > 0,
	}
}
