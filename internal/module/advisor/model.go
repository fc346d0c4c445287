package advisor

import "github.com/hieutran/moneykeeper/internal/finmath"

// StressResult lays out the payment shock of a split-rate loan: the teaser
// payment, the balance still owed when the teaser expires, and the recomputed
// floating payment on that balance.
type StressResult struct {
	Schedule     finmath.SplitRateSchedule `json:"schedule"`
	ShockAmount  float64                   `json:"shock_amount"`
	ShockPercent float64                   `json:"shock_percent"`
	// Payment burden as a share of monthly income, before and after the
	// teaser expires. Zero when no income is given.
	BurdenPrefPct  float64 `json:"burden_pref_pct"`
	BurdenFloatPct float64 `json:"burden_float_pct"`
}

// Reply is an AI advisor answer
type Reply struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Cached   bool   `json:"cached"`
}
