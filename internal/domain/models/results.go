package models

import "time"

// Greeks are the Black-Scholes sensitivities of the call leg.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// OptionQuote is a closed-form pricing result.
type OptionQuote struct {
	Call   float64 `json:"call"`
	Put    float64 `json:"put"`
	Greeks Greeks  `json:"greeks"`
}

// RiskMethod selects how a risk measure is estimated.
type RiskMethod string

const (
	RiskHistorical RiskMethod = "historical"
	RiskParametric RiskMethod = "parametric"
)

// Valid reports whether m is a supported risk method.
func (m RiskMethod) Valid() bool {
	return m == RiskHistorical || m == RiskParametric
}

// RiskMeasure is a (VaR, CVaR) pair as decimal loss fractions over the
// requested horizon. CVaR >= VaR always holds for the same confidence.
type RiskMeasure struct {
	Method      RiskMethod `json:"method"`
	Confidence  float64    `json:"confidence"`
	HorizonDays int        `json:"horizon_days"`
	VaR         float64    `json:"var"`
	CVaR        float64    `json:"cvar"`
}

// AllocationResult maps asset identifiers to weights. Weights may be
// negative (short) or above 1 (leveraged) and are always finite; they only
// sum to a constant when explicitly normalized.
type AllocationResult struct {
	Weights map[string]float64 `json:"weights"`
	// Theoretical is the uncapped Merton fraction; Display is the same
	// value clamped to the presentation range.
	Theoretical float64 `json:"theoretical"`
	Display     float64 `json:"display"`
}

// PortfolioStats is the fixed-correlation multi-asset aggregate.
type PortfolioStats struct {
	Mean     float64 `json:"mean"`     // annualized
	Vol      float64 `json:"vol"`      // annualized
	Variance float64 `json:"variance"` // floored at 0
	AssumedR float64 `json:"assumed_correlation"`
}

// SignalKind tags a pairs-trading threshold crossing.
type SignalKind string

const (
	SignalEnterShort SignalKind = "enter-short"
	SignalEnterLong  SignalKind = "enter-long"
	SignalExit       SignalKind = "exit"
)

// SignalEvent records a threshold crossing. Events are immutable once
// emitted and are consumed for display and backtesting only.
type SignalEvent struct {
	Date time.Time  `json:"date"`
	Kind SignalKind `json:"kind"`
	Z    float64    `json:"z"`
}
