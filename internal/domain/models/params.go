package models

// Rates and volatilities are decimals everywhere inside the lab. Surfaces
// that collect percentages convert on the way in.

// FromPercent converts a percentage input to the internal decimal form.
func FromPercent(v float64) float64 { return v / 100 }

// OptionParams are the Black-Scholes / lattice pricing inputs.
type OptionParams struct {
	Spot     float64
	Strike   float64
	Maturity float64 // years
	Rate     float64
	Vol      float64
}

// GBMParams drive a geometric Brownian motion simulation.
type GBMParams struct {
	Spot  float64
	Drift float64
	Vol   float64
	Years float64
	Steps int
}

// CIRParams drive a Cox-Ingersoll-Ross short-rate simulation.
type CIRParams struct {
	Rate0 float64 // initial short rate
	Speed float64 // mean-reversion speed a
	Mean  float64 // long-run mean b
	Vol   float64
	Years float64
	Steps int
}

// FellerSatisfied reports whether 2ab >= sigma^2 holds. When it does not,
// the discretization still clamps at zero but positivity of the continuous
// process is no longer guaranteed.
func (p CIRParams) FellerSatisfied() bool {
	return 2*p.Speed*p.Mean >= p.Vol*p.Vol
}

// JumpParams drive a Merton jump-diffusion simulation.
type JumpParams struct {
	Spot      float64
	Rate      float64
	Vol       float64
	Years     float64
	Steps     int
	Intensity float64 // lambda, jumps per year
	JumpMean  float64 // mu_J, mean of log jump size
	JumpVol   float64 // delta_J, std of log jump size
}

// GARCHParams are the GARCH(1,1) recursion coefficients. Stationarity
// requires Alpha+Beta < 1; the recursion itself does not enforce it.
type GARCHParams struct {
	Omega float64
	Alpha float64
	Beta  float64
}

// RiskParams select a VaR/CVaR computation.
type RiskParams struct {
	Confidence  float64 // in (0,1)
	HorizonDays int
}

// SignalParams are pairs-trading thresholds. EntryZ > ExitZ >= 0 is the
// implicit precondition; violating it yields oscillating or no signals,
// never an error.
type SignalParams struct {
	Lookback int
	EntryZ   float64
	ExitZ    float64
}

// MertonParams feed the closed-form optimal allocation fraction.
type MertonParams struct {
	Mu       float64 // risky asset drift
	Rate     float64 // risk-free rate
	Vol      float64
	RiskAver float64 // gamma, relative risk aversion
}
