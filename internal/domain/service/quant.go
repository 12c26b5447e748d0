package service

import (
	"QuantLab/internal/domain/models"
)

// RandomSource yields standard normal variates, plus the uniform draws the
// jump indicator needs. Implementations must be seedable so simulations can
// be made deterministic in tests.
type RandomSource interface {
	NormFloat64() float64
	Uniform() float64
}

// OptionPricer values European options.
type OptionPricer interface {
	// Price returns the closed-form Black-Scholes quote. For T<=0 or
	// sigma<=0 it falls back to intrinsic value, never an error.
	Price(p models.OptionParams) models.OptionQuote
	// LatticePrice returns the CRR binomial call price with n steps, or 0
	// when the risk-neutral probability leaves [0,1].
	LatticePrice(p models.OptionParams, n int) float64
}

// PathSimulator generates simulated paths. Every method takes its own
// RandomSource so callers control determinism.
type PathSimulator interface {
	GBM(p models.GBMParams, src RandomSource) models.SimulatedPath
	CIR(p models.CIRParams, src RandomSource) models.SimulatedPath
	Jump(p models.JumpParams, src RandomSource) models.SimulatedPath
}

// RiskAnalyzer estimates loss measures from a log-return series.
type RiskAnalyzer interface {
	Compute(returns []float64, method models.RiskMethod, p models.RiskParams) models.RiskMeasure
	Histogram(returns []float64, bins int) []models.HistogramBin
}

// VolatilityForecaster projects annualized volatility forward.
type VolatilityForecaster interface {
	Forecast(series models.PriceSeries, p models.GARCHParams, days int) []models.ForecastPoint
}

// Allocator computes portfolio allocations and aggregates.
type Allocator interface {
	MertonFraction(p models.MertonParams) models.AllocationResult
	Aggregate(weights []float64, means, vols []float64, rho float64) models.PortfolioStats
}

// SignalGenerator runs the pairs-trading state machine over a ratio series.
type SignalGenerator interface {
	Run(ratio models.PriceSeries, p models.SignalParams) ([]models.SignalEvent, []float64)
}
