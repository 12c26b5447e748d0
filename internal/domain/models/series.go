package models

import "time"

// PricePoint is a single daily close for a symbol.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries is a date-ascending sequence of price points for one symbol.
// No duplicate dates are expected for a given symbol.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Prices returns the raw price values in date order.
func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// PathPoint is one (time, value) sample of a simulated path. Time is in
// years from the start of the simulation.
type PathPoint struct {
	Time  float64 `json:"t"`
	Value float64 `json:"v"`
}

// SimulatedPath is an ordered sequence of path points, starting at time 0
// with the initial value. Values never contain NaN and stay non-negative
// for processes that require it (GBM, CIR, jump diffusion).
type SimulatedPath []PathPoint

// Final returns the last value of the path, or 0 for an empty path.
func (p SimulatedPath) Final() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Value
}

// ForecastPoint is one step of a volatility forecast.
type ForecastPoint struct {
	Date          time.Time `json:"date"`
	AnnualizedVol float64   `json:"annualized_vol"`
	// ConeWidth is the price band half-width S0·σ·√(t/252) around the
	// drift-adjusted center, for the cone chart.
	ConeWidth float64 `json:"cone_width"`
}

// HistogramBin is an equal-width return bucket, for display only.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}
