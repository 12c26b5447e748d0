package features

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"QuantLab/internal/domain/models"
)

// TradingDaysPerYear is the annualization base for daily series.
const TradingDaysPerYear = 252

// LogReturns computes r_t = ln(P_t / P_{t-1}) over a price series.
// It returns a slice of length len(points)-1, or nil if insufficient data.
func LogReturns(s models.PriceSeries) []float64 {
	if s.Len() < 2 {
		return nil
	}
	out := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		prev := s.Points[i-1].Price
		cur := s.Points[i].Price
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// AnnualizedVol computes annualized volatility from daily log returns with
// the unbiased sample variance. Negative variance from floating-point
// cancellation is clamped to 0 before the square root.
func AnnualizedVol(logReturns []float64) float64 {
	if len(logReturns) < 2 {
		return 0
	}
	variance := stat.Variance(logReturns, nil)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance * TradingDaysPerYear)
}

// AnnualizedMean computes the annualized mean of daily log returns.
func AnnualizedMean(logReturns []float64) float64 {
	if len(logReturns) == 0 {
		return 0
	}
	return stat.Mean(logReturns, nil) * TradingDaysPerYear
}

// RollingStats computes mean and standard deviation over the last window
// values. Returns (0, 0) when the window is not yet full.
func RollingStats(xs []float64, window int) (mean, std float64) {
	if window <= 1 || len(xs) < window {
		return 0, 0
	}
	w := xs[len(xs)-window:]
	mean = stat.Mean(w, nil)
	variance := stat.Variance(w, nil)
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// Ratio divides two aligned price series point by point, pairing by index
// over the shorter length. The result keeps the first series' dates.
func Ratio(a, b models.PriceSeries) models.PriceSeries {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	out := models.PriceSeries{Symbol: a.Symbol + "/" + b.Symbol}
	for i := 0; i < n; i++ {
		if b.Points[i].Price <= 0 {
			continue
		}
		out.Points = append(out.Points, models.PricePoint{
			Date:  a.Points[i].Date,
			Price: a.Points[i].Price / b.Points[i].Price,
		})
	}
	return out
}
