// Package risk estimates Value-at-Risk and Conditional VaR from log-return
// series. Both methods report losses as positive decimal fractions and
// always keep CVaR >= VaR for the same confidence.
package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/dist"
)

// Engine implements service.RiskAnalyzer.
type Engine struct{}

// New returns a risk engine.
func New() *Engine { return &Engine{} }

// Compute dispatches on the method variant. Unknown methods fall back to
// historical; the surfaces validate the enum before it gets here.
func (e *Engine) Compute(returns []float64, method models.RiskMethod, p models.RiskParams) models.RiskMeasure {
	m := models.RiskMeasure{
		Method:      method,
		Confidence:  p.Confidence,
		HorizonDays: p.HorizonDays,
	}
	if len(returns) == 0 || p.Confidence <= 0 || p.Confidence >= 1 {
		return m
	}
	scale := math.Sqrt(float64(maxInt(1, p.HorizonDays)))

	switch method {
	case models.RiskParametric:
		m.VaR, m.CVaR = parametric(returns, p.Confidence)
	default:
		m.Method = models.RiskHistorical
		m.VaR, m.CVaR = historical(returns, p.Confidence)
	}
	m.VaR *= scale
	m.CVaR *= scale
	if m.CVaR < m.VaR {
		m.CVaR = m.VaR
	}
	return m
}

// historical sorts the returns ascending and reads the loss quantile at
// alpha = 1-c; CVaR averages the tail strictly below that index. An empty
// tail yields CVaR = 0 (then lifted to VaR by the caller's floor).
func historical(returns []float64, confidence float64) (vaR, cvaR float64) {
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	alpha := 1 - confidence
	idx := int(math.Floor(alpha * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	vaR = -sorted[idx]

	if idx > 0 {
		cvaR = -stat.Mean(sorted[:idx], nil)
	}
	return vaR, cvaR
}

// parametric fits (mu, sigma) with the unbiased sample variance and applies
// the normal quantile and the analytic expected-shortfall formula
// sigma·phi(z)/alpha.
func parametric(returns []float64, confidence float64) (vaR, cvaR float64) {
	mu := stat.Mean(returns, nil)
	variance := stat.Variance(returns, nil) // unbiased, N-1
	if variance < 0 {
		variance = 0
	}
	sigma := math.Sqrt(variance)

	alpha := 1 - confidence
	z, err := dist.NormInvCDF(alpha)
	if err != nil {
		return 0, 0
	}
	vaR = -(mu + sigma*z)
	cvaR = sigma * dist.NormPDF(z) / alpha
	return vaR, cvaR
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
