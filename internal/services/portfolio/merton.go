package portfolio

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"QuantLab/internal/domain/models"
)

// Display clamp for the Merton fraction. The theoretical value is reported
// unchanged; the clamped value keeps charts readable when gamma or vol is
// tiny.
const (
	displayFloor = -1.0
	displayCap   = 2.0
)

// Engine implements the closed-form Merton allocation and a
// fixed-correlation portfolio aggregate.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// MertonFraction returns pi* = (mu - r) / (gamma * sigma^2), the constant
// fraction of wealth held in the risky asset. Degenerate inputs (gamma or
// vol at zero) yield a zero allocation rather than an infinity.
func (e *Engine) MertonFraction(p models.MertonParams) models.AllocationResult {
	var frac float64
	if p.RiskAver > 0 && p.Vol > 0 {
		frac = (p.Mu - p.Rate) / (p.RiskAver * p.Vol * p.Vol)
	}

	display := frac
	if display > displayCap {
		display = displayCap
	}
	if display < displayFloor {
		display = displayFloor
	}

	return models.AllocationResult{
		Weights: map[string]float64{
			"risky":    frac,
			"riskless": 1 - frac,
		},
		Theoretical: frac,
		Display:     display,
	}
}

// Aggregate computes portfolio mean and volatility under a single assumed
// pairwise correlation rho: Sigma_ij = rho * vol_i * vol_j off the diagonal,
// vol_i^2 on it. Mismatched input lengths produce a zero result.
func (e *Engine) Aggregate(weights, means, vols []float64, rho float64) models.PortfolioStats {
	n := len(weights)
	if n == 0 || len(means) != n || len(vols) != n {
		return models.PortfolioStats{AssumedR: rho}
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := vols[i] * vols[j]
			if i != j {
				c *= rho
			}
			cov.SetSym(i, j, c)
		}
	}

	w := mat.NewVecDense(n, weights)
	var sw mat.VecDense
	sw.MulVec(cov, w)
	variance := mat.Dot(w, &sw)
	if variance < 0 {
		variance = 0
	}

	mean := 0.0
	for i, wi := range weights {
		mean += wi * means[i]
	}

	return models.PortfolioStats{
		Mean:     mean,
		Vol:      math.Sqrt(variance),
		Variance: variance,
		AssumedR: rho,
	}
}
