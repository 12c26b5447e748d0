package pricing

import (
	"math"

	"QuantLab/internal/domain/models"
)

// LatticePrice prices a European call by Cox-Ross-Rubinstein backward
// induction with n steps. The backward step only ever uses the continuation
// value; early exercise is deliberately not checked, so this is a European
// price even though the tree could hold American payoffs.
//
// Returns 0 when the risk-neutral probability leaves [0,1]: that parameter
// regime is inconsistent with no-arbitrage for this discretization.
func (e *Engine) LatticePrice(p models.OptionParams, n int) float64 {
	if n <= 0 {
		return 0
	}
	if p.Maturity <= 0 || p.Vol <= 0 {
		return math.Max(0, p.Spot-p.Strike)
	}

	dt := p.Maturity / float64(n)
	u := math.Exp(p.Vol * math.Sqrt(dt))
	d := 1 / u
	prob := (math.Exp(p.Rate*dt) - d) / (u - d)
	if prob < 0 || prob > 1 {
		return 0
	}
	disc := math.Exp(-p.Rate * dt)

	// terminal payoffs at S·u^(n-i)·d^i
	values := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		s := p.Spot * math.Pow(u, float64(n-i)) * math.Pow(d, float64(i))
		values[i] = math.Max(0, s-p.Strike)
	}

	for layer := n - 1; layer >= 0; layer-- {
		for i := 0; i <= layer; i++ {
			values[i] = disc * (prob*values[i] + (1-prob)*values[i+1])
		}
	}
	return values[0]
}

// ConvergenceLadder returns the lattice price at a ladder of step counts up
// to n, for the convergence-to-closed-form chart.
func (e *Engine) ConvergenceLadder(p models.OptionParams, n int) []models.PathPoint {
	if n < 1 {
		return nil
	}
	stride := n / 30
	if stride < 1 {
		stride = 1
	}
	out := make([]models.PathPoint, 0, n/stride+1)
	for k := stride; k <= n; k += stride {
		out = append(out, models.PathPoint{Time: float64(k), Value: e.LatticePrice(p, k)})
	}
	return out
}
