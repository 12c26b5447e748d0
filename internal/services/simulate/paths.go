// Package simulate integrates the discretized SDEs behind the path charts:
// geometric Brownian motion, the CIR square-root short-rate process and
// Merton jump diffusion. Extreme parameter combinations degrade to
// economically degenerate paths (clamped at zero), never to errors.
package simulate

import (
	"math"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/domain/service"
)

// Engine implements service.PathSimulator.
type Engine struct{}

// New returns a path simulation engine.
func New() *Engine { return &Engine{} }

// GBM integrates dS = mu·S dt + sigma·S dW with the exact log-normal step
// S <- S·exp((mu - sigma²/2)dt + sigma·√dt·Z).
func (e *Engine) GBM(p models.GBMParams, src service.RandomSource) models.SimulatedPath {
	if p.Steps < 1 || p.Years <= 0 {
		return models.SimulatedPath{{Time: 0, Value: p.Spot}}
	}
	dt := p.Years / float64(p.Steps)
	driftTerm := (p.Drift - 0.5*p.Vol*p.Vol) * dt
	volTerm := p.Vol * math.Sqrt(dt)

	path := make(models.SimulatedPath, p.Steps+1)
	path[0] = models.PathPoint{Time: 0, Value: p.Spot}
	s := p.Spot
	for i := 1; i <= p.Steps; i++ {
		s *= math.Exp(driftTerm + volTerm*src.NormFloat64())
		path[i] = models.PathPoint{Time: float64(i) * dt, Value: s}
	}
	return path
}

// CIR integrates dr = a(b-r)dt + sigma·√r dW with the full-truncation Euler
// scheme: the diffusion term uses √max(0,r) and the rate is clamped at zero
// after every step. The clamp is what keeps the discretization non-negative
// even when the Feller condition fails.
func (e *Engine) CIR(p models.CIRParams, src service.RandomSource) models.SimulatedPath {
	if p.Steps < 1 || p.Years <= 0 {
		return models.SimulatedPath{{Time: 0, Value: math.Max(0, p.Rate0)}}
	}
	dt := p.Years / float64(p.Steps)
	sqrtDt := math.Sqrt(dt)

	path := make(models.SimulatedPath, p.Steps+1)
	r := math.Max(0, p.Rate0)
	path[0] = models.PathPoint{Time: 0, Value: r}
	for i := 1; i <= p.Steps; i++ {
		r += p.Speed*(p.Mean-r)*dt + p.Vol*math.Sqrt(math.Max(0, r))*sqrtDt*src.NormFloat64()
		if r < 0 {
			r = 0
		}
		path[i] = models.PathPoint{Time: float64(i) * dt, Value: r}
	}
	return path
}

// Jump integrates Merton jump diffusion. Each step draws a Bernoulli jump
// indicator with probability lambda·dt, a small-lambda·dt approximation of
// the Poisson arrival process, kept as-is; large lambda with few steps
// understates jump frequency. The drift is compensated by
// lambda·(e^{muJ+deltaJ²/2}-1) so the discounted process stays a
// risk-neutral martingale.
func (e *Engine) Jump(p models.JumpParams, src service.RandomSource) models.SimulatedPath {
	if p.Steps < 1 || p.Years <= 0 {
		return models.SimulatedPath{{Time: 0, Value: p.Spot}}
	}
	dt := p.Years / float64(p.Steps)
	compensator := p.Intensity * (math.Exp(p.JumpMean+0.5*p.JumpVol*p.JumpVol) - 1)
	driftTerm := (p.Rate - compensator - 0.5*p.Vol*p.Vol) * dt
	volTerm := p.Vol * math.Sqrt(dt)
	jumpProb := p.Intensity * dt

	path := make(models.SimulatedPath, p.Steps+1)
	path[0] = models.PathPoint{Time: 0, Value: p.Spot}
	s := p.Spot
	for i := 1; i <= p.Steps; i++ {
		step := math.Exp(driftTerm + volTerm*src.NormFloat64())
		if src.Uniform() < jumpProb {
			step *= math.Exp(p.JumpMean + p.JumpVol*src.NormFloat64())
		}
		s *= step
		if s < 0 {
			s = 0
		}
		path[i] = models.PathPoint{Time: float64(i) * dt, Value: s}
	}
	return path
}
