// Package pricing values European options, closed-form and on a CRR
// binomial lattice.
package pricing

import (
	"math"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/dist"
)

// Engine implements service.OptionPricer.
type Engine struct{}

// New returns a pricing engine.
func New() *Engine { return &Engine{} }

// Price returns the Black-Scholes-Merton call/put quote with Greeks.
// Degenerate inputs (T<=0 or sigma<=0) fall back to intrinsic value with
// zero Greeks; slider extremes must never fail.
func (e *Engine) Price(p models.OptionParams) models.OptionQuote {
	if p.Maturity <= 0 || p.Vol <= 0 {
		return models.OptionQuote{
			Call: math.Max(0, p.Spot-p.Strike),
			Put:  math.Max(0, p.Strike-p.Spot),
		}
	}

	sqrtT := math.Sqrt(p.Maturity)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Vol*p.Vol)*p.Maturity) / (p.Vol * sqrtT)
	d2 := d1 - p.Vol*sqrtT
	disc := math.Exp(-p.Rate * p.Maturity)

	call := p.Spot*dist.NormCDF(d1) - p.Strike*disc*dist.NormCDF(d2)
	put := p.Strike*disc*dist.NormCDF(-d2) - p.Spot*dist.NormCDF(-d1)

	return models.OptionQuote{
		Call: call,
		Put:  put,
		Greeks: models.Greeks{
			Delta: dist.NormCDF(d1),
			Gamma: dist.NormPDF(d1) / (p.Spot * p.Vol * sqrtT),
			Vega:  p.Spot * sqrtT * dist.NormPDF(d1),
			Theta: -p.Spot*dist.NormPDF(d1)*p.Vol/(2*sqrtT) - p.Rate*p.Strike*disc*dist.NormCDF(d2),
			Rho:   p.Strike * p.Maturity * disc * dist.NormCDF(d2),
		},
	}
}
