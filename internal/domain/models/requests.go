package models

// HTTP request models. Bound with echo, defaulted with creasty/defaults and
// checked with go-playground/validator; out-of-range knobs are rejected at
// the surface so the engines only ever see their documented ranges.

// PriceRequest asks for closed-form and lattice prices.
type PriceRequest struct {
	Spot         float64 `json:"spot" validate:"required,gt=0"`
	Strike       float64 `json:"strike" validate:"required,gt=0"`
	Maturity     float64 `json:"maturity" validate:"gte=0,lte=30"`
	Rate         float64 `json:"rate" validate:"gte=-0.05,lte=1"`
	Vol          float64 `json:"vol" validate:"gte=0,lte=3"`
	LatticeSteps int     `json:"lattice_steps" default:"150" validate:"gte=1,lte=2000"`
	// Convergence=true adds the lattice price at a ladder of step counts.
	Convergence bool `json:"convergence"`
}

// SimulateGBMRequest asks for GBM paths, optionally with an Asian-option
// Monte Carlo price when a strike is given.
type SimulateGBMRequest struct {
	Spot   float64 `json:"spot" validate:"required,gt=0"`
	Drift  float64 `json:"drift" validate:"gte=-1,lte=1"`
	Vol    float64 `json:"vol" validate:"gte=0,lte=3"`
	Years  float64 `json:"years" default:"1" validate:"gt=0,lte=30"`
	Steps  int     `json:"steps" default:"252" validate:"gte=1,lte=10000"`
	Paths  int     `json:"paths" default:"50" validate:"gte=1,lte=20000"`
	Strike float64 `json:"strike" validate:"gte=0"`
	Seed   int64   `json:"seed"`
}

// SimulateCIRRequest asks for CIR short-rate paths.
type SimulateCIRRequest struct {
	Rate0 float64 `json:"rate0" validate:"gte=0,lte=1"`
	Speed float64 `json:"speed" validate:"gte=0,lte=10"`
	Mean  float64 `json:"mean" validate:"gte=0,lte=1"`
	Vol   float64 `json:"vol" validate:"gte=0,lte=2"`
	Years float64 `json:"years" default:"1" validate:"gt=0,lte=30"`
	Steps int     `json:"steps" default:"252" validate:"gte=1,lte=10000"`
	Paths int     `json:"paths" default:"20" validate:"gte=1,lte=20000"`
	Seed  int64   `json:"seed"`
}

// SimulateJumpRequest asks for Merton jump-diffusion paths.
type SimulateJumpRequest struct {
	Spot      float64 `json:"spot" validate:"required,gt=0"`
	Rate      float64 `json:"rate" validate:"gte=-0.05,lte=1"`
	Vol       float64 `json:"vol" validate:"gte=0,lte=3"`
	Years     float64 `json:"years" default:"1" validate:"gt=0,lte=30"`
	Steps     int     `json:"steps" default:"252" validate:"gte=1,lte=10000"`
	Paths     int     `json:"paths" default:"20" validate:"gte=1,lte=20000"`
	Intensity float64 `json:"intensity" validate:"gte=0,lte=100"`
	JumpMean  float64 `json:"jump_mean" validate:"gte=-1,lte=1"`
	JumpVol   float64 `json:"jump_vol" validate:"gte=0,lte=1"`
	Seed      int64   `json:"seed"`
}

// SimulatePortfolioRequest asks for portfolio-value GBM paths with drift
// and volatility aggregated from constituent assets.
type SimulatePortfolioRequest struct {
	Value0      float64   `json:"value0" validate:"required,gt=0"`
	Symbols     []string  `json:"symbols" validate:"required,min=1,max=20,dive,required"`
	Weights     []float64 `json:"weights" validate:"required,min=1,max=20"`
	Correlation float64   `json:"correlation" default:"0.3" validate:"gte=-1,lte=1"`
	Years       float64   `json:"years" default:"1" validate:"gt=0,lte=30"`
	Steps       int       `json:"steps" default:"252" validate:"gte=1,lte=10000"`
	Paths       int       `json:"paths" default:"50" validate:"gte=1,lte=20000"`
	Seed        int64     `json:"seed"`
}

// RiskRequest asks for VaR/CVaR on a stored symbol's return series.
type RiskRequest struct {
	Symbol      string  `json:"symbol" validate:"required"`
	Method      string  `json:"method" default:"historical" validate:"oneof=historical parametric"`
	Confidence  float64 `json:"confidence" default:"0.95" validate:"gt=0,lt=1"`
	HorizonDays int     `json:"horizon_days" default:"1" validate:"gte=1,lte=252"`
	Bins        int     `json:"bins" default:"30" validate:"gte=2,lte=200"`
}

// VolForecastRequest asks for a GARCH(1,1) volatility forecast.
type VolForecastRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Omega  float64 `json:"omega" default:"0.000001" validate:"gt=0"`
	Alpha  float64 `json:"alpha" default:"0.1" validate:"gte=0,lt=1"`
	Beta   float64 `json:"beta" default:"0.88" validate:"gte=0,lt=1"`
	Days   int     `json:"days" default:"30" validate:"gte=1,lte=756"`
}

// StationaryOK reports alpha+beta < 1, checked at the surface because the
// recursion itself never rejects (callers see a diverging forecast
// otherwise).
func (r VolForecastRequest) StationaryOK() bool { return r.Alpha+r.Beta < 1 }

// AllocateRequest asks for the Merton fraction and, when symbols are
// present, the fixed-correlation portfolio aggregate.
type AllocateRequest struct {
	Mu          float64   `json:"mu" validate:"gte=-1,lte=1"`
	Rate        float64   `json:"rate" validate:"gte=-0.05,lte=1"`
	Vol         float64   `json:"vol" validate:"required,gt=0,lte=3"`
	RiskAver    float64   `json:"risk_aversion" default:"3" validate:"gt=0,lte=100"`
	Symbols     []string  `json:"symbols" validate:"max=20"`
	Weights     []float64 `json:"weights" validate:"max=20"`
	Correlation float64   `json:"correlation" default:"0.3" validate:"gte=-1,lte=1"`
}

// PairsRequest asks for pairs-trading signals on a price ratio.
type PairsRequest struct {
	SymbolA  string  `json:"symbol_a" validate:"required"`
	SymbolB  string  `json:"symbol_b" validate:"required"`
	Lookback int     `json:"lookback" default:"30" validate:"gte=2,lte=252"`
	EntryZ   float64 `json:"entry_z" default:"2" validate:"gt=0,lte=10"`
	ExitZ    float64 `json:"exit_z" default:"0.5" validate:"gte=0,lte=10"`
}

// TailsRequest asks for the Student-t vs normal density comparison curves.
type TailsRequest struct {
	DF     float64 `json:"df" default:"4" validate:"gte=1,lte=100"`
	XMin   float64 `json:"x_min" default:"-5"`
	XMax   float64 `json:"x_max" default:"5"`
	Points int     `json:"points" default:"201" validate:"gte=11,lte=2001"`
}
