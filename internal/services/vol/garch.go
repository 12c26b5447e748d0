package vol

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/features"
)

// Forecaster projects daily variance forward with a GARCH(1,1) recursion
// and reports it as annualized volatility plus a price cone half-width.
type Forecaster struct{}

func New() *Forecaster {
	return &Forecaster{}
}

// Forecast seeds the recursion from the sample variance of the series' log
// returns and iterates days steps ahead. The first step uses the last
// squared return as the innovation; later steps have no realized return,
// so the recursion collapses to sigma2 = omega + (alpha+beta)*sigma2.
//
// Returns nil when the series is too short to estimate a variance.
func (f *Forecaster) Forecast(series models.PriceSeries, p models.GARCHParams, days int) []models.ForecastPoint {
	rets := features.LogReturns(series)
	if len(rets) < 2 || days <= 0 {
		return nil
	}

	sigma2 := stat.Variance(rets, nil)
	if sigma2 <= 0 {
		sigma2 = p.Omega
	}
	lastEps2 := rets[len(rets)-1] * rets[len(rets)-1]

	spot := series.Points[series.Len()-1].Price
	start := series.Points[series.Len()-1].Date

	out := make([]models.ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		if i == 1 {
			sigma2 = p.Omega + p.Alpha*lastEps2 + p.Beta*sigma2
		} else {
			sigma2 = p.Omega + (p.Alpha+p.Beta)*sigma2
		}
		if sigma2 < 0 {
			sigma2 = 0
		}
		annVol := math.Sqrt(sigma2 * features.TradingDaysPerYear)
		out = append(out, models.ForecastPoint{
			Date:          start.AddDate(0, 0, i),
			AnnualizedVol: annVol,
			ConeWidth:     spot * annVol * math.Sqrt(float64(i)/features.TradingDaysPerYear),
		})
	}
	return out
}

// LongRunVol is the unconditional annualized volatility implied by the
// coefficients, defined only in the stationary region alpha+beta < 1.
func LongRunVol(p models.GARCHParams) (float64, bool) {
	persist := p.Alpha + p.Beta
	if persist >= 1 || p.Omega <= 0 {
		return 0, false
	}
	return math.Sqrt(p.Omega / (1 - persist) * features.TradingDaysPerYear), true
}
