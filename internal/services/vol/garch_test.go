package vol

import (
	"math"
	"testing"
	"time"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/features"
)

func testSeries(prices ...float64) models.PriceSeries {
	s := models.PriceSeries{Symbol: "TEST"}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		s.Points = append(s.Points, models.PricePoint{Date: day.AddDate(0, 0, i), Price: p})
	}
	return s
}

func TestForecastConvergesToLongRunVariance(t *testing.T) {
	series := testSeries(100, 102, 99, 101, 103, 100, 98, 101, 104, 102)
	p := models.GARCHParams{Omega: 0.00001, Alpha: 0.1, Beta: 0.85}

	pts := New().Forecast(series, p, 500)
	if len(pts) != 500 {
		t.Fatalf("len = %d", len(pts))
	}

	longRun, ok := LongRunVol(p)
	if !ok {
		t.Fatalf("coefficients should be stationary")
	}
	last := pts[len(pts)-1].AnnualizedVol
	if math.Abs(last-longRun)/longRun > 0.01 {
		t.Fatalf("terminal vol %v, long-run %v", last, longRun)
	}
}

func TestForecastConeWidens(t *testing.T) {
	series := testSeries(100, 101, 99, 102, 98, 103, 97, 104)
	p := models.GARCHParams{Omega: 0.00002, Alpha: 0.08, Beta: 0.9}

	pts := New().Forecast(series, p, 30)
	for i := 1; i < len(pts); i++ {
		if pts[i].ConeWidth < pts[i-1].ConeWidth {
			t.Fatalf("cone shrank at step %d: %v -> %v", i, pts[i-1].ConeWidth, pts[i].ConeWidth)
		}
	}
	if pts[0].ConeWidth <= 0 {
		t.Fatalf("first cone width %v", pts[0].ConeWidth)
	}
}

func TestForecastDates(t *testing.T) {
	series := testSeries(100, 101, 102)
	pts := New().Forecast(series, models.GARCHParams{Omega: 0.00001, Alpha: 0.1, Beta: 0.8}, 3)
	lastDate := series.Points[series.Len()-1].Date
	for i, pt := range pts {
		want := lastDate.AddDate(0, 0, i+1)
		if !pt.Date.Equal(want) {
			t.Fatalf("point %d date %v, want %v", i, pt.Date, want)
		}
	}
}

func TestForecastShortSeries(t *testing.T) {
	if pts := New().Forecast(testSeries(100, 101), models.GARCHParams{}, 10); pts != nil {
		t.Fatalf("expected nil, got %d points", len(pts))
	}
}

func TestLongRunVolNonStationary(t *testing.T) {
	if _, ok := LongRunVol(models.GARCHParams{Omega: 0.00001, Alpha: 0.5, Beta: 0.5}); ok {
		t.Fatalf("alpha+beta = 1 must not be stationary")
	}
}

func TestLongRunVolKnownValue(t *testing.T) {
	p := models.GARCHParams{Omega: 0.000004, Alpha: 0.1, Beta: 0.8}
	got, ok := LongRunVol(p)
	if !ok {
		t.Fatalf("expected stationary")
	}
	want := math.Sqrt(0.000004 / 0.1 * features.TradingDaysPerYear)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("long-run vol %v, want %v", got, want)
	}
}
