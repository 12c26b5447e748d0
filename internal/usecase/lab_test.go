package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"QuantLab/internal/domain/models"
	drepo "QuantLab/internal/domain/repository"
	repoimpl "QuantLab/internal/repository"
	"QuantLab/internal/services/portfolio"
	"QuantLab/internal/services/pricing"
	"QuantLab/internal/services/risk"
	"QuantLab/internal/services/signal"
	"QuantLab/internal/services/simulate"
	"QuantLab/internal/services/vol"
	"QuantLab/pkg/cache"
	"QuantLab/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordCompute(string)             {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordLatency(string, float64)    {}
func (nopMetrics) RecordPathsSimulated(string, int) {}

// countingStore wraps a PriceStore and counts GetSeries calls so tests can
// observe cache hits.
type countingStore struct {
	drepo.PriceStore
	calls int
}

func (c *countingStore) GetSeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	c.calls++
	return c.PriceStore.GetSeries(ctx, symbol)
}

func newTestLab(t *testing.T) (*Lab, *countingStore) {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store := &countingStore{PriceStore: repoimpl.NewStaticPriceStore(7)}
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })

	lab := NewLab(
		store,
		pricing.New(),
		simulate.New(),
		risk.New(),
		vol.New(),
		portfolio.New(),
		signal.New(),
		mc,
		nopMetrics{},
		log,
		time.Minute,
	)
	return lab, store
}

func TestPriceWithConvergence(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.Price(context.Background(), models.PriceRequest{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.2,
		LatticeSteps: 150, Convergence: true,
	})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if res.Quote.Call <= 0 {
		t.Fatalf("call = %v", res.Quote.Call)
	}
	if math.Abs(res.LatticeCall-res.Quote.Call)/res.Quote.Call > 0.01 {
		t.Fatalf("lattice %v far from closed form %v", res.LatticeCall, res.Quote.Call)
	}
	if len(res.Convergence) == 0 {
		t.Fatalf("expected convergence ladder")
	}
}

func TestSimulateGBMSeededIsReproducible(t *testing.T) {
	lab, _ := newTestLab(t)
	req := models.SimulateGBMRequest{
		Spot: 100, Drift: 0.05, Vol: 0.2, Years: 1, Steps: 50, Paths: 4, Seed: 42, Strike: 100,
	}
	a, err := lab.SimulateGBM(context.Background(), req)
	if err != nil {
		t.Fatalf("SimulateGBM: %v", err)
	}
	b, _ := lab.SimulateGBM(context.Background(), req)

	if len(a.Paths) != 4 || len(b.Paths) != 4 {
		t.Fatalf("path counts %d, %d", len(a.Paths), len(b.Paths))
	}
	if a.Paths[0].Final() != b.Paths[0].Final() {
		t.Fatalf("seeded runs diverged: %v vs %v", a.Paths[0].Final(), b.Paths[0].Final())
	}
	if a.AsianCall == nil || *a.AsianCall < 0 {
		t.Fatalf("asian call missing or negative: %v", a.AsianCall)
	}
}

func TestSimulateCIRReportsFeller(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.SimulateCIR(context.Background(), models.SimulateCIRRequest{
		Rate0: 0.03, Speed: 0.5, Mean: 0.04, Vol: 0.1, Years: 1, Steps: 50, Paths: 2, Seed: 1,
	})
	if err != nil {
		t.Fatalf("SimulateCIR: %v", err)
	}
	if res.FellerSatisfied == nil || !*res.FellerSatisfied {
		t.Fatalf("2ab=0.04 >= sigma^2=0.01 should satisfy Feller")
	}
}

func TestRiskMemoizesStoreReads(t *testing.T) {
	lab, store := newTestLab(t)
	req := models.RiskRequest{Symbol: "BLUE", Method: "historical", Confidence: 0.95, HorizonDays: 1, Bins: 30}

	first, err := lab.Risk(context.Background(), req)
	if err != nil {
		t.Fatalf("Risk: %v", err)
	}
	callsAfterFirst := store.calls

	second, err := lab.Risk(context.Background(), req)
	if err != nil {
		t.Fatalf("Risk (cached): %v", err)
	}
	if store.calls != callsAfterFirst {
		t.Fatalf("cached call re-read the store: %d -> %d", callsAfterFirst, store.calls)
	}
	if first.Measure.VaR != second.Measure.VaR {
		t.Fatalf("cached measure differs: %v vs %v", first.Measure.VaR, second.Measure.VaR)
	}
	if first.Measure.CVaR < first.Measure.VaR {
		t.Fatalf("CVaR %v below VaR %v", first.Measure.CVaR, first.Measure.VaR)
	}
}

func TestRiskUnknownSymbol(t *testing.T) {
	lab, _ := newTestLab(t)
	_, err := lab.Risk(context.Background(), models.RiskRequest{Symbol: "NOPE", Method: "historical", Confidence: 0.95, HorizonDays: 1, Bins: 10})
	if err == nil {
		t.Fatalf("expected error for unknown symbol")
	}
}

func TestVolForecastRejectsNonStationary(t *testing.T) {
	lab, _ := newTestLab(t)
	_, err := lab.VolForecast(context.Background(), models.VolForecastRequest{
		Symbol: "BLUE", Omega: 0.000001, Alpha: 0.6, Beta: 0.5, Days: 10,
	})
	if err == nil {
		t.Fatalf("alpha+beta >= 1 must be rejected")
	}
}

func TestVolForecastProducesCurve(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.VolForecast(context.Background(), models.VolForecastRequest{
		Symbol: "BLUE", Omega: 0.000001, Alpha: 0.1, Beta: 0.85, Days: 20,
	})
	if err != nil {
		t.Fatalf("VolForecast: %v", err)
	}
	if len(res.Points) != 20 {
		t.Fatalf("points = %d", len(res.Points))
	}
	if res.LongRunVol <= 0 {
		t.Fatalf("long-run vol = %v", res.LongRunVol)
	}
}

func TestAllocateWithAggregate(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.Allocate(context.Background(), models.AllocateRequest{
		Mu: 0.08, Rate: 0.03, Vol: 0.2, RiskAver: 3,
		Symbols: []string{"BLUE", "UTIL"}, Weights: []float64{0.6, 0.4}, Correlation: 0.3,
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if res.Stats == nil || res.Stats.Vol <= 0 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	want := 0.05 / 0.12
	if math.Abs(res.Allocation.Theoretical-want) > 1e-12 {
		t.Fatalf("fraction = %v", res.Allocation.Theoretical)
	}
}

func TestAllocateLengthMismatch(t *testing.T) {
	lab, _ := newTestLab(t)
	_, err := lab.Allocate(context.Background(), models.AllocateRequest{
		Vol: 0.2, RiskAver: 2, Symbols: []string{"BLUE"}, Weights: []float64{0.5, 0.5},
	})
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestPairsAlignment(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.Pairs(context.Background(), models.PairsRequest{
		SymbolA: "BLUE", SymbolB: "UTIL", Lookback: 30, EntryZ: 2, ExitZ: 0.5,
	})
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(res.ZScores) != res.Ratio.Len() {
		t.Fatalf("z trace len %d, ratio len %d", len(res.ZScores), res.Ratio.Len())
	}
	if res.Pair != "BLUE/UTIL" {
		t.Fatalf("pair = %s", res.Pair)
	}
}

func TestTailsCurves(t *testing.T) {
	lab, _ := newTestLab(t)
	res, err := lab.Tails(context.Background(), models.TailsRequest{DF: 5, XMin: -4, XMax: 4, Points: 81})
	if err != nil {
		t.Fatalf("Tails: %v", err)
	}
	if len(res.X) != 81 || len(res.Normal) != 81 || len(res.StudentT) != 81 {
		t.Fatalf("curve lengths %d %d %d", len(res.X), len(res.Normal), len(res.StudentT))
	}
	mid := 40
	if math.Abs(res.X[mid]) > 1e-9 {
		t.Fatalf("midpoint x = %v", res.X[mid])
	}
	// Fat tails: t density exceeds normal far from the center.
	if res.StudentT[0] <= res.Normal[0] {
		t.Fatalf("t tail %v not above normal tail %v", res.StudentT[0], res.Normal[0])
	}
	if res.ExcessKurtosis == nil {
		t.Fatalf("df=5 has defined excess kurtosis")
	}
}

func TestSeriesAndSymbols(t *testing.T) {
	lab, _ := newTestLab(t)
	syms, err := lab.Symbols(context.Background())
	if err != nil || len(syms) == 0 {
		t.Fatalf("Symbols: %v %v", syms, err)
	}
	series, err := lab.Series(context.Background(), syms[0], 10)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if series.Len() != 10 {
		t.Fatalf("len = %d", series.Len())
	}
}
