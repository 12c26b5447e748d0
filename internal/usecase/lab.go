package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"QuantLab/internal/domain/models"
	drepo "QuantLab/internal/domain/repository"
	"QuantLab/internal/domain/service"
	"QuantLab/internal/services/dist"
	"QuantLab/internal/services/features"
	"QuantLab/internal/services/pricing"
	"QuantLab/internal/services/rng"
	"QuantLab/internal/services/simulate"
	"QuantLab/internal/services/vol"
	"QuantLab/pkg/cache"
	"QuantLab/pkg/logger"
)

// Lab wires the computation engines behind a single application service.
// Deterministic results (fixed seed or no randomness at all) are memoized
// in the cache; zero-seed simulations get a time-derived seed and bypass it.
type Lab struct {
	store     drepo.PriceStore
	pricer    *pricing.Engine
	simulator service.PathSimulator
	risk      service.RiskAnalyzer
	vol       service.VolatilityForecaster
	alloc     service.Allocator
	signals   service.SignalGenerator
	cache     cache.Service
	metrics   drepo.Metrics
	log       *logger.Logger
	cacheTTL  time.Duration
}

func NewLab(
	store drepo.PriceStore,
	pricer *pricing.Engine,
	simulator service.PathSimulator,
	risk service.RiskAnalyzer,
	volf service.VolatilityForecaster,
	alloc service.Allocator,
	signals service.SignalGenerator,
	cacheSvc cache.Service,
	metrics drepo.Metrics,
	log *logger.Logger,
	cacheTTL time.Duration,
) *Lab {
	return &Lab{
		store:     store,
		pricer:    pricer,
		simulator: simulator,
		risk:      risk,
		vol:       volf,
		alloc:     alloc,
		signals:   signals,
		cache:     cacheSvc,
		metrics:   metrics,
		log:       log,
		cacheTTL:  cacheTTL,
	}
}

// cacheKey hashes the full parameter tuple so two requests differing in any
// knob never collide.
func cacheKey(op string, req any) string {
	raw, err := json.Marshal(req)
	if err != nil {
		return "lab:" + op + ":nocache"
	}
	sum := sha256.Sum256(raw)
	return "lab:" + op + ":" + hex.EncodeToString(sum[:16])
}

// memoized runs compute through the cache. Cache failures are logged and
// swallowed; the computation result always wins.
func memoized[T any](ctx context.Context, l *Lab, op string, req any, compute func() (T, error)) (T, error) {
	key := cacheKey(op, req)

	var hit T
	if err := l.cache.Get(ctx, key, &hit); err == nil {
		return hit, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		l.log.Warn("cache read failed", logger.String("op", op), logger.Error(err))
	}

	out, err := compute()
	if err != nil {
		return out, err
	}
	if err := l.cache.Set(ctx, key, out, l.cacheTTL); err != nil {
		l.log.Warn("cache write failed", logger.String("op", op), logger.Error(err))
	}
	return out, nil
}

func (l *Lab) observe(op, model string, start time.Time) {
	l.metrics.RecordCompute(model)
	l.metrics.RecordLatency(op, time.Since(start).Seconds())
}

// PriceResult carries the closed-form quote plus the lattice cross-check.
type PriceResult struct {
	Quote        models.OptionQuote `json:"quote"`
	LatticeCall  float64            `json:"lattice_call"`
	LatticeSteps int                `json:"lattice_steps"`
	Convergence  []models.PathPoint `json:"convergence,omitempty"`
}

func (l *Lab) Price(ctx context.Context, req models.PriceRequest) (PriceResult, error) {
	start := time.Now()
	defer l.observe("price", "black-scholes", start)

	return memoized(ctx, l, "price", req, func() (PriceResult, error) {
		p := models.OptionParams{
			Spot:     req.Spot,
			Strike:   req.Strike,
			Maturity: req.Maturity,
			Rate:     req.Rate,
			Vol:      req.Vol,
		}
		res := PriceResult{
			Quote:        l.pricer.Price(p),
			LatticeCall:  l.pricer.LatticePrice(p, req.LatticeSteps),
			LatticeSteps: req.LatticeSteps,
		}
		if req.Convergence {
			res.Convergence = l.pricer.ConvergenceLadder(p, req.LatticeSteps)
		}
		return res, nil
	})
}

// SimResult is a bundle of simulated paths plus model-specific extras.
type SimResult struct {
	Paths []models.SimulatedPath `json:"paths"`
	Seed  int64                  `json:"seed"`
	// AsianCall is set for GBM runs that supplied a strike.
	AsianCall *float64 `json:"asian_call,omitempty"`
	// FellerSatisfied is set for CIR runs.
	FellerSatisfied *bool `json:"feller_satisfied,omitempty"`
}

// resolveSeed substitutes a time-derived seed for zero. The second return
// reports whether the run is reproducible and therefore cacheable.
func resolveSeed(seed int64) (int64, bool) {
	if seed != 0 {
		return seed, true
	}
	return time.Now().UnixNano(), false
}

func (l *Lab) SimulateGBM(ctx context.Context, req models.SimulateGBMRequest) (SimResult, error) {
	start := time.Now()
	defer l.observe("simulate_gbm", "gbm", start)

	seed, cacheable := resolveSeed(req.Seed)
	req.Seed = seed

	compute := func() (SimResult, error) {
		p := models.GBMParams{
			Spot:  req.Spot,
			Drift: req.Drift,
			Vol:   req.Vol,
			Years: req.Years,
			Steps: req.Steps,
		}
		paths := simulate.Paths(req.Paths, seed, func(src *rng.Source) models.SimulatedPath {
			return l.simulator.GBM(p, src)
		})
		l.metrics.RecordPathsSimulated("gbm", len(paths))

		res := SimResult{Paths: paths, Seed: seed}
		if req.Strike > 0 {
			price := simulate.AsianCallPrice(paths, req.Strike, req.Drift, req.Years)
			res.AsianCall = &price
		}
		return res, nil
	}
	if !cacheable {
		return compute()
	}
	return memoized(ctx, l, "simulate_gbm", req, compute)
}

func (l *Lab) SimulateCIR(ctx context.Context, req models.SimulateCIRRequest) (SimResult, error) {
	start := time.Now()
	defer l.observe("simulate_cir", "cir", start)

	seed, cacheable := resolveSeed(req.Seed)
	req.Seed = seed

	compute := func() (SimResult, error) {
		p := models.CIRParams{
			Rate0: req.Rate0,
			Speed: req.Speed,
			Mean:  req.Mean,
			Vol:   req.Vol,
			Years: req.Years,
			Steps: req.Steps,
		}
		paths := simulate.Paths(req.Paths, seed, func(src *rng.Source) models.SimulatedPath {
			return l.simulator.CIR(p, src)
		})
		l.metrics.RecordPathsSimulated("cir", len(paths))

		feller := p.FellerSatisfied()
		return SimResult{Paths: paths, Seed: seed, FellerSatisfied: &feller}, nil
	}
	if !cacheable {
		return compute()
	}
	return memoized(ctx, l, "simulate_cir", req, compute)
}

func (l *Lab) SimulateJump(ctx context.Context, req models.SimulateJumpRequest) (SimResult, error) {
	start := time.Now()
	defer l.observe("simulate_jump", "jump-diffusion", start)

	seed, cacheable := resolveSeed(req.Seed)
	req.Seed = seed

	compute := func() (SimResult, error) {
		p := models.JumpParams{
			Spot:      req.Spot,
			Rate:      req.Rate,
			Vol:       req.Vol,
			Years:     req.Years,
			Steps:     req.Steps,
			Intensity: req.Intensity,
			JumpMean:  req.JumpMean,
			JumpVol:   req.JumpVol,
		}
		paths := simulate.Paths(req.Paths, seed, func(src *rng.Source) models.SimulatedPath {
			return l.simulator.Jump(p, src)
		})
		l.metrics.RecordPathsSimulated("jump-diffusion", len(paths))
		return SimResult{Paths: paths, Seed: seed}, nil
	}
	if !cacheable {
		return compute()
	}
	return memoized(ctx, l, "simulate_jump", req, compute)
}

// PortfolioSimResult pairs portfolio-value paths with the aggregate the
// drift and volatility were taken from.
type PortfolioSimResult struct {
	Paths []models.SimulatedPath `json:"paths"`
	Seed  int64                  `json:"seed"`
	Stats models.PortfolioStats  `json:"stats"`
}

// SimulatePortfolio estimates each constituent's annualized drift and vol
// from stored history, aggregates them under the assumed correlation, and
// simulates the portfolio value as a single GBM.
func (l *Lab) SimulatePortfolio(ctx context.Context, req models.SimulatePortfolioRequest) (PortfolioSimResult, error) {
	start := time.Now()
	defer l.observe("simulate_portfolio", "portfolio-gbm", start)

	if len(req.Symbols) != len(req.Weights) {
		return PortfolioSimResult{}, fmt.Errorf("symbols and weights length mismatch: %d vs %d", len(req.Symbols), len(req.Weights))
	}

	seed, cacheable := resolveSeed(req.Seed)
	req.Seed = seed

	compute := func() (PortfolioSimResult, error) {
		means := make([]float64, len(req.Symbols))
		vols := make([]float64, len(req.Symbols))
		for i, sym := range req.Symbols {
			series, err := l.store.GetSeries(ctx, sym)
			if err != nil {
				return PortfolioSimResult{}, fmt.Errorf("load %s: %w", sym, err)
			}
			rets := features.LogReturns(series)
			means[i] = features.AnnualizedMean(rets)
			vols[i] = features.AnnualizedVol(rets)
		}

		stats := l.alloc.Aggregate(req.Weights, means, vols, req.Correlation)

		p := models.GBMParams{
			Spot:  req.Value0,
			Drift: stats.Mean,
			Vol:   stats.Vol,
			Years: req.Years,
			Steps: req.Steps,
		}
		paths := simulate.Paths(req.Paths, seed, func(src *rng.Source) models.SimulatedPath {
			return l.simulator.GBM(p, src)
		})
		l.metrics.RecordPathsSimulated("portfolio-gbm", len(paths))

		return PortfolioSimResult{Paths: paths, Seed: seed, Stats: stats}, nil
	}
	if !cacheable {
		return compute()
	}
	return memoized(ctx, l, "simulate_portfolio", req, compute)
}

// RiskResult is the measure plus the return histogram behind it.
type RiskResult struct {
	Measure   models.RiskMeasure    `json:"measure"`
	Histogram []models.HistogramBin `json:"histogram"`
	Samples   int                   `json:"samples"`
}

func (l *Lab) Risk(ctx context.Context, req models.RiskRequest) (RiskResult, error) {
	start := time.Now()
	defer l.observe("risk", req.Method, start)

	return memoized(ctx, l, "risk", req, func() (RiskResult, error) {
		series, err := l.store.GetSeries(ctx, req.Symbol)
		if err != nil {
			return RiskResult{}, fmt.Errorf("load %s: %w", req.Symbol, err)
		}
		rets := features.LogReturns(series)
		if len(rets) < 2 {
			return RiskResult{}, fmt.Errorf("series %s too short for risk estimation", req.Symbol)
		}

		measure := l.risk.Compute(rets, models.RiskMethod(req.Method), models.RiskParams{
			Confidence:  req.Confidence,
			HorizonDays: req.HorizonDays,
		})
		return RiskResult{
			Measure:   measure,
			Histogram: l.risk.Histogram(rets, req.Bins),
			Samples:   len(rets),
		}, nil
	})
}

// VolForecastResult is the forecast curve plus the long-run anchor.
type VolForecastResult struct {
	Symbol     string                 `json:"symbol"`
	Points     []models.ForecastPoint `json:"points"`
	LongRunVol float64                `json:"long_run_vol"`
}

func (l *Lab) VolForecast(ctx context.Context, req models.VolForecastRequest) (VolForecastResult, error) {
	start := time.Now()
	defer l.observe("vol_forecast", "garch", start)

	if !req.StationaryOK() {
		return VolForecastResult{}, fmt.Errorf("alpha+beta must be below 1, got %.4f", req.Alpha+req.Beta)
	}

	return memoized(ctx, l, "vol_forecast", req, func() (VolForecastResult, error) {
		series, err := l.store.GetSeries(ctx, req.Symbol)
		if err != nil {
			return VolForecastResult{}, fmt.Errorf("load %s: %w", req.Symbol, err)
		}
		p := models.GARCHParams{Omega: req.Omega, Alpha: req.Alpha, Beta: req.Beta}
		points := l.vol.Forecast(series, p, req.Days)
		if points == nil {
			return VolForecastResult{}, fmt.Errorf("series %s too short for forecasting", req.Symbol)
		}
		longRun, _ := vol.LongRunVol(p)
		return VolForecastResult{Symbol: req.Symbol, Points: points, LongRunVol: longRun}, nil
	})
}

// AllocateResult is the Merton fraction plus, when symbols were supplied,
// the fixed-correlation aggregate of the named assets.
type AllocateResult struct {
	Allocation models.AllocationResult `json:"allocation"`
	Stats      *models.PortfolioStats  `json:"stats,omitempty"`
}

func (l *Lab) Allocate(ctx context.Context, req models.AllocateRequest) (AllocateResult, error) {
	start := time.Now()
	defer l.observe("allocate", "merton", start)

	if len(req.Symbols) != len(req.Weights) {
		return AllocateResult{}, fmt.Errorf("symbols and weights length mismatch: %d vs %d", len(req.Symbols), len(req.Weights))
	}

	return memoized(ctx, l, "allocate", req, func() (AllocateResult, error) {
		res := AllocateResult{
			Allocation: l.alloc.MertonFraction(models.MertonParams{
				Mu:       req.Mu,
				Rate:     req.Rate,
				Vol:      req.Vol,
				RiskAver: req.RiskAver,
			}),
		}
		if len(req.Symbols) == 0 {
			return res, nil
		}

		means := make([]float64, len(req.Symbols))
		vols := make([]float64, len(req.Symbols))
		for i, sym := range req.Symbols {
			series, err := l.store.GetSeries(ctx, sym)
			if err != nil {
				return AllocateResult{}, fmt.Errorf("load %s: %w", sym, err)
			}
			rets := features.LogReturns(series)
			means[i] = features.AnnualizedMean(rets)
			vols[i] = features.AnnualizedVol(rets)
		}
		stats := l.alloc.Aggregate(req.Weights, means, vols, req.Correlation)
		res.Stats = &stats
		return res, nil
	})
}

// PairsResult is the event list plus the aligned z-score trace.
type PairsResult struct {
	Pair    string               `json:"pair"`
	Events  []models.SignalEvent `json:"events"`
	ZScores []float64            `json:"z_scores"`
	Ratio   models.PriceSeries   `json:"ratio"`
}

func (l *Lab) Pairs(ctx context.Context, req models.PairsRequest) (PairsResult, error) {
	start := time.Now()
	defer l.observe("pairs", "zscore-fsm", start)

	return memoized(ctx, l, "pairs", req, func() (PairsResult, error) {
		a, err := l.store.GetSeries(ctx, req.SymbolA)
		if err != nil {
			return PairsResult{}, fmt.Errorf("load %s: %w", req.SymbolA, err)
		}
		b, err := l.store.GetSeries(ctx, req.SymbolB)
		if err != nil {
			return PairsResult{}, fmt.Errorf("load %s: %w", req.SymbolB, err)
		}

		ratio := features.Ratio(a, b)
		events, zs := l.signals.Run(ratio, models.SignalParams{
			Lookback: req.Lookback,
			EntryZ:   req.EntryZ,
			ExitZ:    req.ExitZ,
		})
		return PairsResult{
			Pair:    ratio.Symbol,
			Events:  events,
			ZScores: zs,
			Ratio:   ratio,
		}, nil
	})
}

// TailsResult holds sampled density curves for the fat-tail comparison.
type TailsResult struct {
	X        []float64 `json:"x"`
	Normal   []float64 `json:"normal"`
	StudentT []float64 `json:"student_t"`
	// ExcessKurtosis is nil when undefined (df <= 4).
	ExcessKurtosis *float64 `json:"excess_kurtosis,omitempty"`
}

func (l *Lab) Tails(ctx context.Context, req models.TailsRequest) (TailsResult, error) {
	start := time.Now()
	defer l.observe("tails", "student-t", start)

	if req.XMax <= req.XMin {
		return TailsResult{}, fmt.Errorf("x_max must exceed x_min")
	}

	return memoized(ctx, l, "tails", req, func() (TailsResult, error) {
		res := TailsResult{
			X:        make([]float64, req.Points),
			Normal:   make([]float64, req.Points),
			StudentT: make([]float64, req.Points),
		}
		step := (req.XMax - req.XMin) / float64(req.Points-1)
		for i := 0; i < req.Points; i++ {
			x := req.XMin + float64(i)*step
			res.X[i] = x
			res.Normal[i] = dist.NormPDF(x)
			res.StudentT[i] = dist.StudentTPDF(x, req.DF)
		}
		if k, ok := dist.ExcessKurtosis(req.DF); ok {
			res.ExcessKurtosis = &k
		}
		return res, nil
	})
}

// Symbols lists the available symbols.
func (l *Lab) Symbols(ctx context.Context) ([]string, error) {
	return l.store.ListSymbols(ctx)
}

// Series returns the last n points of a symbol's history, or the whole
// series when n <= 0.
func (l *Lab) Series(ctx context.Context, symbol string, n int) (models.PriceSeries, error) {
	if n > 0 {
		return l.store.GetLatestN(ctx, symbol, n)
	}
	return l.store.GetSeries(ctx, symbol)
}
