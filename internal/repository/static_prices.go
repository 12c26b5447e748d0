package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"time"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/domain/repository"
	"QuantLab/internal/services/rng"
)

// ErrUnknownSymbol is returned for symbols the store does not carry.
var ErrUnknownSymbol = fmt.Errorf("unknown symbol")

// profile drives synthetic series generation for one symbol.
type profile struct {
	start float64
	drift float64 // annualized
	vol   float64 // annualized
	days  int
}

var defaultUniverse = map[string]profile{
	"BLUE":  {start: 180, drift: 0.07, vol: 0.18, days: 756},
	"GROWT": {start: 95, drift: 0.12, vol: 0.35, days: 756},
	"STEAD": {start: 60, drift: 0.04, vol: 0.11, days: 756},
	"CYCL":  {start: 42, drift: 0.05, vol: 0.27, days: 756},
	"MINER": {start: 28, drift: 0.02, vol: 0.42, days: 756},
	"UTIL":  {start: 71, drift: 0.03, vol: 0.09, days: 756},
}

// StaticPriceStore serves deterministic synthetic daily price series. Each
// symbol's series is generated once, from a seed derived from the store
// seed and the symbol name, so restarts reproduce identical data.
type StaticPriceStore struct {
	series map[string]models.PriceSeries
}

// NewStaticPriceStore generates the default symbol universe.
func NewStaticPriceStore(seed int64) repository.PriceStore {
	s := &StaticPriceStore{series: make(map[string]models.PriceSeries, len(defaultUniverse))}
	for sym, p := range defaultUniverse {
		s.series[sym] = generate(sym, p, seed)
	}
	return s
}

func symbolSeed(base int64, symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return base + int64(h.Sum64()&math.MaxInt32)
}

// generate walks a daily geometric Brownian motion over the last p.days
// trading days, weekends skipped, ending at the most recent weekday.
func generate(symbol string, p profile, seed int64) models.PriceSeries {
	src := rng.New(symbolSeed(seed, symbol))

	const dt = 1.0 / 252
	driftTerm := (p.drift - 0.5*p.vol*p.vol) * dt
	volTerm := p.vol * math.Sqrt(dt)

	dates := make([]time.Time, p.days)
	d := time.Now().UTC().Truncate(24 * time.Hour)
	for i := p.days - 1; i >= 0; i-- {
		for wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday; wd = d.Weekday() {
			d = d.AddDate(0, 0, -1)
		}
		dates[i] = d
		d = d.AddDate(0, 0, -1)
	}

	out := models.PriceSeries{Symbol: symbol, Points: make([]models.PricePoint, 0, p.days)}
	price := p.start
	for _, date := range dates {
		out.Points = append(out.Points, models.PricePoint{Date: date, Price: price})
		price *= math.Exp(driftTerm + volTerm*src.NormFloat64())
	}
	return out
}

func (s *StaticPriceStore) ListSymbols(ctx context.Context) ([]string, error) {
	syms := make([]string, 0, len(s.series))
	for sym := range s.series {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms, nil
}

func (s *StaticPriceStore) GetSeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	series, ok := s.series[symbol]
	if !ok {
		return models.PriceSeries{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return series, nil
}

func (s *StaticPriceStore) GetLatestN(ctx context.Context, symbol string, n int) (models.PriceSeries, error) {
	series, err := s.GetSeries(ctx, symbol)
	if err != nil {
		return models.PriceSeries{}, err
	}
	if n <= 0 || n >= series.Len() {
		return series, nil
	}
	return models.PriceSeries{
		Symbol: series.Symbol,
		Points: series.Points[series.Len()-n:],
	}, nil
}
