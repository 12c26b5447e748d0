package simulate

import (
	"math"
	"runtime"
	"sync"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/rng"
)

// Paths runs gen once per path across a bounded worker pool. Each worker
// owns its own seeded Source (seed+i), so a fixed seed reproduces the whole
// batch regardless of scheduling; no ordering is guaranteed across paths.
func Paths(n int, seed int64, gen func(src *rng.Source) models.SimulatedPath) []models.SimulatedPath {
	if n <= 0 {
		return nil
	}
	out := make([]models.SimulatedPath, n)

	workers := runtime.GOMAXPROCS(0)
	if n < 100 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[idx] = gen(rng.New(seed + int64(idx)))
		}(i)
	}
	wg.Wait()
	return out
}

// AsianCallPrice is the arithmetic-average Monte Carlo estimate
// e^{-rT}·mean(max(0, avgPrice - K)) over the given GBM paths.
func AsianCallPrice(paths []models.SimulatedPath, strike, rate, years float64) float64 {
	if len(paths) == 0 {
		return 0
	}
	total := 0.0
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		sum := 0.0
		for _, pt := range path {
			sum += pt.Value
		}
		avg := sum / float64(len(path))
		total += math.Max(0, avg-strike)
	}
	return math.Exp(-rate*years) * total / float64(len(paths))
}
