package simulate

import (
	"math"
	"testing"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/rng"
)

func TestGBMStartsAtSpotAndStaysPositive(t *testing.T) {
	e := New()
	p := models.GBMParams{Spot: 100, Drift: 0.05, Vol: 0.4, Years: 2, Steps: 500}
	path := e.GBM(p, rng.New(1))
	if len(path) != p.Steps+1 {
		t.Fatalf("len = %d, want %d", len(path), p.Steps+1)
	}
	if path[0].Time != 0 || path[0].Value != p.Spot {
		t.Fatalf("path must start at (0, spot): %+v", path[0])
	}
	for i, pt := range path {
		if math.IsNaN(pt.Value) || pt.Value < 0 {
			t.Fatalf("bad value %v at step %d", pt.Value, i)
		}
	}
}

func TestGBMZeroVolIsDeterministicDrift(t *testing.T) {
	e := New()
	p := models.GBMParams{Spot: 100, Drift: 0.05, Vol: 0, Years: 1, Steps: 100}
	path := e.GBM(p, rng.New(1))
	want := 100 * math.Exp(0.05)
	if got := path.Final(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("final = %v, want %v", got, want)
	}
}

func TestCIRNeverNegative(t *testing.T) {
	e := New()
	p := models.CIRParams{Rate0: 0.03, Speed: 0.3, Mean: 0.03, Vol: 0.05, Years: 40, Steps: 10000}
	if !p.FellerSatisfied() {
		t.Fatalf("test parameters should satisfy Feller")
	}
	path := e.CIR(p, rng.New(99))
	for i, pt := range path {
		if pt.Value < 0 {
			t.Fatalf("negative rate %v at step %d", pt.Value, i)
		}
		if math.IsNaN(pt.Value) {
			t.Fatalf("NaN at step %d", i)
		}
	}
}

func TestCIRClampsEvenWithoutFeller(t *testing.T) {
	e := New()
	p := models.CIRParams{Rate0: 0.01, Speed: 0.05, Mean: 0.01, Vol: 0.5, Years: 5, Steps: 5000}
	if p.FellerSatisfied() {
		t.Fatalf("test parameters should violate Feller")
	}
	path := e.CIR(p, rng.New(7))
	for i, pt := range path {
		if pt.Value < 0 {
			t.Fatalf("negative rate %v at step %d", pt.Value, i)
		}
	}
}

func TestFellerCondition(t *testing.T) {
	p := models.CIRParams{Speed: 0.3, Mean: 0.03, Vol: 0.05}
	if !p.FellerSatisfied() { // 0.018 >= 0.0025
		t.Fatalf("expected Feller to hold")
	}
	p.Vol = 0.5
	if p.FellerSatisfied() { // 0.018 < 0.25
		t.Fatalf("expected Feller to fail")
	}
}

func TestJumpPathsNonNegativeAndFinite(t *testing.T) {
	e := New()
	p := models.JumpParams{Spot: 100, Rate: 0.05, Vol: 0.2, Years: 1, Steps: 252,
		Intensity: 5, JumpMean: -0.1, JumpVol: 0.15}
	path := e.Jump(p, rng.New(3))
	for i, pt := range path {
		if pt.Value < 0 || math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
			t.Fatalf("bad value %v at step %d", pt.Value, i)
		}
	}
}

func TestJumpZeroIntensityMatchesGBM(t *testing.T) {
	e := New()
	jp := models.JumpParams{Spot: 100, Rate: 0.05, Vol: 0.2, Years: 1, Steps: 100}
	gp := models.GBMParams{Spot: 100, Drift: 0.05, Vol: 0.2, Years: 1, Steps: 100}
	// same seed: with lambda=0 the jump draw consumes one extra uniform per
	// step, so compare against a fresh source replaying the same normals is
	// not possible; instead check the compensator-free drift statistically.
	const paths = 2000
	sumJ, sumG := 0.0, 0.0
	for i := 0; i < paths; i++ {
		sumJ += e.Jump(jp, rng.New(int64(i))).Final()
		sumG += e.GBM(gp, rng.New(int64(i))).Final()
	}
	meanJ, meanG := sumJ/paths, sumG/paths
	if math.Abs(meanJ-meanG)/meanG > 0.03 {
		t.Fatalf("zero-intensity jump mean %v deviates from GBM mean %v", meanJ, meanG)
	}
}

func TestPathsDeterministicForSeed(t *testing.T) {
	e := New()
	gen := func(src *rng.Source) models.SimulatedPath {
		return e.GBM(models.GBMParams{Spot: 100, Drift: 0.03, Vol: 0.25, Years: 1, Steps: 50}, src)
	}
	a := Paths(200, 11, gen)
	b := Paths(200, 11, gen)
	for i := range a {
		if a[i].Final() != b[i].Final() {
			t.Fatalf("path %d differs across runs with same seed", i)
		}
	}
}

func TestAsianCallPriceAgainstDeterministicPath(t *testing.T) {
	// one flat path at 110 with strike 100: discounted payoff is e^{-rT}*10
	path := models.SimulatedPath{{Time: 0, Value: 110}, {Time: 0.5, Value: 110}, {Time: 1, Value: 110}}
	got := AsianCallPrice([]models.SimulatedPath{path}, 100, 0.05, 1)
	want := math.Exp(-0.05) * 10
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAsianCallPriceOutOfTheMoney(t *testing.T) {
	path := models.SimulatedPath{{Time: 0, Value: 80}, {Time: 1, Value: 90}}
	if got := AsianCallPrice([]models.SimulatedPath{path}, 100, 0.05, 1); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}
