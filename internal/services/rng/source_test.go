package rng

import (
	"math"
	"testing"
)

func TestNormFloat64Moments(t *testing.T) {
	src := New(42)
	const n = 100000
	sum, sum2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		z := src.NormFloat64()
		if math.IsNaN(z) || math.IsInf(z, 0) {
			t.Fatalf("non-finite draw %v at %d", z, i)
		}
		sum += z
		sum2 += z * z
	}
	mean := sum / n
	variance := sum2/n - mean*mean
	if math.Abs(mean) > 0.02 {
		t.Fatalf("sample mean %v outside ±0.02", mean)
	}
	if math.Abs(variance-1) > 0.05 {
		t.Fatalf("sample variance %v outside 1±0.05", variance)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		if a.NormFloat64() != b.NormFloat64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}
