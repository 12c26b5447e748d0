package dist

import (
	"math"
	"testing"
)

func TestNormCDFCenter(t *testing.T) {
	if got := NormCDF(0); got != 0.5 {
		t.Fatalf("NormCDF(0) = %v, want 0.5", got)
	}
}

func TestNormCDFSymmetry(t *testing.T) {
	for _, x := range []float64{-3, -1, 0, 1, 3} {
		sum := NormCDF(x) + NormCDF(-x)
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("NormCDF(%v)+NormCDF(%v) = %v, want 1", x, -x, sum)
		}
	}
}

func TestNormCDFKnownValues(t *testing.T) {
	// Φ(1.96) ≈ 0.9750, Φ(-1.645) ≈ 0.05
	if got := NormCDF(1.96); math.Abs(got-0.975) > 1e-4 {
		t.Fatalf("NormCDF(1.96) = %v", got)
	}
	if got := NormCDF(-1.6449); math.Abs(got-0.05) > 1e-4 {
		t.Fatalf("NormCDF(-1.6449) = %v", got)
	}
}

func TestNormInvCDFRoundTrip(t *testing.T) {
	for _, p := range []float64{0.001, 0.01, 0.05, 0.5, 0.95, 0.99, 0.999} {
		z, err := NormInvCDF(p)
		if err != nil {
			t.Fatalf("NormInvCDF(%v): %v", p, err)
		}
		if back := NormCDF(z); math.Abs(back-p) > 1e-4 {
			t.Fatalf("round trip p=%v -> z=%v -> %v", p, z, back)
		}
	}
}

func TestNormInvCDFDomain(t *testing.T) {
	for _, p := range []float64{0, 1, -0.5, 1.5} {
		if _, err := NormInvCDF(p); err == nil {
			t.Fatalf("expected error for p=%v", p)
		}
	}
}

func TestGammaKnownValues(t *testing.T) {
	cases := map[float64]float64{
		1:   1,
		2:   1,
		3:   2,
		4:   6,
		0.5: math.Sqrt(math.Pi),
	}
	for x, want := range cases {
		if got := Gamma(x); math.Abs(got-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("Gamma(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestStudentTPDFIntegratesToOne(t *testing.T) {
	// trapezoid over [-40, 40] captures essentially all Student-t mass for
	// nu >= 2
	for _, nu := range []float64{2, 4, 10} {
		const n = 80000
		lo, hi := -40.0, 40.0
		h := (hi - lo) / n
		sum := 0.5 * (StudentTPDF(lo, nu) + StudentTPDF(hi, nu))
		for i := 1; i < n; i++ {
			sum += StudentTPDF(lo+float64(i)*h, nu)
		}
		integral := sum * h
		if math.Abs(integral-1) > 1e-3 {
			t.Fatalf("nu=%v: integral %v", nu, integral)
		}
	}
}

func TestExcessKurtosis(t *testing.T) {
	if _, ok := ExcessKurtosis(4); ok {
		t.Fatalf("kurtosis defined for nu=4")
	}
	if _, ok := ExcessKurtosis(3); ok {
		t.Fatalf("kurtosis defined for nu=3")
	}
	got, ok := ExcessKurtosis(6)
	if !ok {
		t.Fatalf("kurtosis undefined for nu=6")
	}
	if math.Abs(got-6) > 1e-12 {
		t.Fatalf("kurtosis(6) = %v, want 6", got)
	}
}
