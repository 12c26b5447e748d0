package portfolio

import (
	"math"
	"testing"

	"QuantLab/internal/domain/models"
)

func TestMertonFractionKnownValue(t *testing.T) {
	// (0.08 - 0.03) / (3 * 0.2^2) = 0.05 / 0.12
	res := New().MertonFraction(models.MertonParams{Mu: 0.08, Rate: 0.03, Vol: 0.2, RiskAver: 3})
	want := 0.05 / 0.12
	if math.Abs(res.Theoretical-want) > 1e-12 {
		t.Fatalf("theoretical = %v, want %v", res.Theoretical, want)
	}
	if res.Display != res.Theoretical {
		t.Fatalf("in-range fraction should not be clamped: %v vs %v", res.Display, res.Theoretical)
	}
	if math.Abs(res.Weights["risky"]+res.Weights["riskless"]-1) > 1e-12 {
		t.Fatalf("weights do not sum to 1: %+v", res.Weights)
	}
}

func TestMertonFractionClampsDisplayOnly(t *testing.T) {
	res := New().MertonFraction(models.MertonParams{Mu: 0.5, Rate: 0.0, Vol: 0.1, RiskAver: 1})
	if math.Abs(res.Theoretical-50) > 1e-9 {
		t.Fatalf("theoretical = %v, want 50", res.Theoretical)
	}
	if res.Display != 2 {
		t.Fatalf("display = %v, want cap 2", res.Display)
	}

	res = New().MertonFraction(models.MertonParams{Mu: -0.5, Rate: 0.0, Vol: 0.1, RiskAver: 1})
	if res.Display != -1 {
		t.Fatalf("display = %v, want floor -1", res.Display)
	}
}

func TestMertonFractionDegenerateInputs(t *testing.T) {
	for _, p := range []models.MertonParams{
		{Mu: 0.1, Rate: 0.02, Vol: 0, RiskAver: 2},
		{Mu: 0.1, Rate: 0.02, Vol: 0.2, RiskAver: 0},
	} {
		res := New().MertonFraction(p)
		if res.Theoretical != 0 || res.Display != 0 {
			t.Fatalf("degenerate params %+v produced %v", p, res.Theoretical)
		}
	}
}

func TestAggregateSingleAsset(t *testing.T) {
	s := New().Aggregate([]float64{1}, []float64{0.07}, []float64{0.25}, 0.3)
	if math.Abs(s.Mean-0.07) > 1e-12 {
		t.Fatalf("mean = %v", s.Mean)
	}
	if math.Abs(s.Vol-0.25) > 1e-12 {
		t.Fatalf("vol = %v", s.Vol)
	}
}

func TestAggregateTwoAssetKnownValue(t *testing.T) {
	// var = 0.25*0.04 + 0.25*0.09 + 2*0.25*0.5*0.2*0.3
	w := []float64{0.5, 0.5}
	s := New().Aggregate(w, []float64{0.06, 0.1}, []float64{0.2, 0.3}, 0.5)
	wantVar := 0.25*0.04 + 0.25*0.09 + 2*0.25*0.5*0.2*0.3
	if math.Abs(s.Variance-wantVar) > 1e-12 {
		t.Fatalf("variance = %v, want %v", s.Variance, wantVar)
	}
	if math.Abs(s.Mean-0.08) > 1e-12 {
		t.Fatalf("mean = %v", s.Mean)
	}
	if s.AssumedR != 0.5 {
		t.Fatalf("assumed correlation = %v", s.AssumedR)
	}
}

func TestAggregateDiversificationLowersVol(t *testing.T) {
	w := []float64{0.5, 0.5}
	means := []float64{0.05, 0.05}
	vols := []float64{0.2, 0.2}
	low := New().Aggregate(w, means, vols, 0.0)
	high := New().Aggregate(w, means, vols, 1.0)
	if low.Vol >= high.Vol {
		t.Fatalf("rho=0 vol %v should undercut rho=1 vol %v", low.Vol, high.Vol)
	}
	if math.Abs(high.Vol-0.2) > 1e-12 {
		t.Fatalf("perfectly correlated equal assets should keep vol 0.2, got %v", high.Vol)
	}
}

func TestAggregateMismatchedLengths(t *testing.T) {
	s := New().Aggregate([]float64{0.5, 0.5}, []float64{0.05}, []float64{0.2, 0.2}, 0.3)
	if s.Mean != 0 || s.Vol != 0 {
		t.Fatalf("mismatched inputs should zero out: %+v", s)
	}
}
