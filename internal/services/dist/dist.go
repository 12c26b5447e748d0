// Package dist holds the distribution formulas the pricers and the risk
// engine share: normal CDF and quantile, Student-t density and kurtosis.
package dist

import (
	"fmt"
	"math"
)

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

// NormCDF is the Abramowitz-Stegun polynomial approximation of the standard
// normal CDF, accurate to about 1e-7. It satisfies NormCDF(0)=0.5 and
// NormCDF(-x) = 1 - NormCDF(x).
func NormCDF(x float64) float64 {
	if x == 0 {
		return 0.5
	}
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	const (
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
		p  = 0.2316419
	)
	t := 1 / (1 + p*x)
	poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
	return 1 - NormPDF(x)*poly
}

// Acklam rational approximation coefficients for the normal quantile.
var (
	invA = [6]float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02, 1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	invB = [5]float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02, 6.680131188771972e+01, -1.328068155288572e+01}
	invC = [6]float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00, -2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	invD = [4]float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00, 3.754408661907416e+00}
)

const invTail = 0.02425

// NormInvCDF is the Acklam rational approximation of the standard normal
// quantile. p outside (0,1) is a caller-contract violation and fails
// loudly.
func NormInvCDF(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("dist: quantile probability %v outside (0,1)", p)
	}
	switch {
	case p < invTail:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((invC[0]*q+invC[1])*q+invC[2])*q+invC[3])*q+invC[4])*q + invC[5]) /
			((((invD[0]*q+invD[1])*q+invD[2])*q+invD[3])*q + 1), nil
	case p > 1-invTail:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((invC[0]*q+invC[1])*q+invC[2])*q+invC[3])*q+invC[4])*q + invC[5]) /
			((((invD[0]*q+invD[1])*q+invD[2])*q+invD[3])*q + 1), nil
	default:
		q := p - 0.5
		r := q * q
		return (((((invA[0]*r+invA[1])*r+invA[2])*r+invA[3])*r+invA[4])*r + invA[5]) * q /
			(((((invB[0]*r+invB[1])*r+invB[2])*r+invB[3])*r+invB[4])*r + 1), nil
	}
}

// Lanczos g=7, n=9 coefficients.
var lanczos = [9]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

// Gamma is the Lanczos approximation of the gamma function, with the
// reflection formula for x < 0.5.
func Gamma(x float64) float64 {
	if x < 0.5 {
		// reflection: Γ(x)Γ(1-x) = π/sin(πx)
		return math.Pi / (math.Sin(math.Pi*x) * Gamma(1-x))
	}
	x--
	a := lanczos[0]
	t := x + 7.5
	for i := 1; i < 9; i++ {
		a += lanczos[i] / (x + float64(i))
	}
	return math.Sqrt(2*math.Pi) * math.Pow(t, x+0.5) * math.Exp(-t) * a
}

// StudentTPDF is the Student-t density with nu degrees of freedom. nu >= 1
// in practice, so the reflection branch of Gamma is not exercised here.
func StudentTPDF(x, nu float64) float64 {
	if nu <= 0 {
		return 0
	}
	coef := Gamma((nu+1)/2) / (math.Sqrt(nu*math.Pi) * Gamma(nu/2))
	return coef * math.Pow(1+x*x/nu, -(nu+1)/2)
}

// ExcessKurtosis returns the Student-t kurtosis 3 + 6/(nu-4) and ok=true for
// nu > 4. For nu <= 4 the statistic is undefined and ok is false; no
// numeric stand-in is returned.
func ExcessKurtosis(nu float64) (float64, bool) {
	if nu <= 4 {
		return 0, false
	}
	return 3 + 6/(nu-4), true
}
