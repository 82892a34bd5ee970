package correlation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is an ordinary least squares line y = Intercept + Slope*x.
type Fit struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	RSquared  float64 `json:"rSquared" yaml:"rSquared"`
	N         int     `json:"n" yaml:"n"`
}

// Defined reports whether the fit produced coefficients.
func (f Fit) Defined() bool {
	return !math.IsNaN(f.Slope) && !math.IsNaN(f.Intercept)
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

func (f Fit) String() string {
	if !f.Defined() {
		return "y = N/A"
	}
	return fmt.Sprintf("y = %.4gx + %.4g", f.Slope, f.Intercept)
}

func undefinedFit(n int) Fit {
	nan := math.NaN()
	return Fit{Slope: nan, Intercept: nan, RSquared: nan, N: n}
}

// LinearRegression fits y on x using the closed-form OLS sums over pairs
// where both values are finite. With fewer than 2 pairs or a constant x
// every coefficient is NaN.
func LinearRegression(x, y []float64) Fit {
	xs, ys := validPairs(x, y)
	n := len(xs)
	if n < 2 || constant(xs) {
		return undefinedFit(n)
	}
	var sx, sy, sxy, sxx float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxy += xs[i] * ys[i]
		sxx += xs[i] * xs[i]
	}
	fn := float64(n)
	denom := fn*sxx - sx*sx
	if denom == 0 {
		return undefinedFit(n)
	}
	slope := (fn*sxy - sx*sy) / denom
	intercept := (sy - slope*sx) / fn

	r2 := math.NaN()
	if !constant(ys) {
		r2 = stat.RSquared(xs, ys, nil, intercept, slope)
	}
	return Fit{Slope: slope, Intercept: intercept, RSquared: r2, N: n}
}

func validPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if finite(x[i]) && finite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
