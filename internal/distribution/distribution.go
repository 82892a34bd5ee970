// Package distribution evaluates probability curves for a small set of
// parametric distributions and fits a normal curve to observed data.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind names a supported distribution.
type Kind string

const (
	Normal   Kind = "normal"
	Poisson  Kind = "poisson"
	Binomial Kind = "binomial"
	Uniform  Kind = "uniform"
)

// Kinds lists the supported distributions in display order.
var Kinds = []Kind{Normal, Poisson, Binomial, Uniform}

// ErrInvalidParams is returned when parameters do not describe a valid distribution.
var ErrInvalidParams = errors.New("invalid distribution parameters")

// continuousPoints is the number of grid points for continuous curves.
const continuousPoints = 101

// MaxDiscretePoints bounds the grid of discrete curves. Binomial n and the
// Poisson upper bound λ+4√λ may not exceed it.
const MaxDiscretePoints = 100_000

// Params holds the parameters of every kind; each kind reads only its own fields.
type Params struct {
	Mean   float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	StdDev float64 `json:"stdDev,omitempty" yaml:"stdDev,omitempty"`
	Lambda float64 `json:"lambda,omitempty" yaml:"lambda,omitempty"`
	N      int     `json:"n,omitempty" yaml:"n,omitempty"`
	P      float64 `json:"p,omitempty" yaml:"p,omitempty"`
	Min    float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Point is one (x, density) sample of a curve.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ParseKind resolves a distribution name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown distribution %q (want normal, poisson, binomial or uniform)", s)
}

// DefaultParams returns the standard parameters for kind.
func DefaultParams(kind Kind) Params {
	switch kind {
	case Normal:
		return Params{Mean: 0, StdDev: 1}
	case Poisson:
		return Params{Lambda: 1}
	case Binomial:
		return Params{N: 10, P: 0.5}
	case Uniform:
		return Params{Min: 0, Max: 1}
	}
	return Params{}
}

// Label formats the parameters of kind for display, e.g. "normal(μ=0, σ=1)".
func (p Params) Label(kind Kind) string {
	switch kind {
	case Normal:
		return fmt.Sprintf("normal(μ=%g, σ=%g)", p.Mean, p.StdDev)
	case Poisson:
		return fmt.Sprintf("poisson(λ=%g)", p.Lambda)
	case Binomial:
		return fmt.Sprintf("binomial(n=%d, p=%g)", p.N, p.P)
	case Uniform:
		return fmt.Sprintf("uniform(%g, %g)", p.Min, p.Max)
	}
	return string(kind)
}

type density interface {
	Prob(x float64) float64
	Mean() float64
	Variance() float64
}

func build(kind Kind, p Params) (density, error) {
	switch kind {
	case Normal:
		if !finite(p.Mean) || !finite(p.StdDev) || p.StdDev <= 0 {
			return nil, fmt.Errorf("%w: normal needs a finite mean and stddev > 0", ErrInvalidParams)
		}
		return distuv.Normal{Mu: p.Mean, Sigma: p.StdDev}, nil
	case Poisson:
		if !finite(p.Lambda) || p.Lambda <= 0 {
			return nil, fmt.Errorf("%w: poisson needs lambda > 0", ErrInvalidParams)
		}
		if poissonUpper(p.Lambda) > MaxDiscretePoints {
			return nil, fmt.Errorf("%w: poisson lambda %g needs more than %d points", ErrInvalidParams, p.Lambda, MaxDiscretePoints)
		}
		return distuv.Poisson{Lambda: p.Lambda}, nil
	case Binomial:
		if p.N < 1 || !(p.P > 0 && p.P < 1) {
			return nil, fmt.Errorf("%w: binomial needs n >= 1 and 0 < p < 1", ErrInvalidParams)
		}
		if p.N > MaxDiscretePoints {
			return nil, fmt.Errorf("%w: binomial n must be at most %d", ErrInvalidParams, MaxDiscretePoints)
		}
		return distuv.Binomial{N: float64(p.N), P: p.P}, nil
	case Uniform:
		if !finite(p.Min) || !finite(p.Max) || p.Max <= p.Min {
			return nil, fmt.Errorf("%w: uniform needs min < max", ErrInvalidParams)
		}
		return distuv.Uniform{Min: p.Min, Max: p.Max}, nil
	}
	return nil, fmt.Errorf("%w: unknown distribution %q", ErrInvalidParams, kind)
}

// Curve samples the density (or mass) function of kind over its display grid.
func Curve(kind Kind, p Params) ([]Point, error) {
	d, err := build(kind, p)
	if err != nil {
		return nil, err
	}
	var xs []float64
	switch kind {
	case Normal:
		xs = grid(p.Mean-5*p.StdDev, p.Mean+5*p.StdDev, continuousPoints)
	case Uniform:
		xs = grid(p.Min, p.Max, continuousPoints)
	case Poisson:
		xs = integers(int(math.Max(10, poissonUpper(p.Lambda))))
	case Binomial:
		xs = integers(p.N)
	}
	out := make([]Point, len(xs))
	for i, x := range xs {
		out[i] = Point{X: x, Y: d.Prob(x)}
	}
	return out, nil
}

// Moments returns the theoretical mean and variance of kind.
func Moments(kind Kind, p Params) (mean, variance float64, err error) {
	d, err := build(kind, p)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return d.Mean(), d.Variance(), nil
}

// FitNormal estimates normal parameters from values using the mean and the
// population standard deviation.
func FitNormal(values []float64) (Params, error) {
	if len(values) == 0 {
		return Params{}, stats.ErrEmptyInput
	}
	m, v := stat.PopMeanVariance(values, nil)
	return Params{Mean: m, StdDev: math.Sqrt(math.Max(v, 0))}, nil
}

// grid returns n evenly spaced points from lo to hi inclusive.
func grid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func poissonUpper(lambda float64) float64 {
	return math.Ceil(lambda + 4*math.Sqrt(lambda))
}

func integers(hi int) []float64 {
	out := make([]float64, hi+1)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
