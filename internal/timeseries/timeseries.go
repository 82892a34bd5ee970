// Package timeseries implements smoothing, differencing, autocorrelation and
// trend helpers over an ordered numeric series. Entries that are undefined
// (for example the warm-up of a moving average) are math.NaN().
package timeseries

import (
	"math"

	"github.com/KaramelBytes/statloom-cli/internal/correlation"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultWindow is the moving-average window.
	DefaultWindow = 5
	// DefaultHorizon is the number of forecast points.
	DefaultHorizon = 12
	// DefaultMaxLag is the largest lag reported by ACF.
	DefaultMaxLag = 20
	// StationarityTolerance bounds the half-mean difference of a stationary series.
	StationarityTolerance = 0.01
)

// MovingAverage returns the trailing mean over window values. The first
// window-1 entries are NaN. A window below 1 falls back to DefaultWindow.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = DefaultWindow
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = mean(values[i-window+1 : i+1])
	}
	return out
}

// DefaultAlpha is the EMA smoothing factor 2/(n+1) derived from the series length.
func DefaultAlpha(n int) float64 {
	return 2 / (float64(n) + 1)
}

// EMA returns the exponential moving average seeded with values[0]. An alpha
// outside (0, 1] is replaced by DefaultAlpha(len(values)).
func EMA(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	if alpha <= 0 || alpha > 1 || math.IsNaN(alpha) {
		alpha = DefaultAlpha(len(values))
	}
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Differencing returns first differences; the result has len(values)-1 entries.
func Differencing(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// Autocorrelation at lag k: the mean lagged cross product of deviations,
// normalised by the population variance. NaN when k is out of range or the
// series is constant.
func Autocorrelation(values []float64, lag int) float64 {
	n := len(values)
	if lag < 0 || lag >= n {
		return math.NaN()
	}
	m, variance := stat.PopMeanVariance(values, nil)
	if variance <= 0 || constant(values) {
		return math.NaN()
	}
	var acov float64
	for i := 0; i < n-lag; i++ {
		acov += (values[i] - m) * (values[i+lag] - m)
	}
	return acov / float64(n-lag) / variance
}

// ACF returns autocorrelations for lags 1..maxLag, capped at len(values)-1.
// A maxLag below 1 falls back to DefaultMaxLag.
func ACF(values []float64, maxLag int) []float64 {
	if maxLag < 1 {
		maxLag = DefaultMaxLag
	}
	if maxLag > len(values)-1 {
		maxLag = len(values) - 1
	}
	if maxLag < 1 {
		return []float64{}
	}
	out := make([]float64, maxLag)
	for k := 1; k <= maxLag; k++ {
		out[k-1] = Autocorrelation(values, k)
	}
	return out
}

// Trend fits values against their index 0..n-1.
func Trend(values []float64) correlation.Fit {
	idx := make([]float64, len(values))
	for i := range idx {
		idx[i] = float64(i)
	}
	return correlation.LinearRegression(idx, values)
}

// TrendLine returns the fitted trend at every index. All entries are NaN
// when the fit is undefined.
func TrendLine(values []float64) []float64 {
	fit := Trend(values)
	out := make([]float64, len(values))
	for i := range out {
		out[i] = fit.Predict(float64(i))
	}
	return out
}

// NaiveForecast extends values by horizon points. Point i beyond the data is
// trend(i) + values[i mod n] - trend(i mod n): the linear trend plus the
// detrended value one full cycle earlier. This is a seasonal-naive heuristic,
// not an ARIMA model. A negative horizon falls back to DefaultHorizon and a
// zero horizon returns a copy of values.
func NaiveForecast(values []float64, horizon int) []float64 {
	n := len(values)
	if horizon < 0 {
		horizon = DefaultHorizon
	}
	out := make([]float64, n, n+horizon)
	copy(out, values)
	if n == 0 {
		return out
	}
	fit := Trend(values)
	for i := n; i < n+horizon; i++ {
		j := i % n
		out = append(out, fit.Predict(float64(i))+values[j]-fit.Predict(float64(j)))
	}
	return out
}

// Stationarity is the outcome of the split-half mean comparison.
type Stationarity struct {
	FirstMean  float64 `json:"firstMean" yaml:"firstMean"`
	SecondMean float64 `json:"secondMean" yaml:"secondMean"`
	Stationary bool    `json:"stationary" yaml:"stationary"`
}

// IsStationary splits the series at floor(n/2) and calls it stationary when
// the two half means differ by less than StationarityTolerance. This is a
// crude heuristic, not an augmented Dickey-Fuller test.
func IsStationary(values []float64) Stationarity {
	half := len(values) / 2
	m1 := mean(values[:half])
	m2 := mean(values[half:])
	return Stationarity{
		FirstMean:  m1,
		SecondMean: m2,
		Stationary: math.Abs(m1-m2) < StationarityTolerance,
	}
}

// Errors summarises the gap between a series and a smoothed version of it.
type Errors struct {
	MAE float64 `json:"mae" yaml:"mae"`
	MSE float64 `json:"mse" yaml:"mse"`
	N   int     `json:"n" yaml:"n"`
}

// FitError computes mean absolute and mean squared error over the indices
// where both actual and predicted are defined.
func FitError(actual, predicted []float64) Errors {
	var e Errors
	for i := 0; i < len(actual) && i < len(predicted); i++ {
		a, p := actual[i], predicted[i]
		if math.IsNaN(a) || math.IsNaN(p) {
			continue
		}
		d := a - p
		e.MAE += math.Abs(d)
		e.MSE += d * d
		e.N++
	}
	if e.N == 0 {
		return Errors{MAE: math.NaN(), MSE: math.NaN()}
	}
	e.MAE /= float64(e.N)
	e.MSE /= float64(e.N)
	return e
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
