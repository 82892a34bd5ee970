package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput signals that no valid numeric values were available.
var ErrEmptyInput = errors.New("no numeric values")

// Summary holds descriptive statistics for one cleaned numeric sequence.
// Values are kept at full precision; use Rounded for display.
type Summary struct {
	Count        int     `json:"count" yaml:"count"`
	Sum          float64 `json:"sum" yaml:"sum"`
	Mean         float64 `json:"mean" yaml:"mean"`
	Median       float64 `json:"median" yaml:"median"`
	Mode         float64 `json:"mode" yaml:"mode"`
	Variance     float64 `json:"variance" yaml:"variance"`
	StdDev       float64 `json:"stdDev" yaml:"stdDev"`
	Range        float64 `json:"range" yaml:"range"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Skewness     float64 `json:"skewness" yaml:"skewness"`
	Kurtosis     float64 `json:"kurtosis" yaml:"kurtosis"`
	Q1           float64 `json:"q1" yaml:"q1"`
	Q3           float64 `json:"q3" yaml:"q3"`
	IQR          float64 `json:"iqr" yaml:"iqr"`
	RMS          float64 `json:"rms" yaml:"rms"`
	SumOfSquares float64 `json:"sumOfSquares" yaml:"sumOfSquares"`
}

// Describe computes the summary statistics of values. Variance uses the
// population divisor n. It returns ErrEmptyInput when values is empty.
func Describe(values []float64) (Summary, error) {
	n := len(values)
	if n == 0 {
		return Summary{}, ErrEmptyInput
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum, sumSq float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		sum += v
		sumSq += v * v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	mean := stat.Mean(values, nil)
	var variance, ss float64
	if lo != hi {
		variance = math.Max(stat.PopVariance(values, nil), 0)
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
	}

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	return Summary{
		Count:        n,
		Sum:          sum,
		Mean:         mean,
		Median:       Quantile(sorted, 0.5),
		Mode:         modeSorted(sorted),
		Variance:     variance,
		StdDev:       math.Sqrt(variance),
		Range:        hi - lo,
		Min:          lo,
		Max:          hi,
		Skewness:     SampleSkewness(values),
		Kurtosis:     SampleKurtosis(values),
		Q1:           q1,
		Q3:           q3,
		IQR:          q3 - q1,
		RMS:          math.Sqrt(sumSq / float64(n)),
		SumOfSquares: ss,
	}, nil
}

// Quantile returns the p-quantile of an ascending slice using linear
// interpolation between closest ranks (R-7).
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Quantiles sorts a copy of values once and evaluates every requested p.
func Quantiles(values []float64, ps ...float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = Quantile(sorted, p)
	}
	return out
}

// Mode returns the most frequent value; ties go to the smallest value.
func Mode(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return modeSorted(sorted)
}

func modeSorted(sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	best, bestRun := sorted[0], 1
	cur, run := sorted[0], 1
	for _, v := range sorted[1:] {
		if v == cur {
			run++
		} else {
			cur, run = v, 1
		}
		if run > bestRun {
			best, bestRun = cur, run
		}
	}
	return best
}

// SampleSkewness is the bias-corrected third standardized moment.
// NaN for fewer than 3 values or zero variance.
func SampleSkewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 || constant(values) {
		return math.NaN()
	}
	mean := stat.Mean(values, nil)
	var m2, m3 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	if m2 == 0 {
		return math.NaN()
	}
	sd := math.Sqrt(m2 / (n - 1))
	return n * m3 / ((n - 1) * (n - 2) * sd * sd * sd)
}

// SampleKurtosis is the bias-corrected excess kurtosis.
// NaN for fewer than 4 values or zero variance.
func SampleKurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 || constant(values) {
		return math.NaN()
	}
	mean := stat.Mean(values, nil)
	var m2, m4 float64
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	if m2 == 0 {
		return math.NaN()
	}
	return (n - 1) / ((n - 2) * (n - 3)) * (n*(n+1)*m4/(m2*m2) - 3*(n-1))
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
