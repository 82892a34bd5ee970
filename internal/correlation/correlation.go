package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Correlate returns the Pearson coefficient over the first min(len(x), len(y))
// elements. It is NaN for fewer than 2 points or when either side is constant.
func Correlate(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return math.NaN()
	}
	x, y = x[:n], y[:n]
	if constant(x) || constant(y) {
		return math.NaN()
	}
	mx := stat.Mean(x, nil)
	my := stat.Mean(y, nil)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	denom := math.Sqrt(sxx * syy)
	if denom == 0 {
		return math.NaN()
	}
	return clamp(sxy / denom)
}

// Spearman returns the rank correlation: Pearson applied to average ranks.
// Truncation and NaN rules match Correlate.
func Spearman(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return math.NaN()
	}
	rx, ry := ranks(x[:n]), ranks(y[:n])
	if constant(rx) || constant(ry) {
		return math.NaN()
	}
	return clamp(stat.Correlation(rx, ry, nil))
}

// ranks assigns 1-based ranks, giving tied values the mean of their positions.
func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })
	out := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && values[idx[j]] == values[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
