package stats

import "math"

// DefaultDecimals is the display precision for summary values.
const DefaultDecimals = 2

// Round rounds x half away from zero to the given number of decimals.
// NaN and infinities pass through unchanged.
func Round(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// Rounded returns a display copy with every float rounded. Count is exact.
func (s Summary) Rounded(decimals int) Summary {
	r := func(x float64) float64 { return Round(x, decimals) }
	return Summary{
		Count:        s.Count,
		Sum:          r(s.Sum),
		Mean:         r(s.Mean),
		Median:       r(s.Median),
		Mode:         r(s.Mode),
		Variance:     r(s.Variance),
		StdDev:       r(s.StdDev),
		Range:        r(s.Range),
		Min:          r(s.Min),
		Max:          r(s.Max),
		Skewness:     r(s.Skewness),
		Kurtosis:     r(s.Kurtosis),
		Q1:           r(s.Q1),
		Q3:           r(s.Q3),
		IQR:          r(s.IQR),
		RMS:          r(s.RMS),
		SumOfSquares: r(s.SumOfSquares),
	}
}

var statNames = []string{
	"mean", "median", "mode", "variance", "stdDev", "range", "min", "max",
	"sum", "count", "skewness", "kurtosis", "q1", "q3", "iqr", "rms", "sumOfSquares",
}

// Names lists statistic names in display order.
func Names() []string {
	return append([]string(nil), statNames...)
}

// Map returns the statistic-name to value mapping.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"mean":         s.Mean,
		"median":       s.Median,
		"mode":         s.Mode,
		"variance":     s.Variance,
		"stdDev":       s.StdDev,
		"range":        s.Range,
		"min":          s.Min,
		"max":          s.Max,
		"sum":          s.Sum,
		"count":        float64(s.Count),
		"skewness":     s.Skewness,
		"kurtosis":     s.Kurtosis,
		"q1":           s.Q1,
		"q3":           s.Q3,
		"iqr":          s.IQR,
		"rms":          s.RMS,
		"sumOfSquares": s.SumOfSquares,
	}
}
