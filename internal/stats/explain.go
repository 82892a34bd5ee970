package stats

import "strings"

// Info documents how a statistic is computed.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Formula     string `json:"formula" yaml:"formula"`
	Description string `json:"description" yaml:"description"`
}

var catalog = map[string]Info{
	"mean": {
		Formula:     "Mean = (Sum of all values) / (Number of values)",
		Description: "Average of all values; a measure of central tendency.",
	},
	"median": {
		Formula:     "Median = 50th percentile of the sorted values (linear interpolation)",
		Description: "Middle value of the sorted data; less sensitive to outliers than the mean.",
	},
	"mode": {
		Formula:     "Mode = Most frequent value (smallest wins a tie)",
		Description: "The value that appears most often in the data.",
	},
	"variance": {
		Formula:     "Variance = Σ((x - mean)²) / n",
		Description: "Population variance: spread of the values around the mean.",
	},
	"stdDev": {
		Formula:     "Standard Deviation = √Variance",
		Description: "Spread of the data in the same units as the values.",
	},
	"range": {
		Formula:     "Range = Max - Min",
		Description: "Distance between the largest and smallest values.",
	},
	"min": {
		Formula:     "Min = Smallest value",
		Description: "The smallest value in the data.",
	},
	"max": {
		Formula:     "Max = Largest value",
		Description: "The largest value in the data.",
	},
	"sum": {
		Formula:     "Sum = Σx",
		Description: "Total of all values.",
	},
	"count": {
		Formula:     "Count = Number of valid numeric values",
		Description: "How many values survived numeric parsing.",
	},
	"skewness": {
		Formula:     "Skewness = n·Σ((x - mean)³) / ((n-1)(n-2)·s³), s = sample std",
		Description: "Asymmetry of the distribution; needs at least 3 values.",
	},
	"kurtosis": {
		Formula:     "Kurtosis = (n-1)/((n-2)(n-3)) · (n(n+1)·Σd⁴/(Σd²)² - 3(n-1))",
		Description: "Excess tailedness relative to a normal distribution; needs at least 4 values.",
	},
	"q1": {
		Formula:     "Q1 = 25th percentile (linear interpolation)",
		Description: "First quartile: a quarter of the values lie below it.",
	},
	"q3": {
		Formula:     "Q3 = 75th percentile (linear interpolation)",
		Description: "Third quartile: three quarters of the values lie below it.",
	},
	"iqr": {
		Formula:     "IQR = Q3 - Q1",
		Description: "Spread of the middle half of the data.",
	},
	"rms": {
		Formula:     "RMS = √(Σ(x²) / n)",
		Description: "Root mean square: magnitude of the values regardless of sign.",
	},
	"sumOfSquares": {
		Formula:     "Sum of Squares = Σ((x - mean)²)",
		Description: "Total squared deviation from the mean.",
	},
}

// Explain looks up a statistic by name, ignoring case.
func Explain(name string) (Info, bool) {
	for _, n := range statNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			info := catalog[n]
			info.Name = n
			return info, true
		}
	}
	return Info{}, false
}

// Catalog returns every entry in display order.
func Catalog() []Info {
	out := make([]Info, 0, len(statNames))
	for _, n := range statNames {
		info, _ := Explain(n)
		out = append(out, info)
	}
	return out
}
