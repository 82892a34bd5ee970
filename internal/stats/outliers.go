package stats

// Fences are the Tukey bounds q1-1.5*iqr and q3+1.5*iqr.
type Fences struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// TukeyFences derives the outlier bounds from the quartiles.
func TukeyFences(q1, q3 float64) Fences {
	iqr := q3 - q1
	return Fences{Lower: q1 - 1.5*iqr, Upper: q3 + 1.5*iqr}
}

// Outliers returns values outside the Tukey fences, in input order.
func Outliers(values []float64, q1, q3 float64) []float64 {
	f := TukeyFences(q1, q3)
	out := make([]float64, 0)
	for _, v := range values {
		if v < f.Lower || v > f.Upper {
			out = append(out, v)
		}
	}
	return out
}
