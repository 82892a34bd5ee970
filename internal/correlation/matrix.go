package correlation

import (
	"math"

	"github.com/KaramelBytes/statloom-cli/internal/table"
)

// PairFit is the regression of column Y on column X for one column pair.
type PairFit struct {
	X     int     `json:"x" yaml:"x"`
	Y     int     `json:"y" yaml:"y"`
	XName string  `json:"xName" yaml:"xName"`
	YName string  `json:"yName" yaml:"yName"`
	R     float64 `json:"r" yaml:"r"`
	Fit   Fit     `json:"fit" yaml:"fit"`
}

// Matrix is a symmetric Pearson correlation matrix across table columns.
type Matrix struct {
	Columns []int       `json:"columns" yaml:"columns"`
	Names   []string    `json:"names" yaml:"names"`
	Values  [][]float64 `json:"values" yaml:"values"` // row-major, Values[i][j]
	Fits    []PairFit   `json:"fits" yaml:"fits"`
}

// At returns the coefficient for table columns a and b, or NaN when either
// is not part of the matrix.
func (m *Matrix) At(a, b int) float64 {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return math.NaN()
	}
	return m.Values[ia][ib]
}

// Pairs returns the values of columns i and j from rows where both cells
// are numeric. Rows with a malformed cell in either column are skipped.
func Pairs(t table.Table, i, j int) ([]float64, []float64) {
	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for r := range t.Rows {
		a, b := t.Cell(r, i), t.Cell(r, j)
		if a.Kind != table.Number || b.Kind != table.Number {
			continue
		}
		xs = append(xs, a.Num)
		ys = append(ys, b.Num)
	}
	return xs, ys
}

// CorrelationMatrix correlates every pair of the given columns, filtering
// rows per pair. For each pair i<j it also records the fit of j on i, giving
// k*(k-1)/2 fits for k columns.
func CorrelationMatrix(t table.Table, cols []int) Matrix {
	k := len(cols)
	m := Matrix{
		Columns: append([]int(nil), cols...),
		Names:   make([]string, k),
		Values:  make([][]float64, k),
		Fits:    make([]PairFit, 0, k*(k-1)/2),
	}
	for a := range cols {
		m.Names[a] = t.Name(cols[a])
		m.Values[a] = make([]float64, k)
	}
	for a := 0; a < k; a++ {
		xs, ys := Pairs(t, cols[a], cols[a])
		if r := Correlate(xs, ys); math.IsNaN(r) {
			m.Values[a][a] = math.NaN()
		} else {
			m.Values[a][a] = 1
		}
		for b := a + 1; b < k; b++ {
			xs, ys := Pairs(t, cols[a], cols[b])
			r := Correlate(xs, ys)
			m.Values[a][b] = r
			m.Values[b][a] = r
			m.Fits = append(m.Fits, PairFit{
				X:     cols[a],
				Y:     cols[b],
				XName: m.Names[a],
				YName: m.Names[b],
				R:     r,
				Fit:   LinearRegression(xs, ys),
			})
		}
	}
	return m
}
