package table

// ExtractNumeric returns the numeric values of column col in row order.
// Non-numeric and missing cells are dropped. An out-of-range column or an
// empty table yields an empty slice.
func ExtractNumeric(t Table, col int) []float64 {
	out := make([]float64, 0, len(t.Rows))
	if col < 0 || col >= t.Width() {
		return out
	}
	for i := range t.Rows {
		if c := t.Cell(i, col); c.Kind == Number {
			out = append(out, c.Num)
		}
	}
	return out
}

// IsNumeric reports whether every cell of col is a number. Empty tables have
// no numeric columns.
func IsNumeric(t Table, col int) bool {
	if col < 0 || col >= t.Width() || t.Len() == 0 {
		return false
	}
	for i := range t.Rows {
		if t.Cell(i, col).Kind != Number {
			return false
		}
	}
	return true
}

// NumericColumns lists the indices of all numeric columns.
func NumericColumns(t Table) []int {
	var cols []int
	for j := 0; j < t.Width(); j++ {
		if IsNumeric(t, j) {
			cols = append(cols, j)
		}
	}
	return cols
}

// Counts tallies the kinds of cells in a column.
type Counts struct {
	Numbers int
	Text    int
	Missing int
}

// ColumnCounts returns the per-kind cell counts for col.
func ColumnCounts(t Table, col int) Counts {
	var c Counts
	for i := range t.Rows {
		switch t.Cell(i, col).Kind {
		case Number:
			c.Numbers++
		case Text:
			c.Text++
		default:
			c.Missing++
		}
	}
	return c
}
