package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the resolved state of a cell.
type Kind int

const (
	Missing Kind = iota
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "missing"
	}
}

// Cell is a single table value resolved at the ingestion boundary.
type Cell struct {
	Kind Kind
	Raw  string
	Num  float64
}

// Table is an ordered set of rows, each as wide as Header.
// Computations read from it and never mutate it.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// ParseNumber parses a trimmed decimal or scientific literal and reports
// whether it yielded a finite number.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" || isHex(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// ParseCell resolves a raw string into Missing, Number or Text.
func ParseCell(raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Cell{Kind: Missing, Raw: raw}
	}
	if f, ok := ParseNumber(raw); ok {
		return Cell{Kind: Number, Raw: raw, Num: f}
	}
	return Cell{Kind: Text, Raw: raw}
}

// NumberCell builds a numeric cell directly, e.g. for tables assembled in code.
func NumberCell(f float64) Cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Cell{Kind: Text, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return Cell{Kind: Number, Raw: strconv.FormatFloat(f, 'g', -1, 64), Num: f}
}

// FromRecords builds a Table from raw string records. Short rows are padded
// with missing cells and long rows are cut to the header width.
func FromRecords(header []string, records [][]string) Table {
	ncol := len(header)
	h := make([]string, ncol)
	for i := range header {
		h[i] = strings.TrimSpace(header[i])
	}
	rows := make([][]Cell, 0, len(records))
	for _, rec := range records {
		row := make([]Cell, ncol)
		for j := 0; j < ncol; j++ {
			if j < len(rec) {
				row[j] = ParseCell(rec[j])
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: h, Rows: rows}
}

// FromColumns builds a numeric Table from named float columns of equal or
// unequal length; missing trailing values become Missing cells.
func FromColumns(names []string, cols ...[]float64) Table {
	n := 0
	for _, c := range cols {
		if len(c) > n {
			n = len(c)
		}
	}
	header := append([]string(nil), names...)
	rows := make([][]Cell, n)
	for i := 0; i < n; i++ {
		row := make([]Cell, len(header))
		for j := range header {
			if j < len(cols) && i < len(cols[j]) {
				row[j] = NumberCell(cols[j][i])
			}
		}
		rows[i] = row
	}
	return Table{Header: header, Rows: rows}
}

// Width returns the number of columns.
func (t Table) Width() int { return len(t.Header) }

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Cell returns the cell at (row, col), or a Missing cell when out of range.
func (t Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Cell{Kind: Missing}
	}
	return t.Rows[row][col]
}

// ColumnIndex resolves a column by header name (case-insensitive) or by a
// 0-based integer string. It returns -1 when nothing matches.
func (t Table) ColumnIndex(ref string) int {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1
	}
	for i, h := range t.Header {
		if strings.EqualFold(h, ref) {
			return i
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(t.Header) {
		return i
	}
	return -1
}

// Name returns the header for col, or a positional placeholder.
func (t Table) Name(col int) string {
	if col >= 0 && col < len(t.Header) && t.Header[col] != "" {
		return t.Header[col]
	}
	return "col" + strconv.Itoa(col)
}
