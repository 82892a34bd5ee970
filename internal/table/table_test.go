package table_test

import (
	"testing"

	"github.com/KaramelBytes/statloom-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() table.Table {
	return table.FromRecords(
		[]string{"id", " score ", "label", "ratio"},
		[][]string{
			{"1", " 10.5 ", "a", "0.1"},
			{"2", "abc", "b", "0.2"},
			{"3", "", "c", "1e-1"},
			{"4", "12", "d"},
			{"5", "NaN", "e", "0.4", "extra"},
		},
	)
}

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		kind table.Kind
		num  float64
	}{
		{"  3.25 ", table.Number, 3.25},
		{"-1e3", table.Number, -1000},
		{"", table.Missing, 0},
		{"   ", table.Missing, 0},
		{"NaN", table.Text, 0},
		{"Inf", table.Text, 0},
		{"12abc", table.Text, 0},
		{"0x1p4", table.Text, 0},
		{"-0X10", table.Text, 0},
		{"0.5", table.Number, 0.5},
	}
	for _, c := range cases {
		got := table.ParseCell(c.in)
		assert.Equal(t, c.kind, got.Kind, "input %q", c.in)
		if c.kind == table.Number {
			assert.Equal(t, c.num, got.Num, "input %q", c.in)
		}
	}
}

func TestParseNumberRejectsHex(t *testing.T) {
	for _, in := range []string{"0x1p4", "+0x10", "0X1.8p1"} {
		_, ok := table.ParseNumber(in)
		assert.False(t, ok, "input %q", in)
	}
	v, ok := table.ParseNumber(" 016 ")
	require.True(t, ok)
	assert.Equal(t, 16.0, v)
}

func TestFromRecordsPadsAndTruncates(t *testing.T) {
	tb := sample()
	require.Equal(t, 5, tb.Len())
	assert.Equal(t, "score", tb.Header[1])
	for _, row := range tb.Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, table.Missing, tb.Cell(3, 3).Kind)
	assert.Equal(t, table.Missing, tb.Cell(99, 0).Kind)
}

func TestExtractNumeric(t *testing.T) {
	tb := sample()
	assert.Equal(t, []float64{10.5, 12}, table.ExtractNumeric(tb, 1))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, table.ExtractNumeric(tb, 0))

	out := table.ExtractNumeric(tb, 9)
	require.NotNil(t, out)
	assert.Empty(t, out)
	assert.Empty(t, table.ExtractNumeric(tb, -1))
	assert.Empty(t, table.ExtractNumeric(table.Table{}, 0))
}

func TestNumericColumns(t *testing.T) {
	tb := sample()
	assert.Equal(t, []int{0}, table.NumericColumns(tb))
	assert.Empty(t, table.NumericColumns(table.Table{Header: []string{"a"}}))

	c := table.ColumnCounts(tb, 1)
	assert.Equal(t, table.Counts{Numbers: 2, Text: 2, Missing: 1}, c)
}

func TestColumnIndex(t *testing.T) {
	tb := sample()
	assert.Equal(t, 1, tb.ColumnIndex("SCORE"))
	assert.Equal(t, 2, tb.ColumnIndex("2"))
	assert.Equal(t, -1, tb.ColumnIndex("missing"))
	assert.Equal(t, -1, tb.ColumnIndex("7"))
	assert.Equal(t, "col9", tb.Name(9))
}

func TestFromColumns(t *testing.T) {
	tb := table.FromColumns([]string{"A", "B"}, []float64{1, 2, 3}, []float64{4})
	require.Equal(t, 3, tb.Len())
	assert.Equal(t, []float64{1, 2, 3}, table.ExtractNumeric(tb, 0))
	assert.Equal(t, []float64{4}, table.ExtractNumeric(tb, 1))
	assert.Equal(t, []int{0}, table.NumericColumns(tb))
}
