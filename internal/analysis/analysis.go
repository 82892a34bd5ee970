// Package analysis resolves a Request against a table, runs the numeric
// engines and collects the results into a renderable Report.
package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/correlation"
	"github.com/KaramelBytes/statloom-cli/internal/distribution"
	"github.com/KaramelBytes/statloom-cli/internal/logging"
	"github.com/KaramelBytes/statloom-cli/internal/stats"
	"github.com/KaramelBytes/statloom-cli/internal/table"
	"github.com/KaramelBytes/statloom-cli/internal/timeseries"
)

// Report is the outcome of one analysis. One section is populated per kind,
// except fits which carry both Distribution and Describe.
type Report struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Kind      Kind      `json:"kind"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	CreatedAt time.Time `json:"createdAt"`

	Schema       []ColumnInfo         `json:"schema,omitempty"`
	Describe     *DescribeSection     `json:"describe,omitempty"`
	Pair         *PairSection         `json:"pair,omitempty"`
	Matrix       *correlation.Matrix  `json:"matrix,omitempty"`
	TimeSeries   *TimeSeriesSection   `json:"timeSeries,omitempty"`
	Distribution *DistributionSection `json:"distribution,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// ColumnInfo describes one column of the input table.
type ColumnInfo struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Type    string `json:"type"` // numeric|mixed|text|empty
	Numbers int    `json:"numbers"`
	Text    int    `json:"text"`
	Missing int    `json:"missing"`
}

// DescribeSection holds the descriptive statistics of one column.
type DescribeSection struct {
	Column   string        `json:"column"`
	Summary  stats.Summary `json:"summary"`
	Fences   stats.Fences  `json:"fences"`
	Outliers []float64     `json:"outliers"`
	Excluded int           `json:"excluded"`
}

// PairSection holds the correlation and regression of Y on X.
type PairSection struct {
	X        string          `json:"x"`
	Y        string          `json:"y"`
	Pearson  float64         `json:"pearson"`
	Spearman float64         `json:"spearman"`
	Fit      correlation.Fit `json:"fit"`
}

// TimeSeriesSection holds the transforms of one ordered column.
type TimeSeriesSection struct {
	Column        string                  `json:"column"`
	Date          string                  `json:"date,omitempty"`
	Labels        []string                `json:"labels,omitempty"`
	Window        int                     `json:"window"`
	Alpha         float64                 `json:"alpha"`
	Values        []float64               `json:"values"`
	MovingAverage []float64               `json:"movingAverage"`
	EMA           []float64               `json:"ema"`
	Differenced   []float64               `json:"differenced"`
	ACF           []float64               `json:"acf"`
	Trend         correlation.Fit         `json:"trend"`
	TrendLine     []float64               `json:"trendLine"`
	Forecast      []float64               `json:"forecast"`
	ForecastLabel []string                `json:"forecastLabels,omitempty"`
	Stationarity  timeseries.Stationarity `json:"stationarity"`
	Errors        timeseries.Errors       `json:"movingAverageErrors"`
}

// DistributionSection holds a probability curve, optionally fitted to a column.
type DistributionSection struct {
	Column   string               `json:"column,omitempty"`
	Kind     distribution.Kind    `json:"kind"`
	Label    string               `json:"label"`
	Params   distribution.Params  `json:"params"`
	Mean     float64              `json:"mean"`
	Variance float64              `json:"variance"`
	Curve    []distribution.Point `json:"curve"`
}

func newReport(name string, kind Kind, t table.Table) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Rows:      t.Len(),
		Columns:   t.Width(),
		CreatedAt: time.Now(),
	}
}

// Run validates req and runs it against t. name labels the report, typically
// the source file name.
func Run(t table.Table, name string, req Request, opt Options) (*Report, error) {
	if err := Validate(req, opt); err != nil {
		return nil, err
	}
	log := logging.OrNop(opt.Logger)
	log.Debug("analysis started",
		zap.String("kind", string(req.Kind)),
		zap.String("name", name),
		zap.Int("rows", t.Len()),
		zap.Int("columns", t.Width()),
	)
	rep := newReport(name, req.Kind, t)
	var err error
	switch req.Kind {
	case KindColumns:
		rep.Schema = Schema(t)
	case KindDescribe:
		err = runDescribe(rep, t, req)
	case KindCorrelate, KindRegress:
		err = runPair(rep, t, req)
	case KindMatrix:
		err = runMatrix(rep, t, req)
	case KindTimeSeries:
		err = runTimeSeries(rep, t, req, opt)
	case KindFit:
		err = runFit(rep, t, req)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range rep.Warnings {
		log.Info(w, zap.String("report", rep.ID))
	}
	return rep, nil
}

// RunDistribution builds a report for a parametric curve without a table.
func RunDistribution(kind distribution.Kind, p distribution.Params) (*Report, error) {
	sec, err := distributionSection(kind, p)
	if err != nil {
		return nil, err
	}
	rep := newReport("", KindFit, table.Table{})
	rep.Distribution = sec
	return rep, nil
}

// Schema classifies every column by the kinds of its cells. A column is
// numeric when every row holds a number and mixed when only some do.
func Schema(t table.Table) []ColumnInfo {
	out := make([]ColumnInfo, t.Width())
	for j := range out {
		c := table.ColumnCounts(t, j)
		typ := "empty"
		switch {
		case table.IsNumeric(t, j):
			typ = "numeric"
		case c.Numbers > 0:
			typ = "mixed"
		case c.Text > 0:
			typ = "text"
		}
		out[j] = ColumnInfo{
			Index:   j,
			Name:    t.Name(j),
			Type:    typ,
			Numbers: c.Numbers,
			Text:    c.Text,
			Missing: c.Missing,
		}
	}
	return out
}

func resolve(t table.Table, ref string) (int, error) {
	i := t.ColumnIndex(ref)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, ref)
	}
	return i, nil
}

func resolveAll(t table.Table, refs []string) ([]int, error) {
	cols := make([]int, 0, len(refs))
	for _, ref := range refs {
		i, err := resolve(t, ref)
		if err != nil {
			return nil, err
		}
		cols = append(cols, i)
	}
	return cols, nil
}

// column resolves ref and extracts its numeric values, warning about
// excluded cells.
func column(rep *Report, t table.Table, ref string) (int, []float64, error) {
	i, err := resolve(t, ref)
	if err != nil {
		return -1, nil, err
	}
	values := table.ExtractNumeric(t, i)
	if c := table.ColumnCounts(t, i); c.Text > 0 || c.Missing > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf(
			"%s: excluded %d non-numeric and %d empty cells", t.Name(i), c.Text, c.Missing))
	}
	return i, values, nil
}

func runDescribe(rep *Report, t table.Table, req Request) error {
	i, values, err := column(rep, t, req.Column)
	if err != nil {
		return err
	}
	sec, err := describeSection(t, i, values)
	if err != nil {
		return fmt.Errorf("describe %s: %w", t.Name(i), err)
	}
	rep.Describe = sec
	return nil
}

func describeSection(t table.Table, col int, values []float64) (*DescribeSection, error) {
	s, err := stats.Describe(values)
	if err != nil {
		return nil, err
	}
	return &DescribeSection{
		Column:   t.Name(col),
		Summary:  s,
		Fences:   stats.TukeyFences(s.Q1, s.Q3),
		Outliers: stats.Outliers(values, s.Q1, s.Q3),
		Excluded: t.Len() - len(values),
	}, nil
}

func runPair(rep *Report, t table.Table, req Request) error {
	xi, err := resolve(t, req.X)
	if err != nil {
		return err
	}
	yi, err := resolve(t, req.Y)
	if err != nil {
		return err
	}
	xs, ys := correlation.Pairs(t, xi, yi)
	if skipped := t.Len() - len(xs); skipped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf(
			"%s ~ %s: skipped %d rows without two numeric values", t.Name(xi), t.Name(yi), skipped))
	}
	fit := correlation.LinearRegression(xs, ys)
	if !fit.Defined() {
		rep.Warnings = append(rep.Warnings, "regression undefined: fewer than 2 valid pairs or constant x")
	}
	rep.Pair = &PairSection{
		X:        t.Name(xi),
		Y:        t.Name(yi),
		Pearson:  correlation.Correlate(xs, ys),
		Spearman: correlation.Spearman(xs, ys),
		Fit:      fit,
	}
	return nil
}

// matrixColumns picks the columns whose parsed cells are mostly numbers.
// Malformed cells are tolerated because the matrix filters rows per pair.
func matrixColumns(t table.Table) []int {
	var cols []int
	for j := 0; j < t.Width(); j++ {
		c := table.ColumnCounts(t, j)
		if c.Numbers > 0 && c.Numbers >= c.Text {
			cols = append(cols, j)
		}
	}
	return cols
}

func runMatrix(rep *Report, t table.Table, req Request) error {
	cols := matrixColumns(t)
	if len(req.Columns) > 0 {
		var err error
		if cols, err = resolveAll(t, req.Columns); err != nil {
			return err
		}
	}
	if len(cols) == 0 {
		return fmt.Errorf("correlation matrix: no numeric columns: %w", stats.ErrEmptyInput)
	}
	if len(cols) == 1 {
		rep.Warnings = append(rep.Warnings, "only one numeric column; no pairs to correlate")
	}
	m := correlation.CorrelationMatrix(t, cols)
	for a := range m.Columns {
		if math.IsNaN(m.Values[a][a]) {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s is constant or too short; its correlations are undefined", m.Names[a]))
		}
	}
	rep.Matrix = &m
	return nil
}

func runTimeSeries(rep *Report, t table.Table, req Request, opt Options) error {
	var (
		i      int
		values []float64
		labels []string
		err    error
	)
	if req.Date != "" {
		i, labels, values, err = datedColumn(rep, t, req.Date, req.Column)
	} else {
		i, values, err = column(rep, t, req.Column)
	}
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("time series %s: %w", t.Name(i), stats.ErrEmptyInput)
	}
	window := opt.Window
	if window < 1 {
		window = timeseries.DefaultWindow
	}
	if len(values) < window {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf(
			"series has %d values, fewer than the moving-average window %d", len(values), window))
	}
	alpha := opt.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = timeseries.DefaultAlpha(len(values))
	}
	ma := timeseries.MovingAverage(values, window)
	forecast := timeseries.NaiveForecast(values, opt.Horizon)
	rep.TimeSeries = &TimeSeriesSection{
		Column:        t.Name(i),
		Window:        window,
		Alpha:         alpha,
		Values:        values,
		MovingAverage: ma,
		EMA:           timeseries.EMA(values, alpha),
		Differenced:   timeseries.Differencing(values),
		ACF:           timeseries.ACF(values, opt.MaxLag),
		Trend:         timeseries.Trend(values),
		TrendLine:     timeseries.TrendLine(values),
		Forecast:      forecast[len(values):],
		Stationarity:  timeseries.IsStationary(values),
		Errors:        timeseries.FitError(values, ma),
	}
	if labels != nil {
		ts := rep.TimeSeries
		ts.Date = t.Name(t.ColumnIndex(req.Date))
		ts.Labels = labels
		for k := range ts.Forecast {
			ts.ForecastLabel = append(ts.ForecastLabel, fmt.Sprintf("Forecast %d", k+1))
		}
	}
	return nil
}

// datedColumn keeps the rows where the date cell is present and the value
// cell is numeric, returning the dates as labels in row order.
func datedColumn(rep *Report, t table.Table, dateRef, valueRef string) (int, []string, []float64, error) {
	d, err := resolve(t, dateRef)
	if err != nil {
		return -1, nil, nil, err
	}
	i, err := resolve(t, valueRef)
	if err != nil {
		return -1, nil, nil, err
	}
	labels := []string{}
	values := []float64{}
	for r := range t.Rows {
		date, v := t.Cell(r, d), t.Cell(r, i)
		if date.Kind == table.Missing || v.Kind != table.Number {
			continue
		}
		labels = append(labels, strings.TrimSpace(date.Raw))
		values = append(values, v.Num)
	}
	if dropped := t.Len() - len(values); dropped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf(
			"%s: dropped %d rows without a %s or a numeric value", t.Name(i), dropped, t.Name(d)))
	}
	return i, labels, values, nil
}

func runFit(rep *Report, t table.Table, req Request) error {
	i, values, err := column(rep, t, req.Column)
	if err != nil {
		return err
	}
	p, err := distribution.FitNormal(values)
	if err != nil {
		return fmt.Errorf("fit %s: %w", t.Name(i), err)
	}
	sec, err := distributionSection(distribution.Normal, p)
	if err != nil {
		return fmt.Errorf("fit %s: %w", t.Name(i), err)
	}
	sec.Column = t.Name(i)
	rep.Distribution = sec
	rep.Describe, err = describeSection(t, i, values)
	return err
}

func distributionSection(kind distribution.Kind, p distribution.Params) (*DistributionSection, error) {
	curve, err := distribution.Curve(kind, p)
	if err != nil {
		return nil, err
	}
	mean, variance, err := distribution.Moments(kind, p)
	if err != nil {
		return nil, err
	}
	return &DistributionSection{
		Kind:     kind,
		Label:    p.Label(kind),
		Params:   p,
		Mean:     mean,
		Variance: variance,
		Curve:    curve,
	}, nil
}
