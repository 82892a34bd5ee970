package analysis

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	pretty "github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
	"github.com/KaramelBytes/statloom-cli/internal/utils"
)

// Output formats accepted by Render.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ErrUnknownFormat is returned by Render for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Render encodes the report in the given format with values rounded to decimals.
func (r *Report) Render(format string, decimals int) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatMarkdown, "md":
		return []byte(r.Markdown(decimals)), nil
	case FormatJSON:
		return r.JSON(decimals)
	case FormatYAML, "yml":
		return r.YAML(decimals)
	}
	return nil, fmt.Errorf("%w: %q (want markdown, json or yaml)", ErrUnknownFormat, format)
}

// JSON encodes the report as indented JSON. NaN values become null.
func (r *Report) JSON(decimals int) ([]byte, error) {
	return utils.PrettyJSON(plain(reflect.ValueOf(r), decimals))
}

// YAML encodes the report as YAML. NaN values become null.
func (r *Report) YAML(decimals int) ([]byte, error) {
	b, err := yaml.Marshal(plain(reflect.ValueOf(r), decimals))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

var timeType = reflect.TypeOf(time.Time{})

// plain converts v into maps, slices and scalars keyed by json tag names,
// rounding floats and mapping non-finite floats to nil.
func plain(v reflect.Value, decimals int) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return plain(v.Elem(), decimals)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return stats.Round(f, decimals)
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = plain(v.Index(i), decimals)
		}
		return out
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = plain(iter.Value(), decimals)
		}
		return out
	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface()
		}
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			fv := v.Field(i)
			if strings.Contains(opts, "omitempty") && fv.IsZero() {
				continue
			}
			out[name] = plain(fv, decimals)
		}
		return out
	case reflect.String:
		return v.String()
	}
	return v.Interface()
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown(decimals int) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Columns > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
		b.WriteString(fmt.Sprintf("Columns: %d\n", r.Columns))
	}
	b.WriteString(fmt.Sprintf("Report: %s\n", r.ID))

	if len(r.Schema) > 0 {
		b.WriteString("\n[SCHEMA]\n")
		var rows []pretty.Row
		for _, c := range r.Schema {
			rows = append(rows, pretty.Row{c.Index, safeName(c.Name), c.Type, c.Numbers, c.Text, c.Missing})
		}
		b.WriteString(markdownTable(pretty.Row{"#", "Column", "Type", "Numbers", "Text", "Missing"}, rows))
		b.WriteString("\n")
	}

	if d := r.Describe; d != nil {
		b.WriteString("\n[DESCRIPTIVE STATISTICS]\n")
		b.WriteString(fmt.Sprintf("Column: %s (%d values, %d excluded)\n", d.Column, d.Summary.Count, d.Excluded))
		m := d.Summary.Map()
		var rows []pretty.Row
		for _, name := range stats.Names() {
			rows = append(rows, pretty.Row{name, num(m[name], decimals)})
		}
		b.WriteString(markdownTable(pretty.Row{"Statistic", "Value"}, rows))

		b.WriteString("\n\n[OUTLIERS]\n")
		b.WriteString(fmt.Sprintf("Tukey fences: %s .. %s\n", num(d.Fences.Lower, decimals), num(d.Fences.Upper, decimals)))
		if len(d.Outliers) == 0 {
			b.WriteString("Outliers: none\n")
		} else {
			b.WriteString(fmt.Sprintf("Outliers (%d): %s\n", len(d.Outliers), joinNums(d.Outliers, decimals)))
		}
	}

	if p := r.Pair; p != nil {
		b.WriteString("\n[CORRELATION]\n")
		b.WriteString(fmt.Sprintf("%s ~ %s\n", p.X, p.Y))
		b.WriteString(markdownTable(pretty.Row{"Measure", "Value"}, []pretty.Row{
			{"pearson r", num(p.Pearson, decimals)},
			{"spearman rho", num(p.Spearman, decimals)},
			{"slope", num(p.Fit.Slope, decimals)},
			{"intercept", num(p.Fit.Intercept, decimals)},
			{"r squared", num(p.Fit.RSquared, decimals)},
			{"pairs", p.Fit.N},
		}))
		b.WriteString("\n\n[REGRESSION]\n")
		b.WriteString(equation(p.Y, p.X, p.Fit.Slope, p.Fit.Intercept, decimals) + "\n")
	}

	if m := r.Matrix; m != nil {
		b.WriteString("\n[CORRELATION MATRIX]\n")
		header := pretty.Row{""}
		for _, n := range m.Names {
			header = append(header, n)
		}
		var rows []pretty.Row
		for i, n := range m.Names {
			row := pretty.Row{n}
			for _, v := range m.Values[i] {
				row = append(row, num(v, decimals))
			}
			rows = append(rows, row)
		}
		b.WriteString(markdownTable(header, rows))
		if len(m.Fits) > 0 {
			b.WriteString("\n\n[PAIRWISE REGRESSIONS]\n")
			rows = nil
			for _, f := range m.Fits {
				rows = append(rows, pretty.Row{
					f.XName, f.YName, num(f.R, decimals),
					num(f.Fit.Slope, decimals), num(f.Fit.Intercept, decimals),
					num(f.Fit.RSquared, decimals), f.Fit.N,
				})
			}
			b.WriteString(markdownTable(pretty.Row{"X", "Y", "r", "Slope", "Intercept", "R²", "Pairs"}, rows))
		}
		b.WriteString("\n")
	}

	if ts := r.TimeSeries; ts != nil {
		writeTimeSeries(&b, ts, decimals)
	}

	if d := r.Distribution; d != nil {
		b.WriteString("\n[DISTRIBUTION]\n")
		if d.Column != "" {
			b.WriteString(fmt.Sprintf("Fitted to column: %s\n", d.Column))
		}
		b.WriteString(fmt.Sprintf("%s: mean %s, variance %s\n", d.Label, num(d.Mean, decimals), num(d.Variance, decimals)))
		var rows []pretty.Row
		for _, p := range d.Curve {
			rows = append(rows, pretty.Row{num(p.X, decimals), num(p.Y, decimals+2)})
		}
		b.WriteString(markdownTable(pretty.Row{"x", "density"}, rows))
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeTimeSeries(b *strings.Builder, ts *TimeSeriesSection, decimals int) {
	b.WriteString("\n[TIME SERIES]\n")
	b.WriteString(fmt.Sprintf("Column: %s (window %d, alpha %s)\n", ts.Column, ts.Window, num(ts.Alpha, decimals)))
	if ts.Date != "" {
		b.WriteString(fmt.Sprintf("Dates: %s\n", ts.Date))
	}
	key := "#"
	if ts.Labels != nil {
		key = "Date"
	}
	var rows []pretty.Row
	for i, v := range ts.Values {
		diff := math.NaN()
		if i > 0 {
			diff = ts.Differenced[i-1]
		}
		var label any = i
		if i < len(ts.Labels) {
			label = ts.Labels[i]
		}
		rows = append(rows, pretty.Row{
			label, num(v, decimals), num(ts.MovingAverage[i], decimals),
			num(ts.EMA[i], decimals), num(ts.TrendLine[i], decimals), num(diff, decimals),
		})
	}
	b.WriteString(markdownTable(pretty.Row{key, "Value", "Moving avg", "EMA", "Trend", "Diff"}, rows))

	b.WriteString("\n\n[TREND]\n")
	b.WriteString(equation(ts.Column, "t", ts.Trend.Slope, ts.Trend.Intercept, decimals) + "\n")
	b.WriteString(fmt.Sprintf("R²: %s\n", num(ts.Trend.RSquared, decimals)))

	if len(ts.Forecast) > 0 {
		b.WriteString("\n[FORECAST]\n")
		rows = nil
		for i, v := range ts.Forecast {
			var label any = len(ts.Values) + i
			if i < len(ts.ForecastLabel) {
				label = ts.ForecastLabel[i]
			}
			rows = append(rows, pretty.Row{label, num(v, decimals)})
		}
		b.WriteString(markdownTable(pretty.Row{key, "Forecast"}, rows))
		b.WriteString("\n")
	}

	if len(ts.ACF) > 0 {
		b.WriteString("\n[AUTOCORRELATION]\n")
		rows = nil
		for i, v := range ts.ACF {
			rows = append(rows, pretty.Row{i + 1, num(v, decimals)})
		}
		b.WriteString(markdownTable(pretty.Row{"Lag", "r"}, rows))
		b.WriteString("\n")
	}

	b.WriteString("\n[STATIONARITY]\n")
	verdict := "non-stationary"
	if ts.Stationarity.Stationary {
		verdict = "stationary"
	}
	b.WriteString(fmt.Sprintf("First half mean %s, second half mean %s: %s (split-half heuristic)\n",
		num(ts.Stationarity.FirstMean, decimals), num(ts.Stationarity.SecondMean, decimals), verdict))

	b.WriteString("\n[SMOOTHING ERROR]\n")
	b.WriteString(fmt.Sprintf("Moving average over %d points: MAE %s, MSE %s\n",
		ts.Errors.N, num(ts.Errors.MAE, decimals), num(ts.Errors.MSE, decimals)))
}

func markdownTable(header pretty.Row, rows []pretty.Row) string {
	tw := pretty.NewWriter()
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	return tw.RenderMarkdown()
}

func equation(y, x string, slope, intercept float64, decimals int) string {
	if math.IsNaN(slope) || math.IsNaN(intercept) {
		return fmt.Sprintf("%s = N/A", y)
	}
	sign, c := "+", intercept
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s = %s·%s %s %s", y, num(slope, decimals), x, sign, num(c, decimals))
}

// num formats x rounded to decimals; NaN shows as N/A.
func num(x float64, decimals int) string {
	if math.IsNaN(x) {
		return "N/A"
	}
	if math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	r := stats.Round(x, decimals)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func joinNums(values []float64, decimals int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = num(v, decimals)
	}
	return strings.Join(parts, ", ")
}
