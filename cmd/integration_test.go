package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const salesCSV = "month,sales,ads,region\n" +
	"1,10,1,north\n" +
	"2,12,2,south\n" +
	"3,15,3,north\n" +
	"4,18,4,east\n" +
	"5,20,5,west\n" +
	"6,x,6,north\n"

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args and return stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags(rootCmd)
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points HOME at a temp dir and writes the sample table into it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCLI_Columns(t *testing.T) {
	path := isolate(t)
	out := runCmd(t, "columns", path)
	for _, want := range []string{"[SCHEMA]", "| 0 | month | numeric |", "| 1 | sales | mixed |", "| 3 | region | text |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCLI_DescribeMarkdownAndJSON(t *testing.T) {
	path := isolate(t)
	out := runCmd(t, "describe", path, "-c", "sales")
	if !strings.Contains(out, "[DESCRIPTIVE STATISTICS]") || !strings.Contains(out, "| mean | 15 |") {
		t.Fatalf("unexpected describe output:\n%s", out)
	}
	if !strings.Contains(out, "excluded 1 non-numeric") {
		t.Fatalf("expected a note about the malformed cell:\n%s", out)
	}

	out = runCmd(t, "describe", path, "-c", "1", "--format", "json", "--decimals", "1")
	var doc struct {
		Describe struct {
			Summary map[string]any `json:"summary"`
		} `json:"describe"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if doc.Describe.Summary["mean"] != 15.0 || doc.Describe.Summary["stdDev"] != 3.7 {
		t.Fatalf("unexpected summary: %v", doc.Describe.Summary)
	}
}

func TestCLI_DescribeErrors(t *testing.T) {
	path := isolate(t)
	if _, err := execCmd("describe", path, "-c", "profit"); err == nil || !strings.Contains(err.Error(), "unknown column") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
	if _, err := execCmd("describe", path, "-c", "region"); err == nil || !strings.Contains(err.Error(), "no numeric values") {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := execCmd("describe", filepath.Join(filepath.Dir(path), "book.xlsx"), "-c", "a"); err == nil {
		t.Fatal("expected error for missing xlsx")
	}
}

func TestCLI_CorrelateAndRegress(t *testing.T) {
	path := isolate(t)
	out := runCmd(t, "correlate", path, "--decimals", "3")
	if !strings.Contains(out, "[CORRELATION MATRIX]") || !strings.Contains(out, "[PAIRWISE REGRESSIONS]") {
		t.Fatalf("unexpected matrix output:\n%s", out)
	}
	if !strings.Contains(out, "| month | 1 | 0.997 | 1 |") {
		t.Fatalf("unexpected matrix row:\n%s", out)
	}

	out = runCmd(t, "correlate", path, "--x", "month", "--y", "ads")
	if !strings.Contains(out, "| pearson r | 1 |") {
		t.Fatalf("unexpected pair output:\n%s", out)
	}
	if _, err := execCmd("correlate", path, "--x", "month"); err == nil {
		t.Fatal("expected error when --y is missing")
	}

	report := filepath.Join(filepath.Dir(path), "out", "fit.md")
	out = runCmd(t, "regress", path, "--x", "month", "--y", "ads", "-o", report)
	if !strings.Contains(out, "✓ Wrote regress report") {
		t.Fatalf("unexpected output: %s", out)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "ads = 1·month + 0") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestCLI_TimeSeries(t *testing.T) {
	path := isolate(t)
	out := runCmd(t, "timeseries", path, "-c", "month", "--window", "2", "--horizon", "3", "--lags", "2")
	for _, want := range []string{"[TIME SERIES]", "window 2", "[FORECAST]", "| 8 | 9 |", "[AUTOCORRELATION]", "[STATIONARITY]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if _, err := execCmd("timeseries", path, "-c", "month", "--alpha", "2"); err == nil || !strings.Contains(err.Error(), "alpha") {
		t.Fatalf("expected alpha validation error, got %v", err)
	}
}

func TestCLI_TimeSeriesWithDates(t *testing.T) {
	path := filepath.Join(filepath.Dir(isolate(t)), "visits.csv")
	data := "day,visits\n2024-01-01,10\n,11\n2024-01-03,12\n2024-01-05,14\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := runCmd(t, "timeseries", path, "-c", "visits", "--date", "day", "--horizon", "2")
	for _, want := range []string{"Dates: day", "| 2024-01-05 | 14 |", "| Forecast 1 | 16 |", "dropped 1 rows"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCLI_Distribution(t *testing.T) {
	path := isolate(t)
	out := runCmd(t, "distribution", "binomial", "--n", "4", "--p", "0.5")
	if !strings.Contains(out, "binomial(n=4, p=0.5): mean 2, variance 1") || !strings.Contains(out, "| 2 | 0.375 |") {
		t.Fatalf("unexpected distribution output:\n%s", out)
	}
	out = runCmd(t, "distribution", "normal", "--fit", path, "-c", "month", "-f", "yaml")
	if !strings.Contains(out, "column: month") || !strings.Contains(out, "kind: normal") {
		t.Fatalf("unexpected fit output:\n%s", out)
	}
	if _, err := execCmd("distribution", "poisson", "--lambda", "0"); err == nil {
		t.Fatal("expected invalid params error")
	}
	if _, err := execCmd("distribution", "gamma"); err == nil {
		t.Fatal("expected unknown distribution error")
	}
}

func TestCLI_Explain(t *testing.T) {
	isolate(t)
	out := runCmd(t, "explain", "Variance")
	if !strings.Contains(out, "Σ((x - mean)²) / n") {
		t.Fatalf("unexpected explain output:\n%s", out)
	}
	out = runCmd(t, "explain")
	if !strings.Contains(out, "| sumOfSquares |") {
		t.Fatalf("expected catalog table:\n%s", out)
	}
	if _, err := execCmd("explain", "entropy"); err == nil {
		t.Fatal("expected unknown statistic error")
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	runCmd(t, "config", "set", "decimals", "3")
	runCmd(t, "config", "set", "output_format", "yml")
	if _, err := os.Stat(filepath.Join(home, ".statloom", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "decimals: 3") || !strings.Contains(out, "output_format: yaml") {
		t.Fatalf("unexpected config:\n%s", out)
	}
	if _, err := execCmd("config", "set", "ema_alpha", "1.5"); err == nil {
		t.Fatal("expected invalid ema_alpha error")
	}
	if _, err := execCmd("config", "set", "colour", "blue"); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestCLI_Stdin(t *testing.T) {
	isolate(t)
	f, err := os.CreateTemp(t.TempDir(), "paste")
	if err != nil {
		t.Fatalf("temp: %v", err)
	}
	if _, err := f.WriteString("x\ty\n1\t2\n2\t4\n3\t6\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	old := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = old; f.Close() }()

	out := runCmd(t, "regress", "-", "--x", "x", "--y", "y")
	if !strings.Contains(out, "File: stdin") || !strings.Contains(out, "y = 2·x + 0") {
		t.Fatalf("unexpected stdin output:\n%s", out)
	}
}
