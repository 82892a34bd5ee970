package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
)

var (
	tsColumn  string
	tsDate    string
	tsWindow  int
	tsAlpha   float64
	tsHorizon int
	tsLags    int
)

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries <file>",
	Short: "Moving average, EMA, differencing, ACF, trend and naive forecast for a column",
	Long: `Treats the numeric values of a column, in row order, as an evenly spaced series.
With --date, rows lacking a date or a numeric value are dropped and each point is
labelled with its date; forecast points are labelled "Forecast 1", "Forecast 2", ...
The forecast is a seasonal-naive heuristic (trend plus the detrended value one
cycle earlier) and stationarity is a split-half mean comparison; neither is a
formal statistical test.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := analysisOptions()
		f := cmd.Flags()
		if f.Changed("window") {
			opt.Window = tsWindow
		}
		if f.Changed("alpha") {
			opt.Alpha = tsAlpha
		}
		if f.Changed("horizon") {
			opt.Horizon = tsHorizon
		}
		if f.Changed("lags") {
			opt.MaxLag = tsLags
		}
		req := analysis.Request{Kind: analysis.KindTimeSeries, Column: tsColumn, Date: tsDate}
		return runAnalysis(cmd, args[0], req, opt)
	},
}

func init() {
	rootCmd.AddCommand(timeseriesCmd)
	f := timeseriesCmd.Flags()
	f.StringVarP(&tsColumn, "column", "c", "", "column name or 0-based index")
	f.StringVar(&tsDate, "date", "", "optional date column (name or 0-based index) labelling each point")
	f.IntVar(&tsWindow, "window", 5, "moving-average window (overrides config)")
	f.Float64Var(&tsAlpha, "alpha", 0, "EMA smoothing factor in (0,1]; 0 uses 2/(n+1) (overrides config)")
	f.IntVar(&tsHorizon, "horizon", 12, "number of forecast points (overrides config)")
	f.IntVar(&tsLags, "lags", 20, "maximum autocorrelation lag (overrides config)")
	_ = timeseriesCmd.MarkFlagRequired("column")
}
