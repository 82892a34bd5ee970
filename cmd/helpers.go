package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/parser"
	"github.com/KaramelBytes/statloom-cli/internal/table"
	"github.com/KaramelBytes/statloom-cli/internal/utils"
)

// settings returns the loaded configuration, loading it on first use when
// the command runs without the Execute initializer (e.g. in tests).
func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

// loadTable reads path ("-" for stdin) using the delimiter from --delimiter
// or the config.
func loadTable(path string) (table.Table, string, error) {
	c := settings()
	delim := c.Delimiter
	if rootCmd.PersistentFlags().Changed("delimiter") {
		delim = delimiter
	}
	d, err := parser.ParseDelimiter(delim)
	if err != nil {
		return table.Table{}, "", err
	}
	t, err := parser.ParseFile(path, parser.Options{Delimiter: d, MaxRows: maxRows})
	if err != nil {
		return table.Table{}, "", err
	}
	name := filepath.Base(path)
	if path == parser.StdinName {
		name = "stdin"
	}
	logger.Debug("table loaded",
		zap.String("name", name),
		zap.Int("rows", t.Len()),
		zap.Int("columns", t.Width()),
	)
	return t, name, nil
}

// analysisOptions builds engine options from the config.
func analysisOptions() analysis.Options {
	c := settings()
	opt := analysis.DefaultOptions()
	opt.Window = c.MovingAverageWindow
	opt.Alpha = c.EMAAlpha
	opt.Horizon = c.ForecastHorizon
	opt.MaxLag = c.ACFMaxLag
	opt.Decimals = displayDecimals()
	opt.Logger = logger
	return opt
}

func displayDecimals() int {
	if rootCmd.PersistentFlags().Changed("decimals") {
		return decimals
	}
	return settings().Decimals
}

// runAnalysis loads the table at path, runs req and emits the report.
func runAnalysis(cmd *cobra.Command, path string, req analysis.Request, opt analysis.Options) error {
	t, name, err := loadTable(path)
	if err != nil {
		return err
	}
	rep, err := analysis.Run(t, name, req, opt)
	if err != nil {
		return err
	}
	return emit(cmd, rep)
}

// emit renders rep in the selected format to --output or stdout.
func emit(cmd *cobra.Command, rep *analysis.Report) error {
	format := settings().OutputFormat
	if outputFormat != "" {
		format = outputFormat
	}
	b, err := rep.Render(format, displayDecimals())
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := utils.SafeWriteFile(outputPath, b); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", rep.Kind, outputPath)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
