package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/logging"
)

var (
	// Global flags; when set they override the loaded configuration
	cfgFile      string
	debug        bool
	outputFormat string
	outputPath   string
	delimiter    string
	decimals     int
	maxRows      int

	// Loaded configuration
	cfg *cfgpkg.Global
	// Shared logger; a no-op until loadConfig runs
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "statloom",
	Short: "StatLoom CLI: descriptive statistics, correlation and time series for tabular data",
	Long: `StatLoom reads a CSV/TSV table (or pasted data on stdin with "-") and computes
descriptive statistics, Pearson/Spearman correlation, least-squares regression,
correlation matrices, time-series transforms and distribution curves.
Results are rendered as Markdown tables, JSON or YAML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func init() {
	// Persistent global flags available to all subcommands
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.statloom/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVarP(&outputFormat, "format", "f", "", "output format: markdown|json|yaml (overrides config)")
	pf.StringVarP(&outputPath, "output", "o", "", "write the report to this path instead of stdout")
	pf.StringVar(&delimiter, "delimiter", "", "field delimiter: ',' | ';' | '|' | 'tab' (sniffed if omitted)")
	pf.IntVar(&decimals, "decimals", 0, "decimal places for display (overrides config)")
	pf.IntVar(&maxRows, "max-rows", 0, "maximum data rows to read (0 = unlimited)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; logging disabled\n", err)
		logger = zap.NewNop()
		return
	}
	logger = l
	logger.Debug("config loaded", zap.String("file", cfgFile), zap.String("format", cfg.OutputFormat))
}
