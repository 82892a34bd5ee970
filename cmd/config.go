package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/parser"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set StatLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "moving_average_window: %d\n", c.MovingAverageWindow)
		if c.EMAAlpha > 0 {
			fmt.Fprintf(out, "ema_alpha: %g\n", c.EMAAlpha)
		} else {
			fmt.Fprintln(out, "ema_alpha: auto (2/(n+1))")
		}
		fmt.Fprintf(out, "forecast_horizon: %d\n", c.ForecastHorizon)
		fmt.Fprintf(out, "acf_max_lag: %d\n", c.ACFMaxLag)
		fmt.Fprintf(out, "decimals: %d\n", c.Decimals)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		} else {
			fmt.Fprintln(out, "delimiter: auto")
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Keys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := settings()
		switch key {
		case "moving_average_window":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for moving_average_window: %v (must be >= 1)", val)
			}
			c.MovingAverageWindow = i
		case "ema_alpha":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("invalid float for ema_alpha: %v (use 0 for auto or a value in (0,1])", val)
			}
			c.EMAAlpha = f
		case "forecast_horizon":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for forecast_horizon: %v", val)
			}
			c.ForecastHorizon = i
		case "acf_max_lag":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for acf_max_lag: %v (must be >= 1)", val)
			}
			c.ACFMaxLag = i
		case "decimals":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 || i > 12 {
				return fmt.Errorf("invalid int for decimals: %v (use 0-12)", val)
			}
			c.Decimals = i
		case "output_format":
			switch strings.ToLower(val) {
			case analysis.FormatMarkdown, "md":
				c.OutputFormat = analysis.FormatMarkdown
			case analysis.FormatJSON:
				c.OutputFormat = analysis.FormatJSON
			case analysis.FormatYAML, "yml":
				c.OutputFormat = analysis.FormatYAML
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown, json or yaml)", val)
			}
		case "delimiter":
			if _, err := parser.ParseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "log_level":
			if _, err := zap.ParseAtomicLevel(val); err != nil {
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
