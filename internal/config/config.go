package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Time-series defaults
	MovingAverageWindow int     `mapstructure:"moving_average_window" yaml:"moving_average_window"`
	EMAAlpha            float64 `mapstructure:"ema_alpha" yaml:"ema_alpha"`
	ForecastHorizon     int     `mapstructure:"forecast_horizon" yaml:"forecast_horizon"`
	ACFMaxLag           int     `mapstructure:"acf_max_lag" yaml:"acf_max_lag"`

	// Output
	Decimals     int    `mapstructure:"decimals" yaml:"decimals"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Input; empty means sniff from the file
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the configuration keys accepted by `config set`.
var Keys = []string{
	"moving_average_window",
	"ema_alpha",
	"forecast_horizon",
	"acf_max_lag",
	"decimals",
	"output_format",
	"delimiter",
	"log_level",
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		MovingAverageWindow: 5,
		EMAAlpha:            0,
		ForecastHorizon:     12,
		ACFMaxLag:           20,
		Decimals:            2,
		OutputFormat:        "markdown",
		Delimiter:           "",
		LogLevel:            "warn",
	}
}

// Dir returns ~/.statloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".statloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATLOOM")
	v.AutomaticEnv()

	// Defaults
	d := Default()
	v.SetDefault("moving_average_window", d.MovingAverageWindow)
	v.SetDefault("ema_alpha", d.EMAAlpha)
	v.SetDefault("forecast_horizon", d.ForecastHorizon)
	v.SetDefault("acf_max_lag", d.ACFMaxLag)
	v.SetDefault("decimals", d.Decimals)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
