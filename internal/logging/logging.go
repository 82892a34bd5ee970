// Package logging builds the zap logger shared by the CLI and the analysis runner.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a production zap logger writing JSON to stderr at the given
// level. debug forces the debug level regardless of level.
func New(level string, debug bool) (*zap.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	if debug {
		level = "debug"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Sampling = nil
	cfg.DisableStacktrace = !debug
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
