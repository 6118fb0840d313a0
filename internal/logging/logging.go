// Package logging builds the zap loggers used by the console.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level and destination.
type Options struct {
	Level   string
	Verbose bool

	// File, when set, is the only destination. Otherwise logs go to stderr.
	File string
}

func parseLevel(s string, verbose bool) (zapcore.Level, error) {
	if verbose {
		return zapcore.DebugLevel, nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
	return lvl, nil
}

// New builds a production (JSON) logger.
func New(opts Options) (*zap.Logger, error) {
	lvl, err := parseLevel(opts.Level, opts.Verbose)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Sampling = nil
	if f := strings.TrimSpace(opts.File); f != "" {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		config.OutputPaths = []string{f}
		config.ErrorOutputPaths = []string{f}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForTUI is the logger used while the terminal UI owns the screen: the log
// file if one is configured, otherwise nothing.
func ForTUI(opts Options) (*zap.Logger, error) {
	if strings.TrimSpace(opts.File) == "" {
		return zap.NewNop(), nil
	}
	return New(opts)
}
