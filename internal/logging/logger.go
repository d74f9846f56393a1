// Package logging provides categorized zap logging for coach.
// The TUI owns the terminal, so interactive sessions log to a file; the
// one-shot CLI logs to stderr. Each category is a named child logger and
// can be switched off individually from config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"playcoach/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup and shutdown
	CategoryConfig     Category = "config"     // Config loading
	CategoryForm       Category = "form"       // Situation form edits
	CategorySubmission Category = "submission" // Request lifecycle and service calls
	CategoryUI         Category = "ui"         // TUI events
)

// Stderr is the Output value for logging to standard error.
const Stderr = "stderr"

// Options controls how the root logger is built.
type Options struct {
	Enabled    bool
	Level      zapcore.Level
	Output     string // file path or Stderr
	JSON       bool
	Categories map[string]bool
}

// OptionsFromConfig derives Options from config. verbose forces debug level.
// An empty output falls back to the configured file.
func OptionsFromConfig(cfg config.LoggingConfig, output string, verbose bool) (Options, error) {
	lvl, err := cfg.ZapLevel()
	if err != nil {
		return Options{}, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	if output == "" {
		output = cfg.File
	}
	return Options{
		Enabled:    cfg.Enabled,
		Level:      lvl,
		Output:     output,
		JSON:       cfg.JSON,
		Categories: cfg.Categories,
	}, nil
}

// Logger hands out category loggers from a shared root.
type Logger struct {
	root   *zap.Logger
	filter config.LoggingConfig
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{root: zap.NewNop()}
}

// New builds the root logger. Disabled logging, or an empty output, yields
// a no-op logger without touching the filesystem.
func New(opts Options) (*Logger, error) {
	if !opts.Enabled || opts.Output == "" {
		return Nop(), nil
	}

	if opts.Output != Stderr {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(opts.Level)
	zc.OutputPaths = []string{opts.Output}
	zc.ErrorOutputPaths = []string{opts.Output}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !opts.JSON {
		zc.Encoding = "console"
	}

	root, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{
		root:   root,
		filter: config.LoggingConfig{Enabled: true, Categories: opts.Categories},
	}, nil
}

// For returns the named logger for a category, or a no-op logger when the
// category is switched off.
func (l *Logger) For(cat Category) *zap.Logger {
	if !l.filter.IsCategoryEnabled(string(cat)) {
		return zap.NewNop()
	}
	return l.root.Named(string(cat))
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.root.Sync()
}
