package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/record-catalog/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string

	// Output receives log lines. Defaults to stderr.
	Output io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	switch format {
	case "", "console", "text":
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromSettings creates a logger from application settings.
//
// When settings name a log file, lines are appended there instead of
// stderr; the interactive UI relies on this to keep the screen clean.
// The returned close function releases the file and is never nil.
func NewFromSettings(s *config.Settings) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if s == nil {
		logger, err := New(Options{})
		return logger, noop, err
	}

	opts := Options{Level: s.LogLevel, Format: s.LogFormat}
	closeFn := noop

	if s.LogFile != "" {
		path := s.LogFilePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, noop, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		opts.Output = f
		closeFn = f.Close
	}

	logger, err := New(opts)
	if err != nil {
		_ = closeFn()
		return nil, noop, err
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything, for tests and wiring
// code that must not fail.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps a configured level name onto slog levels.
// Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Component tags a logger with the component attribute used across packages.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = Nop()
	}
	return logger.With(slog.String("component", name))
}
