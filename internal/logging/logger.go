package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scorebook/internal/config"
)

// Options controls logger construction.
type Options struct {
	// Format selects "console" or "json" output. Defaults to console.
	Format string
	// Level is the minimum level to emit. Defaults to info.
	Level string
	// Output receives log lines. Defaults to stderr.
	Output io.Writer
	// FilePath, when set, mirrors every line to the named file.
	FilePath string
	// AddSource includes the file:line of the log call site.
	AddSource bool
}

// New builds a logger from the options.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	lvl := new(slog.LevelVar)
	lvl.Set(level)

	writer := opts.Output
	if writer == nil {
		writer = os.Stderr
	}
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer = io.MultiWriter(writer, file)
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		handler = newConsoleHandler(writer, lvl)
	case "json":
		handler = newJSONHandler(writer, lvl, opts.AddSource)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(handler), nil
}

// NewFromConfig builds the standard logger for a loaded configuration:
// the configured format and level on stderr, mirrored to
// scorebook.log under the log directory.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	return New(Options{
		Format:   cfg.Logging.Format,
		Level:    cfg.Logging.Level,
		FilePath: filepath.Join(cfg.Paths.LogDir, "scorebook.log"),
	})
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
