// Package logger builds the slog logger of the command line tool.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/internal/config"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Setup creates the logger described by cfg and sets it as the default logger. stdout and stderr are the writers
// behind the "stdout" and "stderr" outputs. The returned function closes the log file, if any.
func Setup(cfg config.LogConfig, stdout, stderr io.Writer) (*slog.Logger, func() error, error) {
	writer, closeFn, err := output(cfg, stdout, stderr)
	if err != nil {
		return nil, nil, err
	}

	logger, err := New(cfg, writer)
	if err != nil {
		_ = closeFn()

		return nil, nil, err
	}

	slog.SetDefault(logger)

	return logger, closeFn, nil
}

// New creates a logger writing to w. The output setting of cfg is ignored.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeFormat))
			}

			return a
		},
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, errors.Errorf("invalid log format: %s", cfg.Format)
	}

	return slog.New(handler), nil
}

func output(cfg config.LogConfig, stdout, stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Output {
	case "stdout":
		return stdout, noop, nil
	case "stderr":
		return stderr, noop, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, errors.New("log file path is required when output is 'file'")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // log files are shared
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open log file")
		}

		return file, file.Close, nil
	default:
		return nil, nil, errors.Errorf("invalid log output: %s", cfg.Output)
	}
}

// ParseLevel parses a level name. warning is accepted for warn.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}

// WithRunID tags every record of logger with the id of a generation run.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}
