package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hashicorp/go-multierror"
	slogsentry "github.com/getsentry/sentry-go/slog"
	"github.com/owenthereal/tilde/internal/version"
	slogmulti "github.com/samber/slog-multi"
)

const sentryFlushTimeout = 2 * time.Second

// Logger is a slog.Logger that owns its sinks. Close flushes Sentry and
// closes the log file; every sink is closed even if an earlier one fails.
type Logger struct {
	*slog.Logger
	closers []func() error
}

func (l *Logger) Close() error {
	var result error
	for _, c := range l.closers {
		if err := c(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// With tags every record with args. The returned logger shares l's sinks.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), closers: l.closers}
}

type Option func(*config) error

type config struct {
	level    slog.Level
	outputs  []io.Writer
	handlers []slog.Handler
	closers  []func() error
}

// New creates a logger with options.
//
// Without an output option nothing is written: stdout and stderr belong to
// the console while the terminal is in raw mode.
func New(opts ...Option) (*Logger, error) {
	cfg := &config{
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.outputs) > 0 {
		cfg.handlers = append(cfg.handlers, slog.NewJSONHandler(io.MultiWriter(cfg.outputs...), &slog.HandlerOptions{Level: cfg.level}))
	}

	return &Logger{
		Logger:  slog.New(slogmulti.Fanout(cfg.handlers...)),
		closers: cfg.closers,
	}, nil
}

func Must(opts ...Option) *Logger {
	logger, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return Must()
}

// Debug lowers the level so key codes and probe fallbacks are logged.
func Debug() Option {
	return func(c *config) error {
		c.level = slog.LevelDebug
		return nil
	}
}

// Writer logs to w. Used by commands that run outside raw mode and by tests.
func Writer(w io.Writer) Option {
	return func(c *config) error {
		c.outputs = append(c.outputs, w)
		return nil
	}
}

// File appends to path, creating it and its directory if needed.
func File(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.New("log file path is required")
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", path, err)
		}

		c.outputs = append(c.outputs, file)
		c.closers = append(c.closers, file.Close)
		return nil
	}
}

// Sentry reports error records to dsn. An empty dsn disables it.
func Sentry(dsn string) Option {
	return func(c *config) error {
		if dsn == "" {
			return nil
		}

		handler, flush, err := newSentryHandler(dsn)
		if err != nil {
			return fmt.Errorf("error initializing sentry: %w", err)
		}
		c.handlers = append(c.handlers, handler)
		c.closers = append(c.closers, flush)
		return nil
	}
}

func newSentryHandler(dsn string) (slog.Handler, func() error, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Release:          version.String(),
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, nil, err
	}

	handler := slogsentry.Option{
		Level: slog.LevelError,
	}.NewSentryHandler(context.Background())

	flush := func() error {
		if !sentry.Flush(sentryFlushTimeout) {
			return errors.New("sentry flush timeout")
		}
		return nil
	}

	return handler, flush, nil
}
