package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging interface used across promwalk. Arguments after
// the message are slog key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
	Enabled(level string) bool
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Format is "text" or "json".
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the CLI defaults: warnings and above, as text on
// stderr, so that rendered walk output on stdout stays clean.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "text",
		Output: os.Stderr,
	}
}

// shared is the level of every logger built by New. SetLevel moves it.
var shared = new(slog.LevelVar)

// New creates a logger whose level is shared with every other logger
// created by New and follows SetLevel.
func New(cfg Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	h, err := newHandler(cfg, shared)
	if err != nil {
		return nil, err
	}
	shared.Set(level)
	return &slogLogger{logger: slog.New(h), ctx: context.Background()}, nil
}

// Fixed creates a logger whose level stays at cfg.Level. An unknown level
// falls back to info and an unknown format to text.
func Fixed(cfg Config) Logger {
	level, _ := ParseLevel(cfg.Level)
	h, err := newHandler(cfg, level)
	if err != nil {
		h, _ = newHandler(Config{Output: cfg.Output}, level)
	}
	return &slogLogger{logger: slog.New(h), ctx: context.Background()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &slogLogger{logger: slog.New(slog.DiscardHandler), ctx: context.Background()}
}

func newHandler(cfg Config, level slog.Leveler) (slog.Handler, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.NewTextHandler(out, opts), nil
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// ParseLevel maps a level name onto a slog level. "warning" is accepted
// for "warn". An unknown name yields info and an error.
func ParseLevel(name string) (slog.Level, error) {
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn, nil
	}
	switch l := strings.ToLower(name); l {
	case "debug", "info", "warn", "error":
		var level slog.Level
		err := level.UnmarshalText([]byte(l))
		return level, err
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// ValidLevel reports whether ParseLevel accepts name.
func ValidLevel(name string) bool {
	_, err := ParseLevel(name)
	return err == nil
}

// SetLevel moves the level shared by loggers created with New. An unknown
// name selects info.
func SetLevel(name string) {
	level, _ := ParseLevel(name)
	shared.Set(level)
}

// Level returns the shared level name in lower case.
func Level() string {
	return strings.ToLower(shared.Level().String())
}

type slogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

func (l *slogLogger) log(level slog.Level, msg string, args []any) {
	l.logger.Log(l.ctx, level, msg, args...)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...), ctx: l.ctx}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{logger: l.logger, ctx: ctx}
}

// Enabled reports whether a record at the named level would be written.
func (l *slogLogger) Enabled(name string) bool {
	level, _ := ParseLevel(name)
	return l.logger.Enabled(l.ctx, level)
}

type holder struct{ Logger }

var defaultLogger atomic.Pointer[holder]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&holder{l})
}

// SetDefault replaces the logger returned by Default. A nil logger is
// ignored.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&holder{l})
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return defaultLogger.Load().Logger
}
