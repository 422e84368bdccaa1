package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// Logger provides leveled, printf-style logging throughout the application.
// Records go through log/slog so attributes added with With are structured.
type Logger struct {
	slog *slog.Logger
}

// LoggerConfig configures NewLoggerWithConfig. Zero values mean stdout,
// info level and colours on.
type LoggerConfig struct {
	Writer  io.Writer
	Level   slog.Leveler
	NoColor bool

	// Fluent, when set, receives every record at or above FluentLevel.
	Fluent      *fluent.Fluent
	FluentLevel slog.Leveler
}

// NewLogger creates a Logger writing coloured text to stdout at info level.
func NewLogger() *Logger {
	return NewLoggerWithConfig(LoggerConfig{})
}

func NewLoggerWithConfig(cfg LoggerConfig) *Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Level == nil {
		cfg.Level = slog.LevelInfo
	}

	var handler slog.Handler = tint.NewHandler(cfg.Writer, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    cfg.NoColor,
	})

	if cfg.Fluent != nil {
		level := cfg.FluentLevel
		if level == nil {
			level = cfg.Level
		}
		handler = newFanoutHandler(handler, newFluentHandler(cfg.Fluent, level))
	}

	return &Logger{slog: slog.New(handler)}
}

// With returns a child logger carrying the given key/value attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

func (l *Logger) Info(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, args...))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
