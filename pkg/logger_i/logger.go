package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
)

// Logger resolves the default slog handler on use, so package level loggers
// created before Init still follow the installed handler.
type Logger struct {
	attrs []any
	cache atomic.Pointer[resolved]
}

type resolved struct {
	base  *slog.Logger
	inner *slog.Logger
}

// Init installs the default handler. Production logs are JSON, development
// logs are text. An empty level picks the default for the mode.
func Init(production bool, level string) {
	InitWriter(os.Stdout, production, level)
}

func InitWriter(w io.Writer, production bool, level string) {
	options := &slog.HandlerOptions{
		Level:     parseLevel(production, level),
		AddSource: true,
	}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(production bool, level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if production {
		return config.LOG_LEVEL_PROD
	}
	return config.LOG_LEVEL_DEV
}

func NewLogger(section string) *Logger {
	return &Logger{attrs: []any{"component", section}}
}

func (l *Logger) inner() *slog.Logger {
	base := slog.Default()
	if r := l.cache.Load(); r != nil && r.base == base {
		return r.inner
	}
	inner := base.With(l.attrs...)
	l.cache.Store(&resolved{base: base, inner: inner})
	return inner
}

func (l *Logger) Info(msg string, args ...any) {
	l.logWithSource(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	inner := l.inner()
	if !inner.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// Skip 3 levels: runtime.Callers, logWithSource, and the Info/Error wrapper
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.Add(args...)
	_ = inner.Handler().Handle(ctx, record)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{attrs: append(slices.Clone(l.attrs), args...)}
}

// WithTrace tags the logger with the trace id carried by ctx, if any.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With(config.TRACE_ID_KEY, trace)
	}
	return l
}
