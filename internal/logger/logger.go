package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Initialize installs the process-wide default logger on stderr. Warnings
// only by default; --verbose raises to info, --debug to debug plus source
// locations.
func Initialize(debug, verbose bool) {
	h := NewPrettyHandler(os.Stderr, levelFor(debug, verbose), debug)
	slog.SetDefault(slog.New(h))
}

func levelFor(debug, verbose bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// FromContext returns the logger carried by ctx, or the process default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

func Debug(ctx context.Context, msg string, args ...any) { FromContext(ctx).Debug(msg, args...) }

func Info(ctx context.Context, msg string, args ...any) { FromContext(ctx).Info(msg, args...) }

func Warn(ctx context.Context, msg string, args ...any) { FromContext(ctx).Warn(msg, args...) }

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
