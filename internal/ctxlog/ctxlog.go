// Package ctxlog carries the assembly's slog.Logger through context.Context
// so builders and loaders log with the attributes of the run that called them.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported so no other package can collide with it.
type key struct{}

var loggerKey = key{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by WithLogger. A missing logger is a
// wiring bug, so it panics instead of silently falling back to the default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}

// With returns a context whose logger has the given attributes added.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}
