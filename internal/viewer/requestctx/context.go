package requestctx

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerContextKey contextKey = "finitefield.org/product-viewer/internal/viewer/requestctx/logger"
	queryContextKey  contextKey = "finitefield.org/product-viewer/internal/viewer/requestctx/query"
)

var noopLogger = zap.NewNop()

// Query is the filter selection a request resolved to, after cookie restoration.
type Query struct {
	Category string
	Search   string
	Restored bool
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared noop logger instance.
func NoopLogger() *zap.Logger { return noopLogger }

// WithQuery stores the resolved filter selection.
func WithQuery(ctx context.Context, q Query) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, queryContextKey, q)
}

// QueryFrom returns the resolved filter selection when present.
func QueryFrom(ctx context.Context) (Query, bool) {
	if ctx == nil {
		return Query{}, false
	}
	q, ok := ctx.Value(queryContextKey).(Query)
	return q, ok
}
