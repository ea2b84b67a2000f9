package logging

import (
	"context"
	"log/slog"
)

type batchIDKey struct{}

// ContextWithBatchID tags ctx with a rename batch identifier.
func ContextWithBatchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, batchIDKey{}, id)
}

// BatchIDFromContext returns the batch identifier stored in ctx, if any.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(batchIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns logger augmented with fields carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := BatchIDFromContext(ctx); ok {
		return logger.With(String(FieldBatchID, id))
	}
	return logger
}
