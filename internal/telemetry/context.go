package telemetry

import (
	"context"
	"strings"
)

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID attaches a request id so log events emitted under ctx carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
