// Package context carries per-request values shared by the transport and application layers.
package context

import "context"

type requestIDKey struct{}

// RequestIDHeader is the header the id is read from and echoed back on.
const RequestIDHeader = "X-Request-Id"

// WithRequestID stores id on ctx. An empty id leaves ctx untouched so an outer id survives.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the id stored by WithRequestID, or "".
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
