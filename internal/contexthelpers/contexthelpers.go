// Package contexthelpers provides typed accessors for request-scoped values.
package contexthelpers

import "context"

type contextKey string

const (
	currentProfileIDKey contextKey = "currentProfileID"
	requestIDKey        contextKey = "requestID"
)

// SetCurrentProfileID stores the active profile id resolved from the session.
func SetCurrentProfileID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, currentProfileIDKey, id)
}

// CurrentProfileID returns the active profile id or zero when no profile has
// been selected in the session.
func CurrentProfileID(ctx context.Context) int64 {
	if id, ok := ctx.Value(currentProfileIDKey).(int64); ok {
		return id
	}
	return 0
}

// SetRequestID stores the request correlation id.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request correlation id or the empty string.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
