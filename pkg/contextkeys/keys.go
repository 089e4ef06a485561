// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys used across the console client must be defined
// here. This prevents typos, documents dependencies, and makes key usage
// discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// RequestIDKey contains the request ID string (UUID)
	// Set by: apiclient before each request
	// Used by: Logger, X-Request-ID header
	// Type: string
	RequestIDKey Key = "request_id"

	// UserIDKey contains the authenticated subject ID
	// Set by: session store after login / role resolution
	// Used by: Logger, user-scoped operations
	// Type: string
	UserIDKey Key = "user_id"

	// LoggerKey contains *observability.Logger
	// Set by: CLI root command during wiring
	// Used by: Components that need structured logging with call context
	// Type: *observability.Logger
	LoggerKey Key = "logger"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestID retrieves the request ID from the context, or "" if absent
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithUserID adds a user ID to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserID retrieves the user ID from the context, or "" if absent
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return ""
}
