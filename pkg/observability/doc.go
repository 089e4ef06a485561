// Package observability provides structured logging, Prometheus metrics,
// and optional OpenTelemetry tracing for the console client.
//
// The Logger is a thin wrapper over stdlib slog that supports field
// chaining and context carriage of request and user IDs. Metrics cover
// the client-visible surface: API requests, cache effectiveness, role
// fetches, and token refreshes.
package observability
