// Package roles resolves the authenticated user's role summary.
//
// The resolver is a small state machine (Idle, Fetching, Ready, Failed)
// that fetches GET /users/me/roles exactly once per authenticated
// session segment. Concurrent callers share a single in-flight request,
// and a fetch outlived by a logout is discarded rather than applied.
//
// A failed fetch is non-fatal: the summary degrades to all-false
// defaults and the error is recorded for display.
package roles
