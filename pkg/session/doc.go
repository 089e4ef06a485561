// Package session wraps the OIDC identity-provider outcome in a stable
// shape: an authenticated flag, an opaque bearer token, and the raw
// user profile.
//
// The login flow is the standard authorization-code redirect, captured
// on a loopback listener. The resulting credential persists in a file
// under the user config directory, so sessions survive process
// restarts and other processes observe logins and logouts through a
// file watch.
//
// Token never returns an error: a refresh failure logs and yields an
// empty token, leaving dependent callers to hit a 401 instead of
// crashing.
package session
