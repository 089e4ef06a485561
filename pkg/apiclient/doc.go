// Package apiclient provides the HTTP client core for the MWAP backend API.
//
// Every request carries a bearer token obtained from an injected
// TokenSource and an X-Request-ID header. Responses are normalized at
// this boundary: the backend answers either with a bare JSON value or
// with a {success, data, message} envelope, and Unwrap collapses both
// shapes into one. A {success:false} envelope is an error regardless of
// the HTTP status code.
//
// Idempotent GETs retry under an explicit, configurable Policy.
// Mutations never retry; their errors surface verbatim as *APIError.
package apiclient
