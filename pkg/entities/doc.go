// Package entities provides the typed client families for the MWAP
// backend's REST resources: tenants, projects, project types, cloud
// providers, and the tenant/project sub-resources.
//
// Reads are readiness-gated: until the role resolver has settled, every
// read returns ErrNotReady instead of firing a request that would only
// bounce off a 401. Successful reads populate a shared read-through
// cache; every successful mutation invalidates the affected list and
// entity keys before returning, so an immediate refetch observes fresh
// state.
//
// List fetches degrade to an empty result on backend failure, with a
// logged warning. Mutations surface the backend error verbatim and are
// never retried.
package entities
