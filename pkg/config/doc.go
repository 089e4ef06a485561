// Package config loads console client configuration.
//
// Configuration comes from two places, later wins:
//
//  1. The context file (~/.config/mwap/config.yaml) holding named API
//     contexts, so one machine can talk to several MWAP deployments.
//  2. MWAP_* environment variables, which override the active context.
//
// All durations use Go duration syntax (e.g. "30s", "2m").
package config
