package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the wrapped response shape some backend routes return.
// Success is a pointer so a bare object with no "success" key is
// distinguishable from {success:false}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Unwrap normalizes a raw response body into dest.
//
// Tolerated shapes:
//
//	{"success": true, "data": T}  -> decode data into dest
//	T                             -> decode body into dest
//	{"success": false, ...}       -> *APIError with the backend message,
//	                                 regardless of HTTP status
//
// dest may be nil when the caller does not need the payload.
func Unwrap(body []byte, dest interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Success != nil {
			if !*env.Success {
				return &APIError{Message: envelopeMessage(env)}
			}
			if dest == nil || len(env.Data) == 0 {
				return nil
			}
			if err := json.Unmarshal(env.Data, dest); err != nil {
				return fmt.Errorf("failed to decode response data: %w", err)
			}
			return nil
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// envelopeMessage picks the most specific error message from an envelope
func envelopeMessage(env envelope) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	return "request failed"
}

// errorMessage extracts a human-readable message from an error response
// body, falling back to the given default.
func errorMessage(body []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	return fallback
}
