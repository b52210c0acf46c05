// Package types holds the wire envelopes shared by every HTTP handler.
package types

// SuccessEnvelope wraps successful responses under a single "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the machine-readable error surfaced to clients. Code values
// are stable identifiers such as SWAP_ALREADY_EXISTS; Details carries
// field-level validation output when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps error responses under a single "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
