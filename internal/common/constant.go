// Package common contains shared constants and sentinel errors used across
// PostDesk components.
package common

// APIKeyHeaderName carries the opaque API key on mutating requests.
const APIKeyHeaderName = "API-Key"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
