// Package handlers provides HTTP handler implementations for the public API.
// This file defines the stable machine-readable error codes used in error
// envelopes across all endpoints.
package handlers

// Stable error codes returned in the `code` field of ErrorResponse.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeUpstreamFailed   = "upstream_failed"
	ErrCodeInternal         = "internal_error"
)
