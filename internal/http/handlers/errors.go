// HTTP-layer error codes used across all API endpoints.
//
// These symbolic constants are mapped to HTTP responses via the `fail()`
// helper in this package. They give clients a stable, machine-readable error
// taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless noted.
//   - Generic codes (bad_request, not_found, ...) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (generation_failed, provider_not_configured, ...)
//     are reserved for business errors that status alone cannot convey.

package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeGenerationFailed      = "generation_failed"
	ErrCodeProviderNotConfigured = "provider_not_configured"
	ErrCodeSyncFailed            = "sync_failed"
	ErrCodeListFailed            = "list_failed"
	ErrCodeMethodNotAllowed      = "method_not_allowed"
)
