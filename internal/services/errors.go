// Package services defines the business logic for generation operations,
// logo handling, and user profiles. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes should be performed at the
// handler layer.
package services

import "errors"

var (
	// ErrEmptyPrompt is returned when a generation request contains no
	// usable input after trimming.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrProfileNotFound indicates that no profile exists for the given
	// external identifier.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidImage is returned when a submitted base64 image payload
	// cannot be decoded.
	ErrInvalidImage = errors.New("invalid base64 image data")

	// ErrInvalidStrength is returned when an edit strength is outside [0,1].
	ErrInvalidStrength = errors.New("strength must be between 0.0 and 1.0")

	// ErrEditorNotConfigured is returned when the logo edit operation is
	// invoked without its provider credential. Editing has no free
	// substitute, so this is terminal rather than a degraded-mode fallback.
	ErrEditorNotConfigured = errors.New("image editing provider not configured")
)
