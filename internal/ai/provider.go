// Package ai wraps the outbound calls to the external generation providers
// and implements the ordered fallback chains across them. Providers are
// polymorphic over a common "attempt generation" capability so that chains
// iterate descriptors instead of branching per vendor, and tests can inject
// fakes.
package ai

import (
	"context"
	"errors"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TextRequest carries one completion call. For one-shot operations Messages
// holds a single user turn; the conversational operation passes prior turns
// in order with the current user message last.
type TextRequest struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// TextProvider is an external service returning generated text for a prompt.
type TextProvider interface {
	Name() string
	Complete(ctx context.Context, req TextRequest) (string, error)
}

// Image is the result of an image generation or edit: either an inline
// data URL or a remote URL, plus the provider that produced it.
type Image struct {
	URL      string `json:"url"`
	Provider string `json:"provider"`
}

// ImageProvider is one descriptor in the image fallback chain. Available
// reports whether the provider's credential is configured; unavailable
// providers are skipped without a network call.
type ImageProvider interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (*Image, error)
}

var (
	// ErrEmptyCompletion is returned when a provider answers successfully
	// but with no usable text.
	ErrEmptyCompletion = errors.New("provider returned an empty completion")

	// ErrNoImageProvider is returned by an image chain with no usable
	// provider. Unreachable when the keyless terminal provider is present.
	ErrNoImageProvider = errors.New("no image provider available")

	// ErrNotConfigured is returned by single-provider operations whose
	// required credential is absent.
	ErrNotConfigured = errors.New("provider credential not configured")
)
