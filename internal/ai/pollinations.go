package ai

import (
	"context"
	"net/url"
)

const pollinationsBaseURL = "https://image.pollinations.ai"

// PollinationsProvider is the keyless terminal fallback. It constructs a
// deterministic image URL embedding the percent-encoded prompt and returns it
// without any network validation, so it never fails: every image-generation
// request can produce *something* even with no credential configured.
type PollinationsProvider struct {
	baseURL string
}

// NewPollinationsProvider builds the keyless provider.
func NewPollinationsProvider() *PollinationsProvider {
	return &PollinationsProvider{baseURL: pollinationsBaseURL}
}

// Name returns the label reported in responses for generated images.
func (p *PollinationsProvider) Name() string { return "Pollinations" }

// Available always reports true: no credential is required.
func (p *PollinationsProvider) Available() bool { return true }

// Generate constructs the image URL for the prompt. No request is made.
func (p *PollinationsProvider) Generate(_ context.Context, prompt string) (*Image, error) {
	u := p.baseURL + "/prompt/" + url.PathEscape(prompt) + "?width=1024&height=1024&nologo=true"
	return &Image{URL: u, Provider: p.Name()}, nil
}
