package ai

import (
	"context"
	"strings"
	"testing"
)

func TestPollinations_URLEmbedsEncodedPrompt(t *testing.T) {
	p := NewPollinationsProvider()

	img, err := p.Generate(context.Background(), "coffee shop logo, 100% organic")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(img.URL, "https://image.pollinations.ai/prompt/") {
		t.Fatalf("unexpected URL base: %s", img.URL)
	}
	if !strings.Contains(img.URL, "coffee%20shop%20logo,%20100%25%20organic") {
		t.Fatalf("prompt not percent-encoded in URL: %s", img.URL)
	}
	if !strings.Contains(img.URL, "width=1024") || !strings.Contains(img.URL, "nologo=true") {
		t.Fatalf("missing render parameters: %s", img.URL)
	}
	if img.Provider != "Pollinations" {
		t.Fatalf("provider label %q", img.Provider)
	}
}

func TestPollinations_AlwaysAvailable(t *testing.T) {
	if !NewPollinationsProvider().Available() {
		t.Fatal("keyless provider must always be available")
	}
}
