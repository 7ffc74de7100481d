package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const hfInferenceBaseURL = "https://api-inference.huggingface.co/models/"

// maxInlineImageBytes bounds the inference response we are willing to inline
// as a data URL.
const maxInlineImageBytes = 16 << 20

// HFProvider is the secondary premium image provider, calling the Hugging
// Face inference API for an SDXL checkpoint. The API returns raw image bytes
// on success.
type HFProvider struct {
	token string
	model string
	http  *http.Client

	baseURL string // overridable for tests
}

// NewHFProvider builds a Hugging Face inference provider for the given model
// path. An empty token makes the provider unavailable.
func NewHFProvider(token, model string, timeout time.Duration) *HFProvider {
	return &HFProvider{
		token:   token,
		model:   model,
		http:    &http.Client{Timeout: timeout},
		baseURL: hfInferenceBaseURL,
	}
}

// Name returns the label reported in responses for generated images.
func (p *HFProvider) Name() string { return "Hugging Face " + p.model }

// Available reports whether the API token is configured.
func (p *HFProvider) Available() bool { return p.token != "" }

// Generate renders a text prompt into an inline data URL.
func (p *HFProvider) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !p.Available() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+p.model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface inference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface inference: %s", readErrorBody(resp))
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		// A 200 with JSON means the model is loading or errored.
		return nil, fmt.Errorf("huggingface inference: unexpected content type %q", ct)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxInlineImageBytes))
	if err != nil {
		return nil, fmt.Errorf("huggingface inference: read body: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("huggingface inference: empty image body")
	}

	return &Image{
		URL:      "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(img),
		Provider: p.Name(),
	}, nil
}
