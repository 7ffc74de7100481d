package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Stability AI SDXL endpoints. The v1 generation API returns base64 artifacts
// for both text-to-image and image-to-image.
const (
	stabilityTextToImageURL  = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"
	stabilityImageToImageURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/image-to-image"
)

// StabilityProvider is the premium image provider. It also carries the
// image-to-image edit operation, which has no fallback substitute.
type StabilityProvider struct {
	apiKey string
	http   *http.Client

	// Overridable endpoints for tests.
	textToImageURL  string
	imageToImageURL string
}

// NewStabilityProvider builds a Stability-backed provider. An empty apiKey is
// allowed: the provider reports itself unavailable and the chain skips it.
func NewStabilityProvider(apiKey string, timeout time.Duration) *StabilityProvider {
	return &StabilityProvider{
		apiKey:          apiKey,
		http:            &http.Client{Timeout: timeout},
		textToImageURL:  stabilityTextToImageURL,
		imageToImageURL: stabilityImageToImageURL,
	}
}

// Name returns the label reported in responses for generated images.
func (p *StabilityProvider) Name() string { return "Stability AI SDXL" }

// Available reports whether the API key is configured.
func (p *StabilityProvider) Available() bool { return p.apiKey != "" }

type stabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityGenerateRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	CFGScale    int                   `json:"cfg_scale"`
	Height      int                   `json:"height"`
	Width       int                   `json:"width"`
	Samples     int                   `json:"samples"`
	Steps       int                   `json:"steps"`
	StylePreset string                `json:"style_preset,omitempty"`
}

type stabilityArtifact struct {
	Base64 string `json:"base64"`
}

type stabilityResponse struct {
	Artifacts []stabilityArtifact `json:"artifacts"`
}

// Generate renders a text prompt into an inline data URL.
func (p *StabilityProvider) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !p.Available() {
		return nil, ErrNotConfigured
	}

	payload := stabilityGenerateRequest{
		TextPrompts: []stabilityTextPrompt{
			{Text: prompt, Weight: 1},
			{Text: "blurry, low quality, distorted, text", Weight: -1},
		},
		CFGScale:    7,
		Height:      1024,
		Width:       1024,
		Samples:     1,
		Steps:       30,
		StylePreset: "digital-art",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.textToImageURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability text-to-image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stability text-to-image: %s", readErrorBody(resp))
	}
	return p.decodeArtifact(resp.Body)
}

// Edit applies a text instruction to an existing image via image-to-image.
// strength is the caller-facing amount of change in [0,1]; the provider's
// native parameter measures image retention, so the transmitted value is
// 1 - strength.
func (p *StabilityProvider) Edit(ctx context.Context, imagePNG []byte, prompt string, strength float64) (*Image, error) {
	if !p.Available() {
		return nil, ErrNotConfigured
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("init_image", "logo.png")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(imagePNG); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"text_prompts[0][text]":   prompt,
		"text_prompts[0][weight]": "1",
		"text_prompts[1][text]":   "blurry, low quality, distorted, ugly, bad art",
		"text_prompts[1][weight]": "-1",
		"cfg_scale":               "7",
		"samples":                 "1",
		"steps":                   "30",
		"image_strength":          strconv.FormatFloat(math.Round((1-strength)*100)/100, 'f', -1, 64),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.imageToImageURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability image-to-image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stability image-to-image: %s", readErrorBody(resp))
	}
	return p.decodeArtifact(resp.Body)
}

func (p *StabilityProvider) decodeArtifact(r io.Reader) (*Image, error) {
	var out stabilityResponse
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("stability response: %w", err)
	}
	if len(out.Artifacts) == 0 || out.Artifacts[0].Base64 == "" {
		return nil, fmt.Errorf("stability response: no artifacts")
	}
	// Sanity-check the payload decodes before handing it to clients.
	if _, err := base64.StdEncoding.DecodeString(out.Artifacts[0].Base64); err != nil {
		return nil, fmt.Errorf("stability response: invalid artifact encoding: %w", err)
	}
	return &Image{
		URL:      "data:image/png;base64," + out.Artifacts[0].Base64,
		Provider: p.Name(),
	}, nil
}

// readErrorBody reads up to 300 bytes of an error response for log context.
func readErrorBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
	if len(b) == 0 {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, string(b))
}
