package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider is the optional secondary completion provider, backed by
// Google's Generative AI API.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider builds a Gemini-backed text provider. The client holds a
// connection pool, so construct once at startup and reuse.
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model, timeout: timeout}, nil
}

// Name returns the provider identifier used in responses and history rows.
func (p *GeminiProvider) Name() string { return "gemini" }

// Close releases the underlying client connection.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// Complete performs a completion request. Prior turns are mapped onto a chat
// session (Gemini uses "model" for the assistant role); system turns beyond
// the first are folded into the system instruction since the chat history
// does not accept them.
func (p *GeminiProvider) Complete(ctx context.Context, req TextRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrEmptyCompletion
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	model := p.client.GenerativeModel(p.model)

	instruction := req.System
	history := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages[:len(req.Messages)-1] {
		switch m.Role {
		case RoleSystem:
			if instruction != "" {
				instruction += "\n"
			}
			instruction += m.Content
		case RoleAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		}
	}
	if instruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(instruction)},
		}
	}

	temp := float32(req.Temperature)
	maxTokens := int32(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	session := model.StartChat()
	session.History = history

	last := req.Messages[len(req.Messages)-1]
	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
