package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// groqBaseURL points the OpenAI-compatible client at Groq Cloud.
const groqBaseURL = "https://api.groq.com/openai/v1"

const defaultMaxTokens = 2048

// GroqProvider is the primary completion provider. Groq exposes an
// OpenAI-compatible chat completions surface, so the official openai-go
// client is used with an overridden base URL.
type GroqProvider struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewGroqProvider builds a Groq-backed text provider for the given model.
func NewGroqProvider(apiKey, model string, timeout time.Duration) *GroqProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	)
	return &GroqProvider{client: client, model: model, timeout: timeout}
}

// Name returns the provider identifier used in responses and history rows.
func (p *GroqProvider) Name() string { return "groq" }

// Model returns the configured model identifier.
func (p *GroqProvider) Model() string { return p.model }

// Complete performs a non-streaming chat completion request.
func (p *GroqProvider) Complete(ctx context.Context, req TextRequest) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("groq completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
