// Package services – GenerateService
//
// This file implements GenerateService, the application-level component that
// owns the six text operations: brand names, marketing content, the
// conversational consultant, sentiment analysis, color palettes, and logo
// concept prompts. Each operation renders a fixed template with the caller's
// fields, runs it through the completion fallback chain, and best-effort
// appends a history row when a caller identity is present.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the operation type and the provider that answered.
package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/domain"
	"github.com/FAde16-lang/BrandCraft/internal/prompts"
)

// Operation type labels stored in history rows.
const (
	OpBrandNames       = "brand_names"
	OpMarketingContent = "marketing_content"
	OpChat             = "chat"
	OpSentiment        = "sentiment"
	OpPalette          = "palette"
	OpLogoConcepts     = "logo_concepts"
	OpLogoImage        = "logo_image"
	OpLogoEdit         = "logo_edit"
)

// Per-operation sampling temperatures.
const (
	tempBrandNames   = 0.8
	tempContent      = 0.7
	tempChat         = 0.7
	tempSentiment    = 0.3
	tempPalette      = 0.6
	tempLogoConcepts = 0.8
)

// TextCompleter is the completion contract consumed by GenerateService.
// *ai.TextChain satisfies it; tests inject fakes.
type TextCompleter interface {
	Complete(ctx context.Context, req ai.TextRequest) (text string, provider string, err error)
}

// GenerateService coordinates prompt formatting, provider selection, and
// history recording for the text operations.
type GenerateService struct {
	Chain TextCompleter
	Store ProfileStore

	// ModelName is the configured completion model identifier, echoed to
	// clients as model_used.
	ModelName string

	// MaxPromptRunes guards pathological inputs; 0 disables the check.
	MaxPromptRunes int
}

// ChatTurn is one prior message of the conversational operation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BrandNames generates brand name suggestions.
func (s *GenerateService) BrandNames(ctx context.Context, ownerID, industry string, keywords []string, style, targetAudience, extra string) (string, error) {
	prompt := prompts.BrandNames(industry, keywords, style, targetAudience, extra)
	return s.generate(ctx, ownerID, OpBrandNames, prompts.SystemPrompt, prompt, tempBrandNames, industry+" "+strings.Join(keywords, " "))
}

// MarketingContent generates marketing copy for one content type.
func (s *GenerateService) MarketingContent(ctx context.Context, ownerID, brandName, brandDescription, contentType, targetAudience, tone, keyMessage, cta string) (string, error) {
	prompt := prompts.MarketingContent(brandName, brandDescription, contentType, targetAudience, tone, keyMessage, cta)
	return s.generate(ctx, ownerID, OpMarketingContent, prompts.SystemPrompt, prompt, tempContent, brandName+" "+contentType)
}

// Sentiment analyzes the emotional tone of a text.
func (s *GenerateService) Sentiment(ctx context.Context, ownerID, text, analysisContext string) (string, error) {
	prompt := prompts.Sentiment(text, analysisContext)
	return s.generate(ctx, ownerID, OpSentiment, prompts.SystemPrompt, prompt, tempSentiment, text)
}

// Palette generates color palette and design system recommendations.
func (s *GenerateService) Palette(ctx context.Context, ownerID, brandName, industry, personality, targetAudience, mood, existingColors string) (string, error) {
	prompt := prompts.DesignPalette(brandName, industry, personality, targetAudience, mood, existingColors)
	return s.generate(ctx, ownerID, OpPalette, prompts.SystemPrompt, prompt, tempPalette, brandName+" palette")
}

// LogoConcepts generates text-to-image prompt concepts for logo design.
func (s *GenerateService) LogoConcepts(ctx context.Context, ownerID, brandName, industry, brandValues, style, iconPreferences, colors string) (string, error) {
	prompt := prompts.LogoConcepts(brandName, industry, brandValues, style, iconPreferences, colors)
	return s.generate(ctx, ownerID, OpLogoConcepts, prompts.SystemPrompt, prompt, tempLogoConcepts, brandName+" logo concepts")
}

// Chat runs one conversational turn with optional prior history and business
// context.
func (s *GenerateService) Chat(ctx context.Context, ownerID, message string, history []ChatTurn, businessContext string) (string, error) {
	tr := otel.Tracer("services/GenerateService")
	ctx, span := tr.Start(ctx, "Chat",
		trace.WithAttributes(attribute.String("operation", OpChat)),
	)
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(message) > s.MaxPromptRunes {
		message = string([]rune(message)[:s.MaxPromptRunes])
	}

	msgs := make([]ai.Message, 0, len(history)+2)
	if businessContext != "" {
		msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: "Business Context: " + businessContext})
	}
	for _, turn := range history {
		role := ai.RoleUser
		if turn.Role == "assistant" {
			role = ai.RoleAssistant
		}
		msgs = append(msgs, ai.Message{Role: role, Content: turn.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	out, provider, err := s.Chain.Complete(ctx, ai.TextRequest{
		System:      prompts.ChatSystemPrompt,
		Messages:    msgs,
		Temperature: tempChat,
	})
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("provider", provider))

	s.record(ctx, ownerID, OpChat, provider, message, message, out)
	return out, nil
}

// generate is the shared one-shot path: single user turn against the system
// persona, then a best-effort history append.
func (s *GenerateService) generate(ctx context.Context, ownerID, op, system, prompt string, temperature float64, labelSeed string) (string, error) {
	tr := otel.Tracer("services/GenerateService")
	ctx, span := tr.Start(ctx, "generate",
		trace.WithAttributes(attribute.String("operation", op)),
	)
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(prompt) > s.MaxPromptRunes {
		prompt = string([]rune(prompt)[:s.MaxPromptRunes])
	}

	out, provider, err := s.Chain.Complete(ctx, ai.TextRequest{
		System:      system,
		Messages:    []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("provider", provider))

	s.record(ctx, ownerID, op, provider, labelSeed, prompt, out)
	return out, nil
}

// record appends a history row when a caller identity is present. Failures
// are logged, never surfaced: persistence must not affect generation results.
func (s *GenerateService) record(ctx context.Context, ownerID, op, provider, labelSeed, input, output string) {
	if s.Store == nil || strings.TrimSpace(ownerID) == "" {
		return
	}
	snapshot, _ := json.Marshal(map[string]string{"prompt": input})
	rec := &domain.GenerationRecord{
		OwnerExternalID: ownerID,
		Operation:       op,
		Provider:        provider,
		Label:           LabelFromInput(labelSeed),
		InputSnapshot:   string(snapshot),
		OutputSnapshot:  output,
	}
	if err := s.Store.RecordGeneration(ctx, rec); err != nil {
		log.Warn().Err(err).Str("operation", op).Msg("failed to record generation history")
	}
}

// --- History label helpers ---

// Extract Unicode letters with optional trailing numbers.
var labelWordRE = regexp.MustCompile(`[\p{L}]+[\p{N}]*`)

// Minimal English stop-words set for compact labels.
var labelStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"is": {}, "are": {}, "for": {}, "on": {}, "with": {}, "by": {}, "from": {},
	"at": {}, "as": {}, "that": {}, "this": {}, "it": {}, "be": {}, "was": {}, "were": {},
}

const labelMaxRunes = 60

// LabelFromInput derives a concise, title-cased label for a history row from
// the operation's input.
func LabelFromInput(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	toks := labelWordRE.FindAllString(strings.ToLower(input), -1)
	if len(toks) == 0 {
		return ""
	}

	titleCaser := cases.Title(language.English)
	out := make([]string, 0, 8)
	for _, w := range toks {
		if _, skip := labelStopWords[w]; skip {
			continue
		}
		out = append(out, titleCaser.String(w))
		if len(out) >= 8 {
			break
		}
	}
	if len(out) == 0 {
		return ""
	}
	label := strings.Join(out, " ")
	if utf8.RuneCountInString(label) > labelMaxRunes {
		label = string([]rune(label)[:labelMaxRunes])
	}
	return label
}
