package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rs/zerolog/log"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/domain"
	"github.com/FAde16-lang/BrandCraft/internal/prompts"
)

// ImageGenerator is the text-to-image contract consumed by LogoService.
// *ai.ImageChain satisfies it; tests inject fakes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*ai.Image, error)
}

// ImageEditor is the image-to-image contract. Only the Stability backend
// implements it; when no key is configured the field stays nil and edit
// requests fail with ErrEditorNotConfigured.
type ImageEditor interface {
	Edit(ctx context.Context, imagePNG []byte, prompt string, strength float64) (*ai.Image, error)
}

// LogoService renders logo images through the image fallback chain and edits
// existing logos through the configured editor.
type LogoService struct {
	Generator ImageGenerator
	Editor    ImageEditor
	Store     ProfileStore
}

// GenerateImage produces one logo image for a brand. When customPrompt is
// set it is used verbatim; otherwise a prompt is composed from the brand
// fields.
func (s *LogoService) GenerateImage(ctx context.Context, ownerID, brandName, industry, style, customPrompt string) (*ai.Image, error) {
	tr := otel.Tracer("services/LogoService")
	ctx, span := tr.Start(ctx, "GenerateImage",
		trace.WithAttributes(attribute.String("operation", OpLogoImage)),
	)
	defer span.End()

	prompt := strings.TrimSpace(customPrompt)
	if prompt == "" {
		if strings.TrimSpace(brandName) == "" {
			return nil, ErrEmptyPrompt
		}
		prompt = prompts.LogoImage(style, brandName, industry)
	}

	img, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("provider", img.Provider))

	s.record(ctx, ownerID, OpLogoImage, img.Provider, brandName+" logo", prompt)
	return img, nil
}

// EditLogo applies an instruction to an existing logo image supplied as
// standard base64 PNG data. strength in (0,1] controls how far the result
// may depart from the source.
func (s *LogoService) EditLogo(ctx context.Context, ownerID, imageBase64, instruction string, strength float64) (*ai.Image, error) {
	tr := otel.Tracer("services/LogoService")
	ctx, span := tr.Start(ctx, "EditLogo",
		trace.WithAttributes(attribute.String("operation", OpLogoEdit)),
	)
	defer span.End()

	if s.Editor == nil {
		return nil, ErrEditorNotConfigured
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyPrompt
	}
	if strength <= 0 || strength > 1 {
		return nil, ErrInvalidStrength
	}

	raw, err := decodeImagePayload(imageBase64)
	if err != nil {
		return nil, err
	}

	img, err := s.Editor.Edit(ctx, raw, prompts.LogoEdit(instruction), strength)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("provider", img.Provider))

	s.record(ctx, ownerID, OpLogoEdit, img.Provider, instruction, instruction)
	return img, nil
}

// decodeImagePayload accepts either a bare base64 string or a data URL and
// returns the raw bytes.
func decodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrInvalidImage
	}
	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

func (s *LogoService) record(ctx context.Context, ownerID, op, provider, labelSeed, input string) {
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
	}
	if err := s.Store.RecordGeneration(ctx, rec); err != nil {
		log.Warn().Err(err).Str("operation", op).Msg("failed to record generation history")
	}
}
