// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they validate and normalize inputs, delegate
// to application services through narrow interfaces, and translate results
// into HTTP responses with a uniform envelope.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/domain"
	"github.com/FAde16-lang/BrandCraft/internal/services"
)

//
// Service contracts (context-aware)
//

// TextService defines the text generation operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TextService interface {
	BrandNames(ctx context.Context, ownerID, industry string, keywords []string, style, targetAudience, extra string) (string, error)
	MarketingContent(ctx context.Context, ownerID, brandName, brandDescription, contentType, targetAudience, tone, keyMessage, cta string) (string, error)
	Chat(ctx context.Context, ownerID, message string, history []services.ChatTurn, businessContext string) (string, error)
	Sentiment(ctx context.Context, ownerID, text, analysisContext string) (string, error)
	Palette(ctx context.Context, ownerID, brandName, industry, personality, targetAudience, mood, existingColors string) (string, error)
	LogoConcepts(ctx context.Context, ownerID, brandName, industry, brandValues, style, iconPreferences, colors string) (string, error)
}

// LogoImageService defines logo image generation and editing operations.
type LogoImageService interface {
	GenerateImage(ctx context.Context, ownerID, brandName, industry, style, customPrompt string) (*ai.Image, error)
	EditLogo(ctx context.Context, ownerID, imageBase64, instruction string, strength float64) (*ai.Image, error)
}

// UserService defines profile, brand voice, and history operations.
type UserService interface {
	PersistenceEnabled() bool
	Sync(ctx context.Context, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error)
	Get(ctx context.Context, externalID string) (*domain.UserProfile, error)
	BrandVoice(ctx context.Context, externalID string) (domain.BrandVoice, error)
	SetBrandVoice(ctx context.Context, externalID string, voice domain.BrandVoice) error
	History(ctx context.Context, externalID string, limit int) ([]domain.GenerationRecord, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for text generation, logo images, and
// user profiles. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	textSvc TextService
	logoSvc LogoImageService
	userSvc UserService

	// modelName is echoed to clients as model_used.
	modelName string
}

// New constructs a Handlers instance bound to the given services.
func New(textSvc TextService, logoSvc LogoImageService, userSvc UserService, modelName string) *Handlers {
	return &Handlers{textSvc: textSvc, logoSvc: logoSvc, userSvc: userSvc, modelName: modelName}
}

// userID extracts the caller identity from Gin context (set by upstream
// middleware) with an "X-User-ID" header fallback. An empty result means the
// caller is anonymous; generation history is skipped for anonymous callers.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}
