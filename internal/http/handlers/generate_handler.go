// Text generation HTTP handlers.
//
// This file exposes the one-shot text endpoints:
//   - POST /brand/generate-name   (brand name suggestions)
//   - POST /content/generate      (marketing copy)
//   - POST /sentiment/analyze     (sentiment analysis)
//   - POST /design/palette        (color palette recommendations)
//   - POST /logo/concepts         (logo design prompt concepts)
//
// Handlers validate and normalize inputs, delegate to TextService, and map
// provider failures to a 502 with a stable code. History recording happens in
// the service layer and never affects the response.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/services"
)

//
// DTOs
//

// GenerateNameRequest is the JSON payload for brand name generation.
type GenerateNameRequest struct {
	// Industry the brand operates in. Required.
	Industry string `json:"industry" binding:"required,min=2" example:"specialty coffee"`
	// Keywords to weave into suggestions. At least one required.
	Keywords []string `json:"keywords" binding:"required,min=1" example:"roast,origin,craft"`
	// Style of naming (e.g. modern, classic, playful).
	Style string `json:"style" example:"modern"`
	// TargetAudience the names should appeal to.
	TargetAudience string `json:"target_audience" example:"urban millennials"`
	// Context adds any extra constraints or background.
	Context string `json:"context" example:"launching in Berlin next spring"`
}

// GenerateNameResponse carries brand name suggestions.
type GenerateNameResponse struct {
	Success     bool   `json:"success"`
	Suggestions string `json:"suggestions"`
	ModelUsed   string `json:"model_used"`
}

// GenerateContentRequest is the JSON payload for marketing content.
type GenerateContentRequest struct {
	BrandName        string `json:"brand_name" binding:"required" example:"Emberline"`
	BrandDescription string `json:"brand_description" binding:"required,min=10" example:"Small-batch coffee roastery focused on single-origin beans"`
	ContentType      string `json:"content_type" example:"social media post"`
	TargetAudience   string `json:"target_audience" example:"urban millennials"`
	Tone             string `json:"tone" example:"warm"`
	KeyMessage       string `json:"key_message" example:"freshness you can taste"`
	CallToAction     string `json:"cta" example:"order your first bag"`
}

// GenerateContentResponse carries generated marketing copy.
type GenerateContentResponse struct {
	Success     bool   `json:"success"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	ModelUsed   string `json:"model_used"`
}

// SentimentRequest is the JSON payload for sentiment analysis.
type SentimentRequest struct {
	Text    string `json:"text" binding:"required,min=10" example:"The packaging feels premium but shipping took forever"`
	Context string `json:"context" example:"customer review"`
}

// SentimentResponse carries a sentiment analysis.
type SentimentResponse struct {
	Success   bool   `json:"success"`
	Analysis  string `json:"analysis"`
	ModelUsed string `json:"model_used"`
}

// PaletteRequest is the JSON payload for color palette recommendations.
type PaletteRequest struct {
	BrandName        string `json:"brand_name" binding:"required" example:"Emberline"`
	Industry         string `json:"industry" example:"specialty coffee"`
	BrandPersonality string `json:"brand_personality" example:"warm, artisanal"`
	TargetAudience   string `json:"target_audience" example:"urban millennials"`
	Mood             string `json:"mood" example:"cozy"`
	ExistingColors   string `json:"existing_colors" example:"#8B4513"`
}

// PaletteResponse carries palette and design system recommendations.
type PaletteResponse struct {
	Success         bool   `json:"success"`
	Recommendations string `json:"recommendations"`
	ModelUsed       string `json:"model_used"`
}

// LogoConceptsRequest is the JSON payload for logo prompt concepts.
type LogoConceptsRequest struct {
	BrandName       string `json:"brand_name" binding:"required" example:"Emberline"`
	Industry        string `json:"industry" example:"specialty coffee"`
	BrandValues     string `json:"brand_values" example:"craft, honesty, warmth"`
	Style           string `json:"style" example:"minimal"`
	IconPreferences string `json:"icon_preferences" example:"abstract flame"`
	Colors          string `json:"colors" example:"terracotta, cream"`
}

// LogoConceptsResponse carries text-to-image prompt concepts.
type LogoConceptsResponse struct {
	Success   bool   `json:"success"`
	Prompts   string `json:"prompts"`
	ModelUsed string `json:"model_used"`
}

//
// Handlers
//

// GenerateName godoc
// @ID          generateName
// @Summary     Generate brand name suggestions
// @Tags        Brand
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.GenerateNameRequest  true  "Name generation payload"
// @Success     200  {object}  handlers.GenerateNameResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /brand/generate-name [post]
func (h *Handlers) GenerateName(c *gin.Context) {
	var req GenerateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "industry and at least one keyword required")
		return
	}

	out, err := h.textSvc.BrandNames(c.Request.Context(), userID(c), req.Industry, req.Keywords, req.Style, req.TargetAudience, req.Context)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, GenerateNameResponse{Success: true, Suggestions: out, ModelUsed: h.modelName})
}

// GenerateContent godoc
// @ID          generateContent
// @Summary     Generate marketing content
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.GenerateContentRequest  true  "Content generation payload"
// @Success     200  {object}  handlers.GenerateContentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /content/generate [post]
func (h *Handlers) GenerateContent(c *gin.Context) {
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "brand_name and brand_description (min 10 chars) required")
		return
	}

	out, err := h.textSvc.MarketingContent(c.Request.Context(), userID(c),
		req.BrandName, req.BrandDescription, req.ContentType, req.TargetAudience, req.Tone, req.KeyMessage, req.CallToAction)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, GenerateContentResponse{Success: true, Content: out, ContentType: req.ContentType, ModelUsed: h.modelName})
}

// AnalyzeSentiment godoc
// @ID          analyzeSentiment
// @Summary     Analyze sentiment of a text
// @Tags        Sentiment
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SentimentRequest  true  "Sentiment payload"
// @Success     200  {object}  handlers.SentimentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /sentiment/analyze [post]
func (h *Handlers) AnalyzeSentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text (min 10 chars) required")
		return
	}

	out, err := h.textSvc.Sentiment(c.Request.Context(), userID(c), req.Text, req.Context)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, SentimentResponse{Success: true, Analysis: out, ModelUsed: h.modelName})
}

// GeneratePalette godoc
// @ID          generatePalette
// @Summary     Recommend a brand color palette
// @Tags        Design
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.PaletteRequest  true  "Palette payload"
// @Success     200  {object}  handlers.PaletteResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /design/palette [post]
func (h *Handlers) GeneratePalette(c *gin.Context) {
	var req PaletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "brand_name required")
		return
	}

	out, err := h.textSvc.Palette(c.Request.Context(), userID(c),
		req.BrandName, req.Industry, req.BrandPersonality, req.TargetAudience, req.Mood, req.ExistingColors)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, PaletteResponse{Success: true, Recommendations: out, ModelUsed: h.modelName})
}

// GenerateLogoConcepts godoc
// @ID          generateLogoConcepts
// @Summary     Generate logo design prompt concepts
// @Tags        Logo
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LogoConceptsRequest  true  "Logo concepts payload"
// @Success     200  {object}  handlers.LogoConceptsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /logo/concepts [post]
func (h *Handlers) GenerateLogoConcepts(c *gin.Context) {
	var req LogoConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "brand_name required")
		return
	}

	out, err := h.textSvc.LogoConcepts(c.Request.Context(), userID(c),
		req.BrandName, req.Industry, req.BrandValues, req.Style, req.IconPreferences, req.Colors)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, LogoConceptsResponse{Success: true, Prompts: out, ModelUsed: h.modelName})
}

// failGeneration maps a text-generation error to the right status and code.
func (h *Handlers) failGeneration(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyPrompt):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt content required")
	default:
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, err.Error())
	}
}
