// Logo image HTTP handlers.
//
//   - POST /logo/prompt  (text-to-image through the provider fallback chain)
//   - POST /logo/edit    (image-to-image edit of an uploaded logo)
//
// The fallback chain for generation ends in a keyless URL provider, so
// generation requests do not fail on upstream errors. Editing requires the
// Stability backend and returns provider_not_configured without it.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/services"
)

// defaultEditStrength applies when the caller omits strength.
const defaultEditStrength = 0.7

// LogoPromptRequest is the JSON payload for logo image generation.
type LogoPromptRequest struct {
	// BrandName to render. Required unless a custom prompt is supplied.
	BrandName string `json:"brand_name" example:"Emberline"`
	Industry  string `json:"industry" example:"specialty coffee"`
	Style     string `json:"style" example:"minimal"`
	// Prompt overrides the composed prompt when set.
	Prompt string `json:"prompt" example:"Minimal flame mark, terracotta on cream"`
}

// LogoImageResponse carries a generated or edited logo image.
type LogoImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url"`
	// ModelUsed names the image provider that produced the result.
	ModelUsed string `json:"model_used"`
}

// LogoEditRequest is the JSON payload for editing an existing logo.
type LogoEditRequest struct {
	// ImageBase64 is the source logo as base64 PNG data (bare or data URL).
	ImageBase64 string `json:"image_base64" binding:"required"`
	// EditPrompt describes the requested change. Required.
	EditPrompt string `json:"edit_prompt" binding:"required,min=1" example:"make the flame more angular"`
	// Strength in (0,1] controls how far the result may depart from the
	// source. Defaults to 0.7 when omitted.
	Strength *float64 `json:"strength"`
}

// LogoEditResponse carries an edited logo image.
type LogoEditResponse struct {
	Success     bool   `json:"success"`
	ImageURL    string `json:"image_url"`
	EditApplied string `json:"edit_applied"`
}

// GenerateLogo godoc
// @ID          generateLogo
// @Summary     Generate a logo image
// @Tags        Logo
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LogoPromptRequest  true  "Logo generation payload"
// @Success     200  {object}  handlers.LogoImageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /logo/prompt [post]
func (h *Handlers) GenerateLogo(c *gin.Context) {
	var req LogoPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}

	img, err := h.logoSvc.GenerateImage(c.Request.Context(), userID(c), req.BrandName, req.Industry, req.Style, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "brand_name or prompt required")
		default:
			fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, LogoImageResponse{Success: true, ImageURL: img.URL, ModelUsed: img.Provider})
}

// EditLogo godoc
// @ID          editLogo
// @Summary     Edit an existing logo image
// @Tags        Logo
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LogoEditRequest  true  "Logo edit payload"
// @Success     200  {object}  handlers.LogoEditResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Editor not configured"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /logo/edit [post]
func (h *Handlers) EditLogo(c *gin.Context) {
	var req LogoEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image_base64 and edit_prompt required")
		return
	}

	strength := defaultEditStrength
	if req.Strength != nil {
		strength = *req.Strength
	}

	img, err := h.logoSvc.EditLogo(c.Request.Context(), userID(c), req.ImageBase64, req.EditPrompt, strength)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEditorNotConfigured):
			fail(c, http.StatusInternalServerError, ErrCodeProviderNotConfigured, "image editing requires a Stability AI key")
		case errors.Is(err, services.ErrInvalidImage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image_base64 must be valid base64 image data")
		case errors.Is(err, services.ErrInvalidStrength):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "strength must be in (0,1]")
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "edit_prompt required")
		default:
			fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, LogoEditResponse{Success: true, ImageURL: img.URL, EditApplied: req.EditPrompt})
}
