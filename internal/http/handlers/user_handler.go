// User profile HTTP handlers.
//
//   - POST /users/sync               (upsert profile from identity claims)
//   - GET  /users/me                 (fetch profile)
//   - GET  /users/me/brand-voice     (read brand voice preferences)
//   - PUT  /users/me/brand-voice     (replace brand voice preferences)
//   - GET  /users/me/generations     (recent generation history)
//
// All endpoints degrade gracefully without persistence: reads return neutral
// results and writes succeed as no-ops.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/domain"
	"github.com/FAde16-lang/BrandCraft/internal/services"
	"github.com/FAde16-lang/BrandCraft/internal/utils"
)

//
// DTOs
//

// SyncUserRequest carries verified identity claims to upsert a profile.
type SyncUserRequest struct {
	// ExternalID is the stable identity subject. Required.
	ExternalID  string `json:"external_id" binding:"required" example:"108234925301239846152"`
	Email       string `json:"email" example:"casey@example.com"`
	DisplayName string `json:"name" example:"Casey Andersson"`
	PictureURL  string `json:"picture" example:"https://lh3.example.com/photo.jpg"`
}

// SyncUserResponse reports the outcome of a profile sync.
type SyncUserResponse struct {
	Status string `json:"status" example:"ok"`
	IsNew  bool   `json:"is_new"`
}

// ProfileResponse is the public shape of a user profile.
type ProfileResponse struct {
	ExternalID  string            `json:"external_id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"name"`
	PictureURL  string            `json:"picture"`
	BrandVoice  domain.BrandVoice `json:"brand_voice"`
	CreatedAt   time.Time         `json:"created_at"`
	LastLogin   time.Time         `json:"last_login"`
}

// BrandVoiceRequest replaces the caller's brand voice preferences.
type BrandVoiceRequest struct {
	Personality    string `json:"personality" example:"warm, artisanal"`
	Industry       string `json:"industry" example:"specialty coffee"`
	TargetAudience string `json:"target_audience" example:"urban millennials"`
	Tone           string `json:"tone" example:"conversational"`
}

// BrandVoiceResponse wraps stored brand voice preferences.
type BrandVoiceResponse struct {
	BrandVoice domain.BrandVoice `json:"brand_voice"`
}

// HistoryResponse carries recent generation records, newest first.
type HistoryResponse struct {
	Generations []domain.GenerationRecord `json:"generations"`
	Count       int                       `json:"count"`
}

// callerExternalID resolves the caller identity, preferring the context /
// header identity and falling back to the external_id query parameter.
func callerExternalID(c *gin.Context) string {
	if id := userID(c); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query("external_id"))
}

//
// Handlers
//

// SyncUser godoc
// @ID          syncUser
// @Summary     Sync a user profile from identity claims
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SyncUserRequest  true  "Identity claims"
// @Success     200  {object}  handlers.SyncUserResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Sync failed"
// @Router      /users/sync [post]
func (h *Handlers) SyncUser(c *gin.Context) {
	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "external_id required")
		return
	}

	_, isNew, err := h.userSvc.Sync(c.Request.Context(), req.ExternalID, req.Email, req.DisplayName, req.PictureURL)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSyncFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, SyncUserResponse{Status: "ok", IsNew: isNew})
}

// GetMe godoc
// @ID          getMe
// @Summary     Fetch the caller's profile
// @Tags        Users
// @Produce     json
// @Param       X-User-ID    header  string  false  "Caller identity"
// @Param       external_id  query   string  false  "Caller identity (fallback)"
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /users/me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	id := callerExternalID(c)
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "caller identity required")
		return
	}

	profile, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ProfileResponse{
		ExternalID:  profile.ExternalID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		PictureURL:  profile.PictureURL,
		BrandVoice:  profile.Voice,
		CreatedAt:   profile.CreatedAt,
		LastLogin:   profile.LastLogin,
	})
}

// GetBrandVoice godoc
// @ID          getBrandVoice
// @Summary     Read the caller's brand voice preferences
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.BrandVoiceResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing identity"
// @Router      /users/me/brand-voice [get]
func (h *Handlers) GetBrandVoice(c *gin.Context) {
	id := callerExternalID(c)
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "caller identity required")
		return
	}

	voice, err := h.userSvc.BrandVoice(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, BrandVoiceResponse{BrandVoice: voice})
}

// PutBrandVoice godoc
// @ID          putBrandVoice
// @Summary     Replace the caller's brand voice preferences
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.BrandVoiceRequest  true  "Brand voice fields"
// @Success     204  "Updated"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /users/me/brand-voice [put]
func (h *Handlers) PutBrandVoice(c *gin.Context) {
	id := callerExternalID(c)
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "caller identity required")
		return
	}

	var req BrandVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}

	voice := domain.BrandVoice{
		Personality:    req.Personality,
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
	}
	if err := h.userSvc.SetBrandVoice(c.Request.Context(), id, voice); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ListGenerations godoc
// @ID          listGenerations
// @Summary     List the caller's recent generations
// @Tags        Users
// @Produce     json
// @Param       limit  query  int  false  "Max records"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.HistoryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "List failed"
// @Router      /users/me/generations [get]
func (h *Handlers) ListGenerations(c *gin.Context) {
	id := callerExternalID(c)
	if id == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "caller identity required")
		return
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	records, err := h.userSvc.History(c.Request.Context(), id, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, HistoryResponse{Generations: records, Count: len(records)})
}
