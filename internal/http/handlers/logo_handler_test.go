package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/services"
)

func newLogoRouter(logo LogoImageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubTextSvc{}, logo, stubUserSvc{}, "llama-3.3-70b-versatile")
	r := gin.New()
	r.POST("/logo/prompt", h.GenerateLogo)
	r.POST("/logo/edit", h.EditLogo)
	return r
}

func TestGenerateLogo_Success_ReportsProvider(t *testing.T) {
	svc := stubLogoSvc{generate: func(_ context.Context, _, brandName, _, _, _ string) (*ai.Image, error) {
		if brandName != "Emberline" {
			t.Fatalf("brand = %q", brandName)
		}
		return &ai.Image{URL: "https://image.pollinations.ai/prompt/x", Provider: "Pollinations"}, nil
	}}
	r := newLogoRouter(svc)

	w := postJSON(t, r, "/logo/prompt", `{"brand_name":"Emberline","industry":"coffee","style":"minimal"}`, "u1")
	if w.Code != http.StatusOK {
		t.Fatalf("generate -> %d body=%s", w.Code, w.Body.String())
	}
	var out LogoImageResponse
	decodeBody(t, w, &out)
	if !out.Success || out.ModelUsed != "Pollinations" || out.ImageURL == "" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestGenerateLogo_EmptyInputs(t *testing.T) {
	svc := stubLogoSvc{generate: func(context.Context, string, string, string, string, string) (*ai.Image, error) {
		return nil, services.ErrEmptyPrompt
	}}
	r := newLogoRouter(svc)

	w := postJSON(t, r, "/logo/prompt", `{}`, "u1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty inputs -> %d", w.Code)
	}
	var er ErrorResponse
	decodeBody(t, w, &er)
	if er.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", er.Code)
	}
}

func TestEditLogo_DefaultStrength(t *testing.T) {
	var gotStrength float64
	svc := stubLogoSvc{edit: func(_ context.Context, _, _, _ string, strength float64) (*ai.Image, error) {
		gotStrength = strength
		return &ai.Image{URL: "data:image/png;base64,AA==", Provider: "Stability AI SDXL"}, nil
	}}
	r := newLogoRouter(svc)

	w := postJSON(t, r, "/logo/edit", `{"image_base64":"AAAA","edit_prompt":"make it angular"}`, "u1")
	if w.Code != http.StatusOK {
		t.Fatalf("edit -> %d body=%s", w.Code, w.Body.String())
	}
	if gotStrength != defaultEditStrength {
		t.Fatalf("strength = %v, want %v", gotStrength, defaultEditStrength)
	}
	var out LogoEditResponse
	decodeBody(t, w, &out)
	if !out.Success || out.EditApplied != "make it angular" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestEditLogo_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"editor missing", services.ErrEditorNotConfigured, http.StatusInternalServerError, ErrCodeProviderNotConfigured},
		{"bad image", services.ErrInvalidImage, http.StatusBadRequest, ErrCodeBadRequest},
		{"bad strength", services.ErrInvalidStrength, http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := stubLogoSvc{edit: func(context.Context, string, string, string, float64) (*ai.Image, error) {
				return nil, tc.err
			}}
			r := newLogoRouter(svc)
			w := postJSON(t, r, "/logo/edit", `{"image_base64":"AAAA","edit_prompt":"x","strength":0.5}`, "u1")
			if w.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantCode)
			}
			var er ErrorResponse
			decodeBody(t, w, &er)
			if er.Code != tc.wantErr {
				t.Fatalf("code = %q, want %q", er.Code, tc.wantErr)
			}
		})
	}
}

func TestEditLogo_MissingFields(t *testing.T) {
	r := newLogoRouter(stubLogoSvc{})
	w := postJSON(t, r, "/logo/edit", `{"edit_prompt":"x"}`, "u1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing image -> %d", w.Code)
	}
}
