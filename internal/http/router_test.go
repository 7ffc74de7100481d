package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/config"
	"github.com/FAde16-lang/BrandCraft/internal/services"
)

// --- tiny fakes wired through NewServices ---

type fakeChain struct{}

func (fakeChain) Complete(context.Context, ai.TextRequest) (string, string, error) {
	return "generated text", "Groq", nil
}

type fakeImageChain struct{}

func (fakeImageChain) Generate(context.Context, string) (*ai.Image, error) {
	return &ai.Image{URL: "https://img/x", Provider: "Pollinations"}, nil
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api",
		RateRPS:     100,
		RateBurst:   50,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	deps := NewServices(fakeChain{}, fakeImageChain{}, nil, services.NewNoopStore(), "llama-3.3-70b-versatile")
	RegisterRoutes(r, deps, cfg)
	return r
}

func TestRegisterRoutes_Health_Metrics_Fallbacks(t *testing.T) {
	r := newTestRouter(testConfig())

	// /health
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	// Request correlation header present
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// Unknown API path → JSON 404 envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /api/nope = %d", w.Code)
	}
	var er struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er.Code != "not_found" {
		t.Fatalf("api 404 envelope: %v body=%s", err, w.Body.String())
	}

	// NoMethod → 405
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health = %d", w.Code)
	}
}

func TestRegisterRoutes_GenerationEndToEnd(t *testing.T) {
	r := newTestRouter(testConfig())

	body := bytes.NewBufferString(`{"industry":"specialty coffee","keywords":["roast"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/brand/generate-name", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("generate-name = %d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Success     bool   `json:"success"`
		Suggestions string `json:"suggestions"`
		ModelUsed   string `json:"model_used"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !out.Success || out.Suggestions != "generated text" || out.ModelUsed != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestRegisterRoutes_ConfigEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.GoogleClientID = "client-123"
	r := newTestRouter(cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/config = %d", w.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out["google_client_id"] != "client-123" {
		t.Fatalf("config body: %v", out)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://example.com"}
	r := newTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("allowed origin echo = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "http://evil.example" {
		t.Fatalf("disallowed origin echoed: %q", got)
	}
}

func TestRegisterRoutes_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600); err != nil {
		t.Fatalf("write index: %v", err)
	}
	cfg := testConfig()
	cfg.StaticDir = dir
	r := newTestRouter(cfg)

	// Client-side route falls back to index.html
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("app")) {
		t.Fatalf("spa fallback: code=%d body=%q", w.Code, w.Body.String())
	}

	// API paths never fall back to the frontend
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("api path served static: %d", w.Code)
	}
}

func Test_isAPIPath(t *testing.T) {
	cases := []struct {
		p, base string
		want    bool
	}{
		{"/api/chat", "/api", true},
		{"/api", "/api", true},
		{"/apichat", "/api", false},
		{"/dashboard", "/api", false},
		{"/anything", "", false},
	}
	for _, tc := range cases {
		if got := isAPIPath(tc.p, tc.base); got != tc.want {
			t.Fatalf("isAPIPath(%q, %q) = %v", tc.p, tc.base, got)
		}
	}
}

func Test_limitBody_CapsJSONRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody("/api", 64, maxImageBodyBytes))
	r.POST("/api/chat", func(c *gin.Context) {
		var m map[string]any
		if err := c.ShouldBindJSON(&m); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	big := bytes.NewBufferString(`{"message":"` + string(bytes.Repeat([]byte("a"), 200)) + `"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", big)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body = %d", w.Code)
	}

	small := bytes.NewBufferString(`{"message":"hi"}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/chat", small)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("small body = %d", w.Code)
	}
}
