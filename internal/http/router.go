// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Static frontend served for non-API paths, JSON 404 for API paths
package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/FAde16-lang/BrandCraft/internal/config"
	"github.com/FAde16-lang/BrandCraft/internal/http/handlers"
	"github.com/FAde16-lang/BrandCraft/internal/http/middleware"
	"github.com/FAde16-lang/BrandCraft/internal/services"
)

// Body size caps. Logo editing carries inline base64 image data, so its
// endpoint gets a larger allowance than the JSON-only endpoints.
const (
	maxJSONBodyBytes  = 1 << 20
	maxImageBodyBytes = 20 << 20
)

// Deps carries the constructed application services injected into the
// router. Everything is built once in main; the router only wires.
type Deps struct {
	Text  handlers.TextService
	Logo  handlers.LogoImageService
	Users handlers.UserService

	// ModelName is echoed to clients as model_used.
	ModelName string
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip compression (skipping /metrics)
//  8. Rate limiter (per user/IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	apiBase := cfg.APIBasePath

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction of provider credential headers
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key", "X-Goog-Api-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body size limits
	r.Use(limitBody(apiBase, maxJSONBodyBytes, maxImageBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compression. Prometheus handles its own encoding.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks: JSON 404 for API paths, static frontend for everything else.
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if isAPIPath(p, apiBase) || cfg.StaticDir == "" || c.Request.Method != http.MethodGet {
			handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
			return
		}
		serveStatic(c, cfg.StaticDir, p)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	h := handlers.New(deps.Text, deps.Logo, deps.Users, deps.ModelName)

	// Public API
	api := groupWithPrefix(r, apiBase)
	{
		// Frontend bootstrap config. Public identifiers only.
		api.GET("/config", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"google_client_id": cfg.GoogleClientID})
		})

		// Generation
		api.POST("/brand/generate-name", h.GenerateName)
		api.POST("/content/generate", h.GenerateContent)
		api.POST("/chat", h.Chat)
		api.POST("/sentiment/analyze", h.AnalyzeSentiment)
		api.POST("/design/palette", h.GeneratePalette)

		// Logos
		api.POST("/logo/concepts", h.GenerateLogoConcepts)
		api.POST("/logo/prompt", h.GenerateLogo)
		api.POST("/logo/edit", h.EditLogo)

		// Users
		api.POST("/users/sync", h.SyncUser)
		api.GET("/users/me", h.GetMe)
		api.GET("/users/me/brand-voice", h.GetBrandVoice)
		api.PUT("/users/me/brand-voice", h.PutBrandVoice)
		api.GET("/users/me/generations", h.ListGenerations)
	}
}

// NewServices builds the default service set over the provider chains and
// store constructed in main.
func NewServices(chain services.TextCompleter, generator services.ImageGenerator, editor services.ImageEditor, store services.ProfileStore, modelName string) Deps {
	return Deps{
		Text: &services.GenerateService{
			Chain:          chain,
			Store:          store,
			ModelName:      modelName,
			MaxPromptRunes: 8000,
		},
		Logo: &services.LogoService{
			Generator: generator,
			Editor:    editor,
			Store:     store,
		},
		Users:     &services.ProfileService{Store: store},
		ModelName: modelName,
	}
}

// limitBody caps request body size with http.MaxBytesReader. The logo edit
// endpoint carries inline image data and gets the larger cap.
func limitBody(apiBase string, jsonMax, imageMax int64) gin.HandlerFunc {
	editPath := strings.TrimSuffix(apiBase, "/") + "/logo/edit"
	return func(c *gin.Context) {
		max := jsonMax
		if c.Request.URL.Path == editPath {
			max = imageMax
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

// isAPIPath reports whether p falls under the API base prefix.
func isAPIPath(p, apiBase string) bool {
	base := strings.TrimSuffix(apiBase, "/")
	if base == "" {
		return false
	}
	return p == base || strings.HasPrefix(p, base+"/")
}

// serveStatic serves a file from dir for non-API paths, falling back to
// index.html for unknown paths so client-side routing keeps working.
func serveStatic(c *gin.Context, dir, urlPath string) {
	clean := filepath.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	target := filepath.Join(dir, clean)
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		c.File(target)
		return
	}
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}
	handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
