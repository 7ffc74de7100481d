// Command server runs the BrandCraft HTTP API.
//
// Startup order: load .env, read configuration, configure logging, set up
// optional tracing, open the optional SQLite store, construct the provider
// chains, wire the router, then serve with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/config"
	httpapi "github.com/FAde16-lang/BrandCraft/internal/http"
	"github.com/FAde16-lang/BrandCraft/internal/observability"
	"github.com/FAde16-lang/BrandCraft/internal/repo"
	"github.com/FAde16-lang/BrandCraft/internal/services"
	"github.com/FAde16-lang/BrandCraft/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	// Persistence is optional. A missing path or a failed open both degrade
	// to the no-op store; the API keeps serving generation requests.
	var store services.ProfileStore = &services.NoopStore{}
	if cfg.PersistenceEnabled() {
		db, err := repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DBPath).
				Msg("could not open database; continuing without persistence")
		} else if err := repo.AutoMigrate(db); err != nil {
			log.Warn().Err(err).Msg("migration failed; continuing without persistence")
		} else {
			store = &services.GormStore{DB: db}
			log.Info().Str("path", cfg.DBPath).Msg("persistence enabled")
		}
	} else {
		log.Info().Msg("DB_PATH not set; profiles and history disabled")
	}

	// Text providers: Groq is mandatory, Gemini joins when its key is set.
	groq := ai.NewGroqProvider(cfg.Providers.GroqAPIKey, cfg.Providers.ModelName, cfg.Providers.CallTimeout)
	var secondary ai.TextProvider
	if cfg.Providers.GoogleAPIKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.Providers.GoogleAPIKey, cfg.Providers.GeminiModel, cfg.Providers.CallTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("could not initialize Gemini; continuing with Groq only")
		} else {
			secondary = gemini
			defer gemini.Close()
		}
	}
	textChain := ai.NewTextChain(groq, secondary)

	// Image providers in priority order; the keyless constructor guarantees
	// the chain always yields a result.
	stability := ai.NewStabilityProvider(cfg.Providers.StabilityAPIKey, cfg.Providers.CallTimeout)
	imageChain := ai.NewImageChain(
		stability,
		ai.NewHFProvider(cfg.Providers.HFAPIToken, cfg.Providers.SDXLModel, cfg.Providers.CallTimeout),
		ai.NewPollinationsProvider(),
	)

	// Logo editing requires the Stability key.
	var editor services.ImageEditor
	if stability.Available() {
		editor = stability
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	deps := httpapi.NewServices(textChain, imageChain, editor, store, cfg.Providers.ModelName)
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("model", cfg.Providers.ModelName).
			Bool("gemini", secondary != nil).
			Bool("stability", stability.Available()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
