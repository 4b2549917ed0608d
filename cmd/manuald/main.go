package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mdhttp "github.com/onboardhq/manuald/internal/adapter/http"
	mdotel "github.com/onboardhq/manuald/internal/adapter/otel"
	"github.com/onboardhq/manuald/internal/adapter/postgres"
	"github.com/onboardhq/manuald/internal/adapter/ristretto"
	"github.com/onboardhq/manuald/internal/config"
	"github.com/onboardhq/manuald/internal/logger"
	"github.com/onboardhq/manuald/internal/middleware"
	"github.com/onboardhq/manuald/internal/service"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	cache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	shutdownTracer := mdotel.InitTracer(cfg.Logging.Service)
	defer func() { _ = shutdownTracer(ctx) }()

	metrics, err := mdotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	nonceSvc := service.NewNonceService(cache, &cfg.Auth)
	sectionSvc := service.NewSectionService(store)
	importerSvc := service.NewImporterService(store, cfg.Import.MaxFileBytes)
	flashSvc := service.NewFlashService(cache, cfg.Import.FlashTTL)

	if cfg.Auth.Enabled {
		if err := authSvc.EnsureAdmin(ctx); err != nil {
			return fmt.Errorf("admin bootstrap: %w", err)
		}
	}

	// --- HTTP ---

	handlers := &mdhttp.Handlers{
		Auth:           authSvc,
		Nonces:         nonceSvc,
		Sections:       sectionSvc,
		Importer:       importerSvc,
		Flash:          flashSvc,
		Metrics:        metrics,
		ImportPagePath: cfg.Server.ImportPagePath,
		MaxUploadBytes: cfg.Import.MaxFileBytes,
	}

	r := chi.NewRouter()

	r.Use(mdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(mdhttp.SecurityHeaders)
	r.Use(mdhttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mdotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(middleware.Auth(authSvc, cfg.Auth.Enabled))

	r.Get("/health", healthHandler())

	mdhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler() http.HandlerFunc {
	type healthStatus struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthStatus{Status: "ok", Service: "manuald", Version: version})
	}
}
