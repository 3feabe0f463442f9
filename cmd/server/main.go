package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chatservice "github.com/krish0326/i-backend/internal/chat/service"
	"github.com/krish0326/i-backend/internal/config"
	"github.com/krish0326/i-backend/internal/domain"
	"github.com/krish0326/i-backend/internal/handler"
	"github.com/krish0326/i-backend/internal/infra/cache"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/infra/resilience"
	"github.com/krish0326/i-backend/internal/infra/supabase"
	"github.com/krish0326/i-backend/internal/infra/ws"
	"github.com/krish0326/i-backend/internal/port"
	"github.com/krish0326/i-backend/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("upload_dir", cfg.UploadDir),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "interior-backend")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	teamCache := cache.New[[]domain.TeamMember](cfg.CacheTTL)
	projectCache := cache.New[[]domain.Project](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Supabase store ---
	if cfg.SupabaseURL == "" {
		logger.Fatal("SUPABASE_URL is required")
	}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		cb,
		resilienceCfg,
		logger,
	)

	// --- Websocket hub ---
	hub := ws.NewHub(metrics, logger)

	// --- Services ---
	chatSvc := chatservice.NewChatService(store, hub, metrics, logger)
	teamSvc := service.NewTeamService(store, teamCache, metrics, logger)
	projectSvc := service.NewProjectService(store, projectCache, metrics, logger)
	uploadSvc := service.NewUploadService(cfg.UploadDir, cfg.MaxUploadBytes, cfg.MaxConcurrency, metrics, logger)
	healthSvc := service.NewHealthService(map[string]port.Pinger{
		"supabase": store,
	}, cfg.HealthTimeout, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		ChatSvc:        chatSvc,
		TeamSvc:        teamSvc,
		ProjectSvc:     projectSvc,
		UploadSvc:      uploadSvc,
		HealthSvc:      healthSvc,
		Hub:            hub,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
