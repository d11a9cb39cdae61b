// Package main is the entrypoint for the ReviewLens API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/api"
	"github.com/reviewlens/reviewlens/internal/api/handler"
	mw "github.com/reviewlens/reviewlens/internal/api/middleware"
	"github.com/reviewlens/reviewlens/internal/api/response"
	"github.com/reviewlens/reviewlens/internal/cache"
	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/dataset"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "dataset_path", cfg.Dataset.Path, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Load the dataset once for the process lifetime. A load failure
	// is reported and the server degrades to an empty table: every view
	// then renders "0 records" instead of crashing.
	table, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		slog.Error("dataset load failed, serving empty table", "path", cfg.Dataset.Path, "error", err)
		table = dataset.Empty()
	} else {
		slog.Info("dataset loaded", "records", table.Len(), "dataset_id", table.ID())
	}

	// 3. Connect the optional summary cache
	var summaryCache cache.Cache = cache.Noop{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		summaryCache = redisCache
		slog.Info("redis connected")
	} else {
		slog.Info("redis not configured, summary caching disabled")
	}

	// 4. Build the aggregation engine over the immutable table
	engine := analytics.New(table)

	// 5. Build router with dependencies
	deps := api.Dependencies{
		RateLimit:    mw.NewRateLimit(summaryCache, cfg.API.RateLimitPerMin),
		SummaryCache: mw.NewSummaryCache(summaryCache, table.ID(), cfg.Redis.SummaryTTL),

		HealthHandler: healthHandler(table, summaryCache),

		OverviewHandler:           handler.NewOverviewHandler(engine),
		PreprocessingStatsHandler: handler.NewPreprocessingStatsHandler(engine),
		PreprocessingSample:       handler.NewPreprocessingSampleHandler(engine),
		ListClustersHandler:       handler.NewListClustersHandler(engine),
		GetClusterHandler:         handler.NewGetClusterHandler(engine),
		SentimentHandler:          handler.NewSentimentHandler(engine),
		SentimentDetailHandler:    handler.NewSentimentDetailHandler(engine),
		SentimentSamplesHandler:   handler.NewSentimentSamplesHandler(engine),
	}

	router := api.NewRouter(deps)

	// 6. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler reports dataset and cache state. An empty dataset or an
// unreachable cache marks the service degraded; it keeps serving either way.
func healthHandler(table *dataset.Table, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"dataset": "ok",
			"cache":   "ok",
		}

		if table.Len() == 0 {
			checks["dataset"] = "empty"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		status := "ok"
		if checks["dataset"] != "ok" || checks["cache"] != "ok" {
			status = "degraded"
		}

		response.JSON(w, map[string]any{
			"status":     status,
			"dataset_id": table.ID(),
			"records":    table.Len(),
			"services":   checks,
		})
	}
}
