package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/brewery-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/brewery-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/brewery-dashboard/internal/adapter/openbrewery"
	"github.com/couchcryptid/brewery-dashboard/internal/config"
	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := openbrewery.NewClient(cfg.BreweryAPIBaseURL, cfg.FetchTimeout, cfg.RateLimitRPS, metrics, logger)
	source := openbrewery.NewCachedSource(client, cfg.CacheSize, metrics)

	opts := dashboard.Options{
		Mode: dashboard.Mode(cfg.FetchMode),
		Fetch: dashboard.FetchOptions{
			PerPage:  cfg.PerPage,
			MaxPages: cfg.MaxPages,
			Retries:  cfg.FetchRetries,
		},
		RefreshInterval: cfg.RefreshInterval,
		ViewCacheSize:   cfg.CacheSize,
	}

	// Snapshot publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var writer *kafkaadapter.SnapshotWriter
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewSnapshotWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	svc := dashboard.New(source, opts, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, cfg.CORSAllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the first snapshot, then refresh on the configured interval.
	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("dashboard service error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
