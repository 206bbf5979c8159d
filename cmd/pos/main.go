package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	_ "github.com/tair/pos-engine/docs"
	catalogdomain "github.com/tair/pos-engine/internal/catalog/domain"
	catalogrepo "github.com/tair/pos-engine/internal/catalog/repository"
	"github.com/tair/pos-engine/internal/pos"
	"github.com/tair/pos-engine/kafka"
	"github.com/tair/pos-engine/pkg/config"
	"github.com/tair/pos-engine/pkg/database"
	"github.com/tair/pos-engine/pkg/logger"
	"github.com/tair/pos-engine/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting POS service")

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := pos.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	reportDB, err := database.NewReportingConnection(cfg.Reporting)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to reporting database")
	}
	defer reportDB.Close()

	events, closeEvents := newEventPublisher(cfg)
	defer closeEvents()

	cache, closeCache := newListingCache(cfg)
	defer closeCache()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.DBName),
	)

	// Initialize router with Wire DI
	handler, err := pos.InitializeRouter(cfg, db, reportDB, cache, events, registry)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
}

func newEventPublisher(cfg *config.Config) (kafka.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("No Kafka brokers configured, sale events are dropped")
		return kafka.NopPublisher{}, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Kafka unavailable, sale events are dropped")
		return kafka.NopPublisher{}, func() {}
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka producer")
		}
	}
}

func newListingCache(cfg *config.Config) (catalogdomain.ListingCache, func()) {
	if cfg.RedisAddr == "" {
		return catalogrepo.NopListingCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, catalog cache disabled")
		_ = client.Close()
		return catalogrepo.NopListingCache{}, func() {}
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CatalogCacheTTL).Msg("Catalog cache enabled")
	return catalogrepo.NewRedisListingCache(client, cfg.CatalogCacheTTL), func() { _ = client.Close() }
}
