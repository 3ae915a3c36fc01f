package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/beach-safety-advisor/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/beach-safety-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/beach-safety-advisor/internal/adapter/openweather"
	"github.com/couchcryptid/beach-safety-advisor/internal/adapter/rediscache"
	"github.com/couchcryptid/beach-safety-advisor/internal/advisor"
	"github.com/couchcryptid/beach-safety-advisor/internal/config"
	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	"github.com/couchcryptid/beach-safety-advisor/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := openweather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout, cfg.WeatherRetryMax, metrics, logger)

	// Cache backend: Redis when configured, otherwise in-process LRU.
	var store openweather.Store
	var redisStore *rediscache.Store
	if cfg.RedisEnabled() {
		redisStore = rediscache.New(cfg.RedisAddr)
		if err := redisStore.Ping(context.Background()); err != nil {
			logger.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = redisStore
		logger.Info("redis observation cache enabled", "addr", cfg.RedisAddr)
	} else {
		store = openweather.NewMemoryStore(cfg.CacheSize)
		logger.Info("in-memory observation cache enabled", "size", cfg.CacheSize)
	}
	source := openweather.NewCachedSource(client, store, cfg.CacheTTL, metrics, logger)

	// Report publishing (feature-flagged via KAFKA_BROKERS).
	var publisher advisor.ReportPublisher
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublishEnabled.Set(1)
		logger.Info("kafka report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportsTopic)
	} else {
		logger.Info("kafka report publishing disabled")
	}

	a := advisor.New(domain.DefaultBeaches(), source, publisher, cfg.Timezone, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, a, a, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
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
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
