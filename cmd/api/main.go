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
	"github.com/redis/go-redis/v9"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/api/router"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/config"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/forms"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/observability/metrics"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/responses"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/site"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/voice"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/webhook"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	responses.SetFallbackPhone(cfg.FallbackPhone)

	logger.Info("starting driveway services site",
		"env", cfg.Env,
		"port", cfg.Port,
		"webhook_configured", cfg.WebhookURL != "",
	)
	if cfg.WebhookURL == "" {
		logger.Warn("CHAT_WEBHOOK_URL is not set; chat replies will fall back to the apology messages")
	}

	registry := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatMetrics(registry)

	// Transcripts live in Redis when an address is configured, otherwise
	// in process memory.
	var transcript chat.TranscriptStore = chat.NewMemoryTranscriptStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, using in-memory transcripts", "error", err, "addr", cfg.RedisAddr)
		} else {
			transcript = chat.NewRedisTranscriptStore(redisClient)
			logger.Info("using redis transcript store", "addr", cfg.RedisAddr)
		}
	}

	webhookClient := webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout, logger.Named("webhook"), chatMetrics)
	engine := webhook.NewEngine(webhookClient, webhook.Website{
		Name:   cfg.WebsiteName,
		Domain: cfg.WebsiteDomain,
	})

	siteHandler, err := site.NewHandler(cfg.WebsiteName, cfg.FallbackPhone, logger)
	if err != nil {
		logger.Error("failed to load site templates", "error", err)
		os.Exit(1)
	}

	r := router.New(router.Config{
		Logger:             logger,
		Site:               siteHandler,
		Chat:               chat.NewHandler(engine, transcript, logger.Named("chat"), chatMetrics),
		Voice:              voice.NewHandler(logger.Named("voice")),
		Forms:              forms.NewHandler(logger.Named("forms")),
		Registry:           registry,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSec:    cfg.RateLimitPerSec,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// No blanket write timeout; chat fallback requests can hold the
		// connection for the full webhook round-trip.
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}
