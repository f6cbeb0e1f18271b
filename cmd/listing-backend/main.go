package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/listing-magic/content-backend/internal/core/documents"
	"github.com/listing-magic/content-backend/internal/core/generation"
	"github.com/listing-magic/content-backend/internal/core/refine"
	"github.com/listing-magic/content-backend/internal/costs"
	"github.com/listing-magic/content-backend/internal/platform/config"
	"github.com/listing-magic/content-backend/internal/platform/observability"
	"github.com/listing-magic/content-backend/internal/server"
	db "github.com/listing-magic/content-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := costs.NewTracker(costs.Thresholds{
		PerRequest: cfg.CostAlertPerRequest,
		PerHour:    cfg.CostAlertPerHour,
		PerDay:     cfg.CostAlertPerDay,
	}, &logger)

	var (
		usageStore  generation.UsageStore
		usageReader server.UsageReader
		pinger      observability.Pinger
	)

	if cfg.PostgresDSN != "" {
		database, err := db.NewWithOptions(ctx, cfg.PostgresDSN, db.PoolOptions{
			MaxConns:          cfg.DBMaxConnections,
			MinConns:          cfg.DBMinConnections,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		}, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}

		usageStore = database
		usageReader = database
		pinger = database
	}

	recorder := generation.NewUsageRecorder(tracker, usageStore, &logger)

	fetcher := generation.NewImageFetcher(cfg.FetchTimeout)

	primary := generation.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.RateLimitRPS, &logger)

	fallback, err := generation.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RateLimitRPS, fetcher, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini provider")
	}

	orchestrator := generation.NewOrchestrator(primary, fallback, recorder, &logger)

	completer := refine.NewAnthropicCompleter(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.RateLimitRPS, recorder, &logger)
	refiner := refine.New(completer, &logger)

	processor := documents.NewProcessor(cfg.FetchTimeout, nil, &logger)

	// Health and metrics on a separate port.
	go func() {
		if err := observability.NewServer(pinger, cfg.HealthPort, &logger).Start(ctx); err != nil {
			logger.Error().Err(err).Msg("health check server error")
		}
	}()

	api := server.New(
		orchestrator,
		refiner,
		completer,
		processor,
		tracker,
		usageReader,
		server.Models{
			OpenAI:    cfg.OpenAIModel,
			Gemini:    cfg.GeminiModel,
			Anthropic: cfg.AnthropicModel,
		},
		cfg.AllowedOrigins,
		uint16(cfg.Port),
		&logger,
	)

	if err := api.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
