package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/socialpulse/postfilter/internal/redis"
	"github.com/socialpulse/postfilter/internal/setup"
	"github.com/socialpulse/postfilter/internal/storage"
	"github.com/socialpulse/postfilter/internal/stream"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire the filter pipeline
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Storage for both partitions
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open store")
	}
	defer store.Close()

	// Seed the watch list from env so collector runs pick it up
	if accounts := os.Getenv("WATCHED_ACCOUNTS"); accounts != "" {
		for _, account := range strings.Split(accounts, ",") {
			account = strings.TrimSpace(account)
			if account == "" {
				continue
			}
			if err := store.AddWatchedAccount(ctx, account); err != nil {
				log.Warn().Err(err).Str("account", account).Msg("Failed to add watched account")
			}
		}
	}

	// Redis client
	streamCfg := stream.NewStreamConfig(
		cfg.RedisAddr,         // "localhost:6379"
		"posts",               // stream name
		"post-filter",         // consumer group
		os.Getenv("HOSTNAME"), // unique consumer name
	)

	redisClient, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	consumer := stream.NewConsumer(redisClient, streamCfg, deps.Filter, store, &logger)

	// Setup consumer
	err = consumer.Setup(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	log.Info().Msg("Shutting down worker")

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop consumer")
	}
}
