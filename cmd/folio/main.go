package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/domains"
	"github.com/foliohq/folio/internal/notify"
	"github.com/foliohq/folio/internal/provider/vercel"
	"github.com/foliohq/folio/internal/routing"
	"github.com/foliohq/folio/internal/server"
	"github.com/foliohq/folio/internal/store/postgres"
	redisstore "github.com/foliohq/folio/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Initialize structured logging from environment.
	logLevel := os.Getenv("FOLIO_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("FOLIO_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL and bring the schema up to date.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ApplyMigrations(); err != nil {
		return err
	}

	// Connect to Redis when a lookup cache is configured. Without it the
	// host router resolves against PostgreSQL on every request.
	var cache *redisstore.DomainCache
	if cfg.Redis.Addr != "" {
		cache, err = redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()
	} else {
		log.Warn().Msg("FOLIO_REDIS_ADDR not set, hostname lookup cache disabled")
	}

	// Domain provider client.
	prov := vercel.New(cfg.Provider.Token, cfg.Provider.ProjectID, cfg.Provider.TeamID, cfg.Provider.Timeout)

	// Operator alerting via Slack, when configured.
	var alerts domains.Alerter
	if cfg.Slack.BotToken != "" && cfg.Slack.AlertChannel != "" {
		alerts = notify.NewSlackAlerter(slacklib.New(cfg.Slack.BotToken), cfg.Slack.AlertChannel)
		log.Info().Str("channel", cfg.Slack.AlertChannel).Msg("slack operator alerts enabled")
	}

	// Domain lifecycle manager and hostname resolver. The nil-interface
	// dance keeps the service's nil checks working when pieces are absent.
	var invalidator domains.Invalidator
	var resolverCache routing.Cache
	if cache != nil {
		invalidator = cache
		resolverCache = cache
	}

	domainSvc := domains.NewService(store.Tenants(), prov, invalidator, alerts, cfg.Platform.AppDomain)
	resolver := routing.NewCachedResolver(store.Tenants(), resolverCache)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, resolver, domainSvc)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("app_domain", cfg.Platform.AppDomain).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
