package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/txlens/txlens/internal/abiresolve"
	"github.com/txlens/txlens/internal/config"
	"github.com/txlens/txlens/internal/fraudscan"
	"github.com/txlens/txlens/internal/handlers/cli"
	"github.com/txlens/txlens/internal/infra/reasoner/openai"
	"github.com/txlens/txlens/internal/infra/storage/redis"
	"github.com/txlens/txlens/internal/infra/verifier/etherscan"
	"github.com/txlens/txlens/internal/pkg/logger"
	"github.com/txlens/txlens/internal/pkg/telemetry"
	transporthttp "github.com/txlens/txlens/internal/pkg/transport/http"
	"github.com/txlens/txlens/internal/pkg/validator"
	"github.com/txlens/txlens/internal/txanalysis"
	"github.com/txlens/txlens/internal/txdecode"
)

// serviceName identifies this process in telemetry backends.
const serviceName = "txlens"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("telemetry: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	validator.Init()

	resolver := buildResolver(ctx, cfg)

	reasonerClient, err := openai.NewClient(
		transporthttp.NewClient(transporthttp.WithTimeout(cfg.Reasoner.Timeout)),
		cfg.Reasoner.BaseURL,
		cfg.Reasoner.APIKey,
		cfg.Reasoner.Model,
	)
	if err != nil {
		// The orchestrator cannot even attempt an assessment without the
		// credential; fail fast instead of degrading every request.
		logger.Fatal(ctx, "reasoning service configuration invalid", "error", err)
	}

	fraud, err := fraudscan.New(reasonerClient, fraudscan.WithTimeout(cfg.Reasoner.Timeout))
	if err != nil {
		logger.Fatal(ctx, "fraud assessment setup failed", "error", err)
	}

	decoder := txdecode.New()
	analysis := txanalysis.New(decoder, resolver)

	deps := cli.Dependencies{
		ListenAddress: cfg.ListenAddress,
		Decoder:       decoder,
		Analysis:      analysis,
		Fraud:         fraud,
	}

	if err := cli.Run(ctx, deps); err != nil {
		logger.Error(ctx, "txlens exited with error", "error", err)
		os.Exit(1)
	}
}

// buildResolver assembles the interface resolver from the configuration: a
// nil verifier when no API key is present, and an optional Redis cache.
func buildResolver(ctx context.Context, cfg config.Config) abiresolve.Service {
	opts := []abiresolve.Option{}

	if cfg.Verifier.GenericFallback {
		opts = append(opts, abiresolve.WithGenericFallback())
	}

	if cfg.Cache.RedisAddress != "" {
		cache, err := redis.NewClient(ctx,
			cfg.Cache.RedisAddress,
			cfg.Cache.RedisUsername,
			cfg.Cache.RedisPassword,
			cfg.Cache.RedisDB,
			cfg.Cache.TTL,
		)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		opts = append(opts, abiresolve.WithCache(cache))
	}

	var verifier abiresolve.Verifier
	if cfg.Verifier.APIKey != "" {
		client, err := etherscan.NewClient(
			transporthttp.NewClient(),
			cfg.Verifier.BaseURL,
			cfg.Verifier.APIKey,
		)
		if err != nil {
			log.Fatalf("verifier: %v", err)
		}
		verifier = client
	}

	return abiresolve.New(verifier, opts...)
}
