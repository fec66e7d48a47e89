package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/philippdrebes/MSCIDS-CIP02/config"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/dupes"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/match"
	"github.com/philippdrebes/MSCIDS-CIP02/internal/pipeline"
	"github.com/philippdrebes/MSCIDS-CIP02/logger"
	"github.com/philippdrebes/MSCIDS-CIP02/services/cache"
	"github.com/philippdrebes/MSCIDS-CIP02/services/ingest"
	"github.com/philippdrebes/MSCIDS-CIP02/services/publisher"
	"github.com/philippdrebes/MSCIDS-CIP02/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("gpx_min_match_score", cfg.GpxMinMatchScore).
		Int("duplicate_threshold", cfg.DuplicateThreshold).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	// Initialize services
	services := initializeServices(ctx, &cfg)
	defer services.Cleanup()

	// Assemble the pipeline
	matcher := match.New(match.WithMinScore(cfg.GpxMinMatchScore))
	detector := dupes.New(dupes.WithThreshold(cfg.DuplicateThreshold))
	pipe := pipeline.New(matcher, detector)

	loader := ingest.NewLoader(
		cfg.KomootRecordsFile,
		cfg.SacRecordsFile,
		cfg.SchweizmobilRecordsFile,
		cfg.GpxDir,
	)

	// Run one batch to completion
	w := worker.NewWorker(ctx, loader, pipe, services.Publisher, services.Cache)
	if err := w.Run(); err != nil {
		log.Fatal().Err(err).Msg("Batch failed")
	}

	log.Info().Msg("Batch finished")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			logger.LogError("publisher", err, "Could not close publisher connection")
		}
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{}

	// Initialize cache service
	services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize publisher
	services.Publisher = publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	return services
}
