package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/bootstrap"
	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/pkg/logger"
	"github.com/place-discovery/internal/repository/cache"
	"github.com/place-discovery/internal/repository/postgres"
	redisRepo "github.com/place-discovery/internal/repository/redis"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/worker"
	"github.com/place-discovery/internal/worker/warmup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}
	if !cfg.Redis.Enabled {
		fmt.Println("Worker requires Redis. Set REDIS_ENABLED=true.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Nearby Warm-up Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("claim_idle", cfg.Worker.ClaimIdle),
		zap.Int("concurrency", cfg.Enrichment.Concurrency))

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer loadCancel()

	// 3. Connect to PostgreSQL (только для DATASET_SOURCE=postgres)
	var db *postgres.DB
	if cfg.Dataset.Source == "postgres" {
		db, err = postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Load indexes
	placeSource, locationSource, err := bootstrap.Sources(cfg, db, log)
	if err != nil {
		log.Fatal("Failed to configure dataset", zap.Error(err))
	}
	indexes, err := bootstrap.LoadIndexes(loadCtx, placeSource, locationSource, log)
	if err != nil {
		log.Fatal("Failed to load indexes", zap.Error(err))
	}

	// 6. Initialize repositories
	contentRepo, err := bootstrap.ContentRepository(cfg, redisClient.Client(), log)
	if err != nil {
		log.Fatal("Failed to initialize content repository", zap.Error(err))
	}
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	// 7. Initialize use cases
	proximityUC := usecase.NewProximityUseCase(indexes.Places, log)
	enrichmentUC := usecase.NewEnrichmentUseCase(
		proximityUC,
		contentRepo,
		usecase.NewLogObserver(log),
		log,
		cfg.Enrichment.Concurrency,
		cfg.Enrichment.LookupTimeout,
	)

	// 8. Initialize workers
	warmupWorker := warmup.NewWorker(
		streamRepo,
		enrichmentUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		log,
	).WithClaimIdle(cfg.Worker.ClaimIdle)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(warmupWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
