package main

// @title Place Discovery API
// @version 1.0.0
// @description Сервис поиска ближайших мест по радиусу от выбранного места.
// @description
// @description Основные возможности:
// @description - Места в радиусе от seed, отсортированные по расстоянию
// @description - Страницы контента для ближайших мест
// @description - Фоновый прогрев кеша страниц через Redis Streams
// @description - Подсказки для строки поиска с учётом опечаток

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/place-discovery/docs"
	"github.com/place-discovery/internal/bootstrap"
	"github.com/place-discovery/internal/config"
	httpDelivery "github.com/place-discovery/internal/delivery/http"
	"github.com/place-discovery/internal/delivery/http/handler"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/logger"
	"github.com/place-discovery/internal/pkg/metrics"
	"github.com/place-discovery/internal/repository/cache"
	"github.com/place-discovery/internal/repository/postgres"
	redisRepo "github.com/place-discovery/internal/repository/redis"
	"github.com/place-discovery/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Place Discovery API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	// 4. Load indexes
	placeSource, locationSource, err := bootstrap.Sources(cfg, db, log)
	if err != nil {
		log.Fatal("Failed to configure dataset", zap.Error(err))
	}

	indexes, err := bootstrap.LoadIndexes(ctx, placeSource, locationSource, log)
	if err != nil {
		log.Fatal("Failed to load indexes", zap.Error(err))
	}

	log.Info("Indexes loaded",
		zap.Int("places", indexes.Places.Len()),
		zap.Int("locations", indexes.Locations.Len()),
	)

	// 5. Connect to Redis
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		log.Info("Redis connected")
	}

	// 6. Initialize repositories
	var streamRepo repository.StreamRepository
	var contentRepo repository.ContentRepository
	if redisClient != nil {
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		contentRepo, err = bootstrap.ContentRepository(cfg, redisClient.Client(), log)
	} else {
		contentRepo, err = bootstrap.ContentRepository(cfg, nil, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize content repository", zap.Error(err))
	}

	// 7. Metrics
	var observer usecase.EnrichmentObserver = usecase.NewLogObserver(log)
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		observer = usecase.MultiObserver{observer, metrics.NewEnrichmentMetrics(registry)}
		gatherer = registry
	}

	// 8. Initialize use cases
	proximityUC := usecase.NewProximityUseCase(indexes.Places, log)
	enrichmentUC := usecase.NewEnrichmentUseCase(
		proximityUC,
		contentRepo,
		observer,
		log,
		cfg.Enrichment.Concurrency,
		cfg.Enrichment.LookupTimeout,
	)
	suggestionUC := usecase.NewSuggestionUseCase(indexes.Locations, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	placeHandler := handler.NewPlaceHandler(proximityUC, cfg.Enrichment.DefaultRadiusMiles, log)
	enrichmentHandler := handler.NewEnrichmentHandler(enrichmentUC, streamRepo, cfg.Enrichment, log)
	suggestionHandler := handler.NewSuggestionHandler(suggestionUC, log)

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		placeHandler,
		enrichmentHandler,
		suggestionHandler,
		gatherer,
		httpDelivery.IndexStats{
			Places:    indexes.Places.Len(),
			Locations: indexes.Locations.Len(),
		},
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
