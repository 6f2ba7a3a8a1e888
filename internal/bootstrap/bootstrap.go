// Package bootstrap wires the dependencies shared by the API server and the
// warm-up worker: dataset sources, indexes, the content client and its cache.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/index"
	"github.com/place-discovery/internal/infrastructure/content"
	"github.com/place-discovery/internal/repository/cache"
	"github.com/place-discovery/internal/repository/dataset"
	"github.com/place-discovery/internal/repository/postgres"
)

// Indexes - загруженные при старте неизменяемые индексы
type Indexes struct {
	Places    *index.PlaceIndex
	Locations *index.LocationIndex
}

// Sources выбирает источники данных по DATASET_SOURCE; db нужен только для postgres
func Sources(cfg *config.Config, db *postgres.DB, logger *zap.Logger) (repository.PlaceSource, repository.LocationSource, error) {
	switch cfg.Dataset.Source {
	case "postgres":
		if db == nil {
			return nil, nil, fmt.Errorf("dataset source postgres requires a database connection")
		}
		repo := postgres.NewPlaceRepository(db)
		return repo, repo, nil
	default:
		return dataset.NewFilePlaceSource(cfg.Dataset.PlacesPath, logger),
			dataset.NewJSONLocationSource(cfg.Dataset.LocationsPath, logger),
			nil
	}
}

// LoadIndexes загружает оба индекса; ошибка загрузки фатальна для процесса
func LoadIndexes(
	ctx context.Context,
	places repository.PlaceSource,
	locations repository.LocationSource,
	logger *zap.Logger,
) (*Indexes, error) {
	placeList, err := places.LoadPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("load place index: %w", err)
	}

	locationList, err := locations.LoadLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load location index: %w", err)
	}

	return &Indexes{
		Places:    index.NewPlaceIndex(placeList, logger),
		Locations: index.NewLocationIndex(locationList, logger),
	}, nil
}

// ContentRepository - клиент сервиса страниц за кешем из CACHE_BACKEND
func ContentRepository(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (repository.ContentRepository, error) {
	client := content.NewClient(&cfg.Content, logger)

	var pageCache repository.PageCache
	switch cfg.Cache.Backend {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("cache backend redis requires a redis connection")
		}
		pageCache = cache.NewRedisPageCache(redisClient, logger)
	default:
		pageCache = cache.NewMemoryPageCache(cfg.Cache.PageTTL, cfg.Cache.CleanupInterval)
	}

	logger.Info("Content client configured",
		zap.String("base_url", cfg.Content.BaseURL),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Duration("page_ttl", cfg.Cache.PageTTL))

	return cache.NewCachedContentRepository(client, pageCache, cfg.Cache.PageTTL, logger), nil
}
