package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
)

// CatalogRefresher reloads the cached product catalog
type CatalogRefresher interface {
	Refresh(ctx context.Context) ([]*entities.Product, error)
}

// CacheWarmingService keeps the product catalog hot in Redis so analyses never
// wait on a cold catalog read
type CacheWarmingService struct {
	catalog CatalogRefresher
	cache   providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(catalog CatalogRefresher, cache providers.CacheProvider) *CacheWarmingService {
	return &CacheWarmingService{
		catalog: catalog,
		cache:   cache,
	}
}

// WarmCache reloads the catalog into the cache
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	products, err := s.catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm catalog: %w", err)
	}
	log.Info().Int("products", len(products)).Msg("Warmed catalog cache")
	return nil
}

// StartPeriodicWarming warms once, then again every interval until ctx is done
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(ctx); err != nil {
					log.Warn().Err(err).Msg("Periodic cache warming failed")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("Started periodic cache warming")
}

// InvalidateCache drops the cached catalog and cached product responses
func (s *CacheWarmingService) InvalidateCache(ctx context.Context) error {
	patterns := []string{
		"catalog:*",
		providers.HTTPCachePattern("products"),
	}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}

	log.Info().Msg("Catalog cache invalidated")
	return nil
}
