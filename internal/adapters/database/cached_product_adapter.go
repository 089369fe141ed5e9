package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
)

// Cache keys for the product catalog
const (
	CatalogCacheKey       = "catalog:products"
	CatalogCachePattern   = "catalog:*"
	defaultCatalogTTL     = 600
	catalogProductKeyBase = "catalog:product:"
)

// ProductCacheKey returns the cache key of a single product
func ProductCacheKey(id string) string {
	return fmt.Sprintf("%s%s", catalogProductKeyBase, id)
}

// CachedProductAdapter wraps a ProductRepository with Redis caching
type CachedProductAdapter struct {
	adapter    repositories.ProductRepository
	cache      providers.CacheProvider
	ttlSeconds int
	async      bool
}

// NewCachedProductAdapter creates a new cached product adapter
func NewCachedProductAdapter(adapter repositories.ProductRepository, cache providers.CacheProvider, ttlSeconds int) *CachedProductAdapter {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultCatalogTTL
	}
	return &CachedProductAdapter{
		adapter:    adapter,
		cache:      cache,
		ttlSeconds: ttlSeconds,
		async:      true,
	}
}

// List returns the catalog, served from cache when present
func (a *CachedProductAdapter) List(ctx context.Context) ([]*entities.Product, error) {
	if cached, err := a.cache.Get(ctx, CatalogCacheKey); err == nil {
		var products []*entities.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		log.Warn().Err(err).Str("key", CatalogCacheKey).Msg("Failed to unmarshal cached catalog")
	}

	products, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	a.store(CatalogCacheKey, products)
	return products, nil
}

// GetByID retrieves a product with caching
func (a *CachedProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	key := ProductCacheKey(id)
	if cached, err := a.cache.Get(ctx, key); err == nil {
		var product entities.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached product")
	}

	product, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(key, product)
	return product, nil
}

// Refresh reloads the catalog from the wrapped repository and overwrites the cache
func (a *CachedProductAdapter) Refresh(ctx context.Context) ([]*entities.Product, error) {
	products, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := a.cache.Set(ctx, CatalogCacheKey, data, a.ttlSeconds); err != nil {
		return nil, fmt.Errorf("failed to cache catalog: %w", err)
	}
	return products, nil
}

// Invalidate drops every cached catalog entry
func (a *CachedProductAdapter) Invalidate(ctx context.Context) error {
	return a.cache.DeletePattern(ctx, CatalogCachePattern)
}

// store writes the value to cache without blocking the caller
func (a *CachedProductAdapter) store(key string, value interface{}) {
	write := func() {
		data, err := json.Marshal(value)
		if err != nil {
			return
		}
		if err := a.cache.Set(context.Background(), key, data, a.ttlSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache catalog entry")
		}
	}
	if a.async {
		go write()
		return
	}
	write()
}
