package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// CatalogService serves the product catalog
type CatalogService struct {
	repo       repositories.ProductRepository
	searchRepo repositories.ProductSearchRepository
}

// NewCatalogService creates a new catalog service. searchRepo may be nil, in
// which case searches filter the catalog in memory.
func NewCatalogService(repo repositories.ProductRepository, searchRepo repositories.ProductSearchRepository) *CatalogService {
	return &CatalogService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// List returns the whole catalog
func (s *CatalogService) List(ctx context.Context) ([]*entities.Product, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a product by ID
func (s *CatalogService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds products by text and ingredient. The search index is used when
// available; on failure the catalog is filtered directly.
func (s *CatalogService) Search(ctx context.Context, params repositories.ProductSearchParams) ([]*entities.Product, int, error) {
	if params.Limit <= 0 {
		params.Limit = defaultSearchLimit
	}
	if params.Limit > maxSearchLimit {
		params.Limit = maxSearchLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	if s.searchRepo != nil {
		products, total, err := s.searchRepo.Search(ctx, params)
		if err == nil {
			return products, total, nil
		}
		log.Warn().Err(err).Msg("Product search failed, filtering catalog instead")
	}

	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	matched := filterProducts(catalog, params)
	return paginate(matched, params.Offset, params.Limit), len(matched), nil
}

// IndexAll pushes every catalog product into the search index
func (s *CatalogService) IndexAll(ctx context.Context) (int, error) {
	if s.searchRepo == nil {
		return 0, nil
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if err := s.searchRepo.Index(ctx, p); err != nil {
			log.Warn().Err(err).Str("product_id", p.ID).Msg("Failed to index product")
			continue
		}
		indexed++
	}
	return indexed, nil
}

func filterProducts(products []*entities.Product, params repositories.ProductSearchParams) []*entities.Product {
	query := strings.ToLower(strings.TrimSpace(params.Query))
	ingredient := strings.TrimSpace(params.Ingredient)

	out := make([]*entities.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if ingredient != "" && !containsString(p.Ingredients, ingredient) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p *entities.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, ing := range p.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func paginate(products []*entities.Product, offset, limit int) []*entities.Product {
	if offset >= len(products) {
		return []*entities.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}
