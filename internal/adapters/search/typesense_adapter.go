package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	tsclient "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/typesense"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

const defaultSearchLimit = 20

// TypesenseAdapter implements product search using Typesense. Searches go
// through a circuit breaker so a failing cluster is not hit on every request.
type TypesenseAdapter struct {
	client  *tsclient.Client
	breaker *gobreaker.CircuitBreaker[*api.SearchResult]
}

// Ensure TypesenseAdapter implements ProductSearchRepository
var _ repositories.ProductSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{
		client:  client,
		breaker: newSearchBreaker("typesense-products"),
	}
}

func newSearchBreaker(name string) *gobreaker.CircuitBreaker[*api.SearchResult] {
	return gobreaker.NewCircuitBreaker[*api.SearchResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Search circuit breaker state changed")
		},
	})
}

// Index upserts a product document
func (a *TypesenseAdapter) Index(ctx context.Context, product *entities.Product) error {
	_, err := a.client.Client().Collection(tsclient.ProductsCollection).Documents().Upsert(ctx, buildProductDocument(product))
	if err != nil {
		return apperrors.NewExternalError("failed to index product", err)
	}
	return nil
}

// Delete removes a product from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ProductsCollection).Document(id).Delete(ctx)
	if err != nil {
		return apperrors.NewExternalError("failed to delete product from index", err)
	}
	return nil
}

// Search finds products by free text and/or exact ingredient
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.ProductSearchParams) ([]*entities.Product, int, error) {
	result, err := a.breaker.Execute(func() (*api.SearchResult, error) {
		return a.client.Client().Collection(tsclient.ProductsCollection).Documents().Search(ctx, buildSearchParams(params))
	})
	if err != nil {
		return nil, 0, apperrors.NewExternalError("failed to search products", err)
	}

	products := []*entities.Product{}
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			products = append(products, productFromDocument(*hit.Document))
		}
	}

	total := len(products)
	if result.Found != nil {
		total = *result.Found
	}
	return products, total, nil
}

func buildSearchParams(params repositories.ProductSearchParams) *api.SearchCollectionParams {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := strings.TrimSpace(params.Query)
	if q == "" {
		q = "*"
	}

	sp := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("name,description,ingredients"),
		SortBy:  pointer.String("ingredient_count:desc"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}
	if ingredient := strings.TrimSpace(params.Ingredient); ingredient != "" {
		sp.FilterBy = pointer.String(fmt.Sprintf("ingredients:=[`%s`]", strings.ReplaceAll(ingredient, "`", "")))
	}
	return sp
}
