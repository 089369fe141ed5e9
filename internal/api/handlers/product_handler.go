package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
)

// CatalogService defines the catalog operations used by the handler
type CatalogService interface {
	List(ctx context.Context) ([]*entities.Product, error)
	GetByID(ctx context.Context, id string) (*entities.Product, error)
	Search(ctx context.Context, params repositories.ProductSearchParams) ([]*entities.Product, int, error)
}

// ProductHandler serves the product catalog
type ProductHandler struct {
	service CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// SearchProducts handles GET /api/products/search?q=&ingredient=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	query := r.URL.Query()
	products, total, err := h.service.Search(r.Context(), repositories.ProductSearchParams{
		Query:      query.Get("q"),
		Ingredient: query.Get("ingredient"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"total":    total,
	})
}
