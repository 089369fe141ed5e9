package repositories

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// ProductRepository defines read access to the product catalog
type ProductRepository interface {
	// List returns the whole catalog ordered by product id
	List(ctx context.Context) ([]*entities.Product, error)

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)
}

// ProductSearchParams narrows a catalog search
type ProductSearchParams struct {
	Query      string
	Ingredient string
	Limit      int
	Offset     int
}

// ProductSearchRepository defines the interface for catalog search (e.g. Typesense)
type ProductSearchRepository interface {
	// Index upserts a product document
	Index(ctx context.Context, product *entities.Product) error

	// Delete removes a product document
	Delete(ctx context.Context, id string) error

	// Search returns matching products and the total hit count
	Search(ctx context.Context, params ProductSearchParams) ([]*entities.Product, int, error)
}
