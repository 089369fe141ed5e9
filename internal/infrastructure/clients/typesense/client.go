package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/retry"
)

const (
	ProductsCollection = "products"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(
		context.Background(),
		retry.DefaultConfig(),
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// ProductSchema is the collection layout for catalog products. Ingredients
// are faceted so products can be filtered by exact ingredient name.
func ProductSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: ProductsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "price", Type: "float", Facet: pointer.True()},
			{Name: "ingredients", Type: "string[]", Facet: pointer.True()},
			{Name: "ingredient_count", Type: "int32"},
		},
		DefaultSortingField: pointer.String("ingredient_count"),
	}
}

// InitSchema ensures the products collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == ProductsCollection {
			log.Debug().Str("collection", ProductsCollection).Msg("Typesense collection already exists")
			return nil
		}
	}

	if _, err := c.client.Collections().Create(ctx, ProductSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", ProductsCollection).Msg("Created Typesense collection")
	return nil
}

// ResetSchema drops and recreates the products collection
func (c *Client) ResetSchema(ctx context.Context) error {
	if _, err := c.client.Collection(ProductsCollection).Delete(ctx); err != nil {
		log.Warn().Err(err).Str("collection", ProductsCollection).Msg("Failed to drop collection")
	}
	return c.InitSchema(ctx)
}
