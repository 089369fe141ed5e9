package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

// ProductAdapter implements ProductRepository
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     newQueryBuilder(client),
	}
}

var productColumns = []interface{}{"id", "name", "description", "price", "ingredients"}

type productScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row productScanner) (*entities.Product, error) {
	p := &entities.Product{}
	var ingredients pq.StringArray
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &ingredients); err != nil {
		return nil, err
	}
	p.Ingredients = []string(ingredients)
	return p, nil
}

// List returns the whole catalog ordered by id
func (a *ProductAdapter) List(ctx context.Context) ([]*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Order(goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate products", err)
	}
	return products, nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	p, err := scanProduct(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}
	return p, nil
}

// Upsert inserts or replaces a product. Used by the seeder.
func (a *ProductAdapter) Upsert(ctx context.Context, p *entities.Product) error {
	query, args, err := a.db.Insert("products").
		Rows(goqu.Record{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"ingredients": pq.Array(p.Ingredients),
		}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"name":        goqu.I("excluded.name"),
			"description": goqu.I("excluded.description"),
			"price":       goqu.I("excluded.price"),
			"ingredients": goqu.I("excluded.ingredients"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert product", err)
	}
	return nil
}
