package database

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
)

// newQueryBuilder returns a goqu database bound to the client's pool using
// the postgres dialect ($n placeholders)
func newQueryBuilder(client *postgres.Client) *goqu.Database {
	return goqu.New("postgres", client.DB())
}
