package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

// MemberAdapter implements MemberRepository
type MemberAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMemberAdapter creates a new member adapter
func NewMemberAdapter(client *postgres.Client) repositories.MemberRepository {
	return &MemberAdapter{
		client: client,
		db:     newQueryBuilder(client),
	}
}

// GetByID retrieves a member by ID
func (a *MemberAdapter) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	query, args, err := a.db.Select("id", "name", "gender", "created_at").
		From("members").
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	member := &entities.Member{}
	err = a.client.DBX().GetContext(ctx, member, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("member with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get member", err)
	}
	return member, nil
}

// Upsert inserts or updates a member. Used by the seeder.
func (a *MemberAdapter) Upsert(ctx context.Context, m *entities.Member) error {
	query, args, err := a.db.Insert("members").
		Rows(goqu.Record{
			"id":         m.ID,
			"name":       m.Name,
			"gender":     string(m.Gender),
			"created_at": m.CreatedAt,
		}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"name":   goqu.I("excluded.name"),
			"gender": goqu.I("excluded.gender"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert member", err)
	}
	return nil
}
