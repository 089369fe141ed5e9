package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

// QuestionAdapter implements QuestionRepository
type QuestionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQuestionAdapter creates a new question adapter
func NewQuestionAdapter(client *postgres.Client) repositories.QuestionRepository {
	return &QuestionAdapter{
		client: client,
		db:     newQueryBuilder(client),
	}
}

var questionColumns = []interface{}{"id", "text", "type", "sub_category", "category"}

// List returns every question with its options ordered for display
func (a *QuestionAdapter) List(ctx context.Context) ([]*entities.Question, error) {
	return a.list(ctx, nil)
}

// GetByIDs returns the requested questions with their options
func (a *QuestionAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Question, error) {
	if len(ids) == 0 {
		return []*entities.Question{}, nil
	}
	return a.list(ctx, goqu.Ex{"id": ids})
}

func (a *QuestionAdapter) list(ctx context.Context, where goqu.Ex) ([]*entities.Question, error) {
	ds := a.db.Select(questionColumns...).From("questions")
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.Order(goqu.I("display_order").Asc(), goqu.I("id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build questions query", err)
	}

	var questions []*entities.Question
	if err := a.client.DBX().SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list questions", err)
	}
	if len(questions) == 0 {
		return []*entities.Question{}, nil
	}

	ids := make([]string, len(questions))
	byID := make(map[string]*entities.Question, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		byID[q.ID] = q
	}

	query, args, err = a.db.Select("id", "question_id", "text", "display_order").
		From("question_options").
		Where(goqu.Ex{"question_id": ids}).
		Order(goqu.I("question_id").Asc(), goqu.I("display_order").Asc(), goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build options query", err)
	}

	var options []entities.Option
	if err := a.client.DBX().SelectContext(ctx, &options, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list options", err)
	}
	for _, opt := range options {
		if q, ok := byID[opt.QuestionID]; ok {
			q.Options = append(q.Options, opt)
		}
	}

	return questions, nil
}

// Upsert writes a question at the given display position and replaces its
// options. Used by the seeder.
func (a *QuestionAdapter) Upsert(ctx context.Context, q *entities.Question, order int) error {
	questionQuery, questionArgs, err := a.db.Insert("questions").
		Rows(goqu.Record{
			"id":            q.ID,
			"text":          q.Text,
			"type":          string(q.Type),
			"sub_category":  string(q.SubCategory),
			"category":      string(q.Category),
			"display_order": order,
		}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"text":          goqu.I("excluded.text"),
			"type":          goqu.I("excluded.type"),
			"sub_category":  goqu.I("excluded.sub_category"),
			"category":      goqu.I("excluded.category"),
			"display_order": goqu.I("excluded.display_order"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	deleteQuery, deleteArgs, err := a.db.Delete("question_options").
		Where(goqu.Ex{"question_id": q.ID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	tx, err := a.client.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, questionQuery, questionArgs...); err != nil {
		return apperrors.NewInternalError("failed to upsert question", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear options", err)
	}

	if len(q.Options) > 0 {
		rows := make([]interface{}, len(q.Options))
		for i, opt := range q.Options {
			rows[i] = goqu.Record{
				"id":            opt.ID,
				"question_id":   q.ID,
				"text":          opt.Text,
				"display_order": opt.Order,
			}
		}
		query, args, err := a.db.Insert("question_options").Rows(rows...).Prepared(true).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to insert options", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit question", err)
	}
	return nil
}
