package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

const defaultHistoryLimit = 20

// HealthRecordAdapter implements HealthRecordRepository. The analysis result
// is stored as a JSONB snapshot.
type HealthRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHealthRecordAdapter creates a new health record adapter
func NewHealthRecordAdapter(client *postgres.Client) repositories.HealthRecordRepository {
	return &HealthRecordAdapter{
		client: client,
		db:     newQueryBuilder(client),
	}
}

type healthRecordRow struct {
	ID           string    `db:"id"`
	MemberID     string    `db:"member_id"`
	SubmissionID string    `db:"submission_id"`
	MemberName   string    `db:"member_name"`
	Gender       string    `db:"gender"`
	Result       []byte    `db:"result"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r healthRecordRow) toEntity() (*entities.HealthRecord, error) {
	record := &entities.HealthRecord{
		ID:           r.ID,
		MemberID:     r.MemberID,
		SubmissionID: r.SubmissionID,
		MemberName:   r.MemberName,
		Gender:       entities.Gender(r.Gender),
		CreatedAt:    r.CreatedAt,
	}
	if err := json.Unmarshal(r.Result, &record.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result of health record %s: %w", r.ID, err)
	}
	return record, nil
}

var healthRecordColumns = []interface{}{"id", "member_id", "submission_id", "member_name", "gender", "result", "created_at"}

// Create stores a new snapshot
func (a *HealthRecordAdapter) Create(ctx context.Context, record *entities.HealthRecord) error {
	result, err := json.Marshal(record.Result)
	if err != nil {
		return apperrors.NewInternalError("failed to encode analysis result", err)
	}

	query, args, err := a.db.Insert("health_records").Rows(goqu.Record{
		"id":            record.ID,
		"member_id":     record.MemberID,
		"submission_id": record.SubmissionID,
		"member_name":   record.MemberName,
		"gender":        string(record.Gender),
		"result":        string(result),
		"created_at":    record.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create health record", err)
	}
	return nil
}

// GetLatestByMember returns the newest snapshot for a member
func (a *HealthRecordAdapter) GetLatestByMember(ctx context.Context, memberID string) (*entities.HealthRecord, error) {
	query, args, err := a.db.Select(healthRecordColumns...).
		From("health_records").
		Where(goqu.Ex{"member_id": memberID}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var row healthRecordRow
	err = a.client.DBX().GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no health record for member %s", memberID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get health record", err)
	}

	record, err := row.toEntity()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to decode health record", err)
	}
	return record, nil
}

// ListByMember returns snapshots newest first
func (a *HealthRecordAdapter) ListByMember(ctx context.Context, memberID string, filter repositories.HealthRecordFilter) ([]*entities.HealthRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	ds := a.db.Select(healthRecordColumns...).
		From("health_records").
		Where(goqu.Ex{"member_id": memberID}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(uint(limit))
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	var rows []healthRecordRow
	if err := a.client.DBX().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list health records", err)
	}

	records := make([]*entities.HealthRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toEntity()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to decode health record", err)
		}
		records = append(records, record)
	}
	return records, nil
}
