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

// SurveyAdapter implements AnswerRepository over survey_submissions and survey_answers
type SurveyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSurveyAdapter creates a new survey adapter
func NewSurveyAdapter(client *postgres.Client) repositories.AnswerRepository {
	return &SurveyAdapter{
		client: client,
		db:     newQueryBuilder(client),
	}
}

// snapshotTx is the read-only repeatable-read transaction the latest
// submission is loaded in, so its header and answers come from one snapshot
var snapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// CreateSubmission stores a submission and its answers in one transaction
func (a *SurveyAdapter) CreateSubmission(ctx context.Context, submission *entities.Submission) error {
	header, headerArgs, err := a.db.Insert("survey_submissions").Rows(goqu.Record{
		"id":           submission.ID,
		"member_id":    submission.MemberID,
		"submitted_at": submission.SubmittedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	rows := make([]interface{}, 0, len(submission.Answers))
	for _, ans := range submission.Answers {
		optionIDs := make([]string, 0, len(ans.SelectedOptions))
		for _, opt := range ans.SelectedOptions {
			optionIDs = append(optionIDs, opt.ID)
		}
		rows = append(rows, goqu.Record{
			"id":                  ans.ID,
			"submission_id":       submission.ID,
			"member_id":           submission.MemberID,
			"question_id":         ans.QuestionID,
			"kind":                string(ans.Kind),
			"text_value":          ans.Text,
			"selected_option_ids": pq.Array(optionIDs),
		})
	}

	tx, err := a.client.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, header, headerArgs...); err != nil {
		return apperrors.NewInternalError("failed to create submission", err)
	}

	if len(rows) > 0 {
		query, args, err := a.db.Insert("survey_answers").Rows(rows...).Prepared(true).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create answers", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit submission", err)
	}
	return nil
}

// GetLatestSubmission returns the member's newest submission with answers
// resolved to sub-categories and option texts
func (a *SurveyAdapter) GetLatestSubmission(ctx context.Context, memberID string) (*entities.Submission, error) {
	tx, err := a.client.BeginTx(ctx, snapshotTx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query, args, err := a.db.Select("id", "member_id", "submitted_at").
		From("survey_submissions").
		Where(goqu.Ex{"member_id": memberID}).
		Order(goqu.I("submitted_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	sub := &entities.Submission{}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&sub.ID, &sub.MemberID, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no survey submission for member %s", memberID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get submission", err)
	}

	answers, optionIDs, err := a.loadAnswers(ctx, tx, sub)
	if err != nil {
		return nil, err
	}

	texts, err := a.loadOptionTexts(ctx, tx, optionIDs)
	if err != nil {
		return nil, err
	}

	for i := range answers {
		for j := range answers[i].SelectedOptions {
			answers[i].SelectedOptions[j].Text = texts[answers[i].SelectedOptions[j].ID]
		}
	}
	sub.Answers = answers

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewInternalError("failed to commit snapshot", err)
	}
	return sub, nil
}

func (a *SurveyAdapter) loadAnswers(ctx context.Context, tx *sql.Tx, sub *entities.Submission) ([]entities.Answer, []string, error) {
	query, args, err := a.db.Select(
		"a.id", "a.question_id", "a.kind", "a.text_value", "a.selected_option_ids", "q.sub_category",
	).From(goqu.T("survey_answers").As("a")).
		Join(goqu.T("questions").As("q"), goqu.On(goqu.I("q.id").Eq(goqu.I("a.question_id")))).
		Where(goqu.Ex{"a.submission_id": sub.ID}).
		Order(goqu.I("q.display_order").Asc(), goqu.I("a.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build answers query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to list answers", err)
	}
	defer rows.Close()

	var answers []entities.Answer
	var optionIDs []string
	for rows.Next() {
		ans := entities.Answer{SubmissionID: sub.ID, MemberID: sub.MemberID}
		var ids pq.StringArray
		if err := rows.Scan(&ans.ID, &ans.QuestionID, &ans.Kind, &ans.Text, &ids, &ans.SubCategory); err != nil {
			return nil, nil, apperrors.NewInternalError("failed to scan answer", err)
		}
		for _, id := range ids {
			ans.SelectedOptions = append(ans.SelectedOptions, entities.SelectedOption{ID: id})
			optionIDs = append(optionIDs, id)
		}
		answers = append(answers, ans)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewInternalError("failed to iterate answers", err)
	}
	return answers, optionIDs, nil
}

func (a *SurveyAdapter) loadOptionTexts(ctx context.Context, tx *sql.Tx, ids []string) (map[string]string, error) {
	texts := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return texts, nil
	}

	query, args, err := a.db.Select("id", "text").
		From("question_options").
		Where(goqu.Ex{"id": ids}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build options query", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list options", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, apperrors.NewInternalError("failed to scan option", err)
		}
		texts[id] = text
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate options", err)
	}
	return texts, nil
}

const pendingAnalysisQuery = `
	SELECT s.member_id
	FROM (
		SELECT DISTINCT ON (member_id) id, member_id
		FROM survey_submissions
		ORDER BY member_id, submitted_at DESC, id DESC
	) s
	LEFT JOIN health_records hr ON hr.submission_id = s.id
	WHERE hr.id IS NULL AND s.member_id > $1
	ORDER BY s.member_id
	LIMIT $2
`

// ListMembersPendingAnalysis returns members whose latest submission has no
// health record, paging by member id
func (a *SurveyAdapter) ListMembersPendingAnalysis(ctx context.Context, afterMemberID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := a.client.DB().QueryContext(ctx, pendingAnalysisQuery, afterMemberID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list members pending analysis", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan member id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate member ids", err)
	}
	return ids, nil
}
