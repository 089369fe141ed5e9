package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AnswerInput is one answer as posted by the client
type AnswerInput struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Text       string   `json:"text,omitempty" validate:"max=200"`
	OptionIDs  []string `json:"option_ids,omitempty" validate:"dive,required"`
}

// SubmitRequest is one complete survey batch
type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// SubmissionService records survey submissions
type SubmissionService struct {
	answers   repositories.AnswerRepository
	questions repositories.QuestionRepository
	now       func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(answers repositories.AnswerRepository, questions repositories.QuestionRepository) *SubmissionService {
	return &SubmissionService{
		answers:   answers,
		questions: questions,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Questions returns the survey definition
func (s *SubmissionService) Questions(ctx context.Context) ([]*entities.Question, error) {
	return s.questions.List(ctx)
}

// Submit validates the answers against the survey definition and stores them
// as one submission
func (s *SubmissionService) Submit(ctx context.Context, memberID string, req *SubmitRequest) (*entities.Submission, error) {
	if strings.TrimSpace(memberID) == "" {
		return nil, apperrors.NewValidationError("member id is required")
	}
	if req == nil {
		return nil, apperrors.NewValidationError("request body is required")
	}
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid submission: %v", err))
	}

	ids := make([]string, 0, len(req.Answers))
	seen := make(map[string]bool, len(req.Answers))
	for _, a := range req.Answers {
		if seen[a.QuestionID] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("question %s answered more than once", a.QuestionID))
		}
		seen[a.QuestionID] = true
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entities.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	submission := &entities.Submission{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		SubmittedAt: s.now(),
		Answers:     make([]entities.Answer, 0, len(req.Answers)),
	}

	for _, in := range req.Answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown question %s", in.QuestionID))
		}
		answer, err := buildAnswer(q, in)
		if err != nil {
			return nil, err
		}
		answer.ID = uuid.NewString()
		answer.SubmissionID = submission.ID
		answer.MemberID = memberID
		submission.Answers = append(submission.Answers, answer)
	}

	if err := s.answers.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	log.Info().
		Str("member_id", memberID).
		Str("submission_id", submission.ID).
		Int("answers", len(submission.Answers)).
		Msg("Survey submission recorded")

	return submission, nil
}

// buildAnswer checks one answer against its question and resolves option texts
func buildAnswer(q *entities.Question, in AnswerInput) (entities.Answer, error) {
	answer := entities.Answer{
		QuestionID:  q.ID,
		SubCategory: q.SubCategory,
		Kind:        q.Type,
	}

	if !q.Type.IsChoice() {
		if len(in.OptionIDs) > 0 {
			return answer, apperrors.NewValidationError(fmt.Sprintf("question %s takes a text answer", q.ID))
		}
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return answer, apperrors.NewValidationError(fmt.Sprintf("question %s requires a text answer", q.ID))
		}
		answer.Text = text
		return answer, nil
	}

	if len(in.OptionIDs) == 0 {
		return answer, apperrors.NewValidationError(fmt.Sprintf("question %s requires at least one option", q.ID))
	}
	if q.Type == entities.QuestionTypeSingleChoice && len(in.OptionIDs) > 1 {
		return answer, apperrors.NewValidationError(fmt.Sprintf("question %s accepts a single option", q.ID))
	}

	options := make(map[string]string, len(q.Options))
	for _, opt := range q.Options {
		options[opt.ID] = opt.Text
	}
	picked := make(map[string]bool, len(in.OptionIDs))
	for _, id := range in.OptionIDs {
		text, ok := options[id]
		if !ok {
			return answer, apperrors.NewValidationError(fmt.Sprintf("option %s does not belong to question %s", id, q.ID))
		}
		if picked[id] {
			continue
		}
		picked[id] = true
		answer.SelectedOptions = append(answer.SelectedOptions, entities.SelectedOption{ID: id, Text: text})
	}
	return answer, nil
}
