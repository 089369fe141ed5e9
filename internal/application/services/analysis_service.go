package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

// Analysis outcomes recorded on the analysis counter
const (
	outcomeSuccess             = "success"
	outcomeMissingDemographics = "missing_demographics"
	outcomeNotFound            = "not_found"
	outcomeError               = "error"
)

// AnalysisService runs the recommendation engine for a member and keeps the
// audit trail of results
type AnalysisService struct {
	engine   *analysis.Engine
	answers  repositories.AnswerRepository
	members  repositories.MemberRepository
	catalog  repositories.ProductRepository
	records  repositories.HealthRecordRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewAnalysisService creates a new analysis service. members, records,
// eventBus and metrics may be nil.
func NewAnalysisService(
	engine *analysis.Engine,
	answers repositories.AnswerRepository,
	members repositories.MemberRepository,
	catalog repositories.ProductRepository,
	records repositories.HealthRecordRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *AnalysisService {
	return &AnalysisService{
		engine:   engine,
		answers:  answers,
		members:  members,
		catalog:  catalog,
		records:  records,
		eventBus: eventBus,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AnalyzeAndRecommend analyzes the member's latest submission against the
// current catalog. A member without a submission yields NOT_FOUND, missing
// age, height or weight yields UNPROCESSABLE.
func (s *AnalysisService) AnalyzeAndRecommend(ctx context.Context, memberID string) (*entities.RecommendationResult, error) {
	ctx, span := observability.StartSpan(ctx, "AnalysisService.AnalyzeAndRecommend")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("member.id", memberID))

	start := time.Now()
	result, err := s.analyze(ctx, memberID)
	observability.RecordAnalysis(ctx, s.metrics, outcomeOf(err), time.Since(start))
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, memberID string) (*entities.RecommendationResult, error) {
	if memberID == "" {
		return nil, apperrors.NewValidationError("member id is required")
	}

	sub, err := s.answers.GetLatestSubmission(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member := s.loadMember(ctx, memberID)

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.Analyze(ctx, analysis.Input{
		Submission: sub,
		Catalog:    catalog,
		Member:     member,
	})
	if errors.Is(err, analysis.ErrMissingDemographics) {
		return nil, apperrors.NewUnprocessableError(err.Error(), err)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("analysis failed", err)
	}

	for domain, level := range out.Result.RiskLevels {
		observability.RecordRiskLevel(ctx, s.metrics, string(domain), string(level))
	}

	record := &entities.HealthRecord{
		ID:           uuid.NewString(),
		MemberID:     memberID,
		SubmissionID: sub.ID,
		MemberName:   out.Demographics.Name,
		Gender:       out.Demographics.Gender,
		Result:       *out.Result,
		CreatedAt:    s.now(),
	}
	s.persist(ctx, record)

	observability.LoggerFromContext(ctx).Info().
		Str("member_id", memberID).
		Str("submission_id", sub.ID).
		Float64("bmi", out.Result.BMI).
		Int("ingredients", len(out.Result.RecommendedIngredients)).
		Int("products", len(out.Result.Recommendations)).
		Msg("analysis completed")

	return out.Result, nil
}

// loadMember returns the directory entry or nil. The member only labels the
// result, so lookup failures never fail the analysis.
func (s *AnalysisService) loadMember(ctx context.Context, memberID string) *entities.Member {
	if s.members == nil {
		return nil
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			log.Warn().Err(err).Str("member_id", memberID).Msg("Failed to load member")
		}
		return nil
	}
	return member
}

// persist stores the health record and announces it. Failures are logged only.
func (s *AnalysisService) persist(ctx context.Context, record *entities.HealthRecord) {
	if s.records == nil {
		return
	}
	if err := s.records.Create(ctx, record); err != nil {
		log.Error().Err(err).
			Str("member_id", record.MemberID).
			Str("submission_id", record.SubmissionID).
			Msg("Failed to persist health record")
		return
	}

	if s.eventBus == nil {
		return
	}
	event := entities.NewHealthRecordCreatedEvent(record)
	if err := s.eventBus.Publish(ctx, providers.EventChannelHealthRecords, event); err != nil {
		log.Warn().Err(err).Str("health_record_id", record.ID).Msg("Failed to publish health record event")
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case apperrors.TypeOf(err) == apperrors.ErrorTypeUnprocessable:
		return outcomeMissingDemographics
	case apperrors.IsNotFound(err):
		return outcomeNotFound
	}
	return outcomeError
}
