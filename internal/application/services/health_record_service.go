package services

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

const maxHistoryLimit = 100

// HealthRecordService reads a member's analysis history
type HealthRecordService struct {
	repo repositories.HealthRecordRepository
}

// NewHealthRecordService creates a new health record service
func NewHealthRecordService(repo repositories.HealthRecordRepository) *HealthRecordService {
	return &HealthRecordService{repo: repo}
}

// Latest returns the member's newest health record
func (s *HealthRecordService) Latest(ctx context.Context, memberID string) (*entities.HealthRecord, error) {
	if memberID == "" {
		return nil, apperrors.NewValidationError("member id is required")
	}
	return s.repo.GetLatestByMember(ctx, memberID)
}

// History returns the member's health records newest first
func (s *HealthRecordService) History(ctx context.Context, memberID string, limit, offset int) ([]*entities.HealthRecord, error) {
	if memberID == "" {
		return nil, apperrors.NewValidationError("member id is required")
	}
	if limit < 0 || offset < 0 {
		return nil, apperrors.NewValidationError("limit and offset must not be negative")
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.repo.ListByMember(ctx, memberID, repositories.HealthRecordFilter{Limit: limit, Offset: offset})
}
