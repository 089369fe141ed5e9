package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

func TestHealthRecordService_History(t *testing.T) {
	repo := new(MockHealthRecordRepo)
	service := NewHealthRecordService(repo)
	ctx := context.Background()

	repo.On("ListByMember", ctx, "m-1", repositories.HealthRecordFilter{Limit: maxHistoryLimit, Offset: 3}).
		Return([]*entities.HealthRecord{{ID: "hr-1"}}, nil)

	records, err := service.History(ctx, "m-1", 1000, 3)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = service.History(ctx, "m-1", -1, 0)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestHealthRecordService_Latest(t *testing.T) {
	repo := new(MockHealthRecordRepo)
	service := NewHealthRecordService(repo)
	ctx := context.Background()

	repo.On("GetLatestByMember", ctx, "m-1").Return(nil, apperrors.NewNotFoundError("no health record"))

	_, err := service.Latest(ctx, "m-1")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = service.Latest(ctx, "")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}
