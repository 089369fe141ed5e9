package repositories

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// HealthRecordFilter pages through a member's history
type HealthRecordFilter struct {
	Limit  int
	Offset int
}

// HealthRecordRepository defines the append-only audit store of analysis snapshots
type HealthRecordRepository interface {
	// Create stores a new snapshot
	Create(ctx context.Context, record *entities.HealthRecord) error

	// GetLatestByMember returns the newest snapshot for a member
	GetLatestByMember(ctx context.Context, memberID string) (*entities.HealthRecord, error)

	// ListByMember returns snapshots newest first
	ListByMember(ctx context.Context, memberID string, filter HealthRecordFilter) ([]*entities.HealthRecord, error)
}
