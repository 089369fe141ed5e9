package repositories

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// MemberRepository defines read access to the member directory
type MemberRepository interface {
	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id string) (*entities.Member, error)
}
