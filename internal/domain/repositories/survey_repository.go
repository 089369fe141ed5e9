package repositories

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// AnswerRepository defines the interface for the append-only answer store
type AnswerRepository interface {
	// CreateSubmission stores a submission and all of its answers atomically
	CreateSubmission(ctx context.Context, submission *entities.Submission) error

	// GetLatestSubmission returns the member's most recent submission with its
	// answers, read from one consistent snapshot. Returns a NOT_FOUND AppError
	// when the member has never submitted.
	GetLatestSubmission(ctx context.Context, memberID string) (*entities.Submission, error)

	// ListMembersPendingAnalysis returns ids of members whose latest submission
	// has no health record yet, ordered by id and starting after afterMemberID
	ListMembersPendingAnalysis(ctx context.Context, afterMemberID string, limit int) ([]string, error)
}

// QuestionRepository defines read access to the survey definition
type QuestionRepository interface {
	// List returns every question with its options ordered for display
	List(ctx context.Context) ([]*entities.Question, error)

	// GetByIDs returns the questions with the given ids, options included
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Question, error)
}
