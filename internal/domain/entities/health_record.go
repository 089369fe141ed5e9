package entities

import "time"

// HealthRecord is the append-only audit snapshot of one analysis run
type HealthRecord struct {
	ID           string               `json:"id" db:"id"`
	MemberID     string               `json:"member_id" db:"member_id"`
	SubmissionID string               `json:"submission_id" db:"submission_id"`
	MemberName   string               `json:"member_name" db:"member_name"`
	Gender       Gender               `json:"gender" db:"gender"`
	Result       RecommendationResult `json:"result" db:"-"`
	CreatedAt    time.Time            `json:"created_at" db:"created_at"`
}
