package entities

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecordEventType represents the type of health record event
type HealthRecordEventType string

const (
	HealthRecordEventTypeCreated HealthRecordEventType = "health_record.created"
)

// HealthRecordEvent announces a newly persisted analysis snapshot
type HealthRecordEvent struct {
	ID             string                `json:"id"`
	EventType      HealthRecordEventType `json:"event_type"`
	MemberID       string                `json:"member_id"`
	HealthRecordID string                `json:"health_record_id"`
	SubmissionID   string                `json:"submission_id"`
	Timestamp      time.Time             `json:"timestamp"`
}

// NewHealthRecordCreatedEvent creates the event published after a record is stored
func NewHealthRecordCreatedEvent(record *HealthRecord) *HealthRecordEvent {
	return &HealthRecordEvent{
		ID:             uuid.NewString(),
		EventType:      HealthRecordEventTypeCreated,
		MemberID:       record.MemberID,
		HealthRecordID: record.ID,
		SubmissionID:   record.SubmissionID,
		Timestamp:      time.Now().UTC(),
	}
}
