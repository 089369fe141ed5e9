package providers

import (
	"context"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.HealthRecordEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HealthRecordEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelHealthRecords carries every health record event
const EventChannelHealthRecords = "health_records:updates"
