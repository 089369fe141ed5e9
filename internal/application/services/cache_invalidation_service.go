package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
)

// CacheInvalidationService drops cached member responses when a new health
// record is stored
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for health record events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelHealthRecords)
	if err != nil {
		return fmt.Errorf("failed to subscribe to health record updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.HealthRecordEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.HealthRecordEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().
		Str("event_id", event.ID).
		Str("member_id", event.MemberID).
		Str("event_type", string(event.EventType)).
		Msg("Processing cache invalidation")

	if err := s.InvalidateMemberCache(ctx, event.MemberID); err != nil {
		log.Warn().Err(err).Str("member_id", event.MemberID).Msg("Failed to invalidate member cache")
	}
}

// InvalidateMemberCache drops every cached response of one member's routes
func (s *CacheInvalidationService) InvalidateMemberCache(ctx context.Context, memberID string) error {
	pattern := providers.HTTPCachePattern(providers.MemberCacheScope(memberID))
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate member cache: %w", err)
	}
	log.Debug().Str("member_id", memberID).Msg("Invalidated member cache")
	return nil
}
