package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// AnalyticsService records client and server analytics events.
type AnalyticsService struct {
	repo AnalyticsRepository
	log  zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo AnalyticsRepository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo: repo,
		log:  log.With().Str("component", "analytics-service").Logger(),
	}
}

// TrackEvent inserts one event and returns its id.
func (s *AnalyticsService) TrackEvent(ctx context.Context, userID, eventType string, eventData map[string]any) (string, error) {
	if !IsSupportedEventType(eventType) {
		s.log.Warn().Str("event_type", eventType).Str("user_id", userID).Msg("tracking unsupported analytics event type")
	}

	event := &Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		EventData: eventData,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to track event")
	}
	return event.ID, nil
}

// TrackBestEffort records a server-side event and only logs a failure.
func (s *AnalyticsService) TrackBestEffort(ctx context.Context, userID, eventType string, eventData map[string]any) {
	if _, err := s.TrackEvent(ctx, userID, eventType, eventData); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to record analytics event")
	}
}
