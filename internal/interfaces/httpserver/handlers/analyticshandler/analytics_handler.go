package analyticshandler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// TrackEventCommand records a client-reported event. Unknown event types
// are stored as given.
type TrackEventCommand struct {
	UserID    string
	EventType string
	EventData map[string]any
}

type AnalyticsHandler struct {
	analyticsService *analytics.AnalyticsService
	log              zerolog.Logger
}

func NewAnalyticsHandler(analyticsService *analytics.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		log:              log.With().Str("component", "analytics-handler").Logger(),
	}
}

func (h *AnalyticsHandler) ExecuteTrackEvent(ctx context.Context, cmd TrackEventCommand) (*responses.TrackEventResponse, error) {
	eventID, err := h.analyticsService.TrackEvent(ctx, cmd.UserID, cmd.EventType, cmd.EventData)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to track event")
	}
	return responses.NewTrackEventResponse(eventID), nil
}
