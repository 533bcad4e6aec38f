package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/validators"
)

type AnalyticsRoute struct {
	analyticsHandler *analyticshandler.AnalyticsHandler
	binder           *requests.Binder
}

func NewAnalyticsRoute(analyticsHandler *analyticshandler.AnalyticsHandler, binder *requests.Binder) *AnalyticsRoute {
	return &AnalyticsRoute{
		analyticsHandler: analyticsHandler,
		binder:           binder,
	}
}

func (analyticsRoute *AnalyticsRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/analytics/events", analyticsRoute.TrackEvent)
}

// TrackEvent
// @Summary Track an analytics event
// @Description Stores a client-reported event for the caller. Event types outside the known set are stored as given.
// @Tags Analytics API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.TrackEventRequest true "Event"
// @Success 201 {object} responses.TrackEventResponse "Event tracked"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 500 {object} responses.ErrorResponse "Failed to track event"
// @Router /api/analytics/events [post]
func (analyticsRoute *AnalyticsRoute) TrackEvent(reqCtx *gin.Context) {
	const fallback = "An unexpected error occurred while tracking the event."
	ctx := reqCtx.Request.Context()
	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	var req requests.TrackEventRequest
	if err := analyticsRoute.binder.BindJSON(reqCtx, &req); err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	resp, err := analyticsRoute.analyticsHandler.ExecuteTrackEvent(ctx, analyticshandler.TrackEventCommand{
		UserID:    userID,
		EventType: req.EventType,
		EventData: req.EventData,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}
	responses.JSON(reqCtx, http.StatusCreated, resp)
}
