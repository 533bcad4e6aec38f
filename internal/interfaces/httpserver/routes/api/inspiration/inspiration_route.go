package inspiration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/inspirationhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/validators"
)

type InspirationRoute struct {
	inspirationHandler *inspirationhandler.InspirationHandler
	binder             *requests.Binder
	rateLimiter        *middlewares.RateLimiter
}

func NewInspirationRoute(
	inspirationHandler *inspirationhandler.InspirationHandler,
	binder *requests.Binder,
	rateLimiter *middlewares.RateLimiter,
) *InspirationRoute {
	return &InspirationRoute{
		inspirationHandler: inspirationHandler,
		binder:             binder,
		rateLimiter:        rateLimiter,
	}
}

func (inspirationRoute *InspirationRoute) RegisterRouter(router gin.IRouter) {
	generate := router.Group("/rooms/:roomId", inspirationRoute.rateLimiter.Bucket(ratelimit.BucketGenerate))
	generate.POST("/generate", inspirationRoute.GenerateInspiration)
	generate.POST("/generate-simple", inspirationRoute.GenerateSimpleAdvice)
}

// GenerateInspiration
// @Summary Generate a room inspiration
// @Description Sends the newest room photo and every inspiration photo to the AI gateway and returns bullet-point advice with generated images.
// @Description The body is optional.
// @Tags Inspiration API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Param request body requests.GenerateInspirationRequest false "Optional prompt"
// @Success 200 {object} responses.GeneratedInspirationResponse "Generated inspiration"
// @Failure 400 {object} responses.ErrorResponse "Invalid request or missing photos"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 403 {object} responses.ErrorResponse "Room owned by another user"
// @Failure 404 {object} responses.ErrorResponse "Room not found"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} responses.ErrorResponse "Generation failed"
// @Failure 502 {object} responses.ErrorResponse "AI gateway error"
// @Failure 504 {object} responses.ErrorResponse "AI gateway timeout"
// @Router /api/rooms/{roomId}/generate [post]
func (inspirationRoute *InspirationRoute) GenerateInspiration(reqCtx *gin.Context) {
	const fallback = "An unexpected error occurred while generating inspiration."
	ctx := reqCtx.Request.Context()
	roomID, err := validators.ValidateRoomIDParam(ctx, reqCtx.Param("roomId"))
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	var req requests.GenerateInspirationRequest
	if err := inspirationRoute.binder.BindGenerationJSON(reqCtx, &req, true); err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	cmd := inspirationhandler.GenerateInspirationCommand{UserID: userID, RoomID: roomID}
	if req.Prompt != nil {
		cmd.Prompt = *req.Prompt
	}
	resp, err := inspirationRoute.inspirationHandler.ExecuteGenerateInspiration(ctx, cmd)
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

// GenerateSimpleAdvice
// @Summary Generate simple advice
// @Description Asks the AI gateway for text advice about the room from a free-form description.
// @Tags Inspiration API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Param request body requests.GenerateSimpleAdviceRequest true "Room description"
// @Success 200 {object} responses.SimpleAdviceResponse "Advice"
// @Failure 400 {object} responses.ErrorResponse "Invalid request"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 403 {object} responses.ErrorResponse "Room owned by another user"
// @Failure 404 {object} responses.ErrorResponse "Room not found"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} responses.ErrorResponse "Generation failed"
// @Failure 502 {object} responses.ErrorResponse "AI gateway error"
// @Failure 504 {object} responses.ErrorResponse "AI gateway timeout"
// @Router /api/rooms/{roomId}/generate-simple [post]
func (inspirationRoute *InspirationRoute) GenerateSimpleAdvice(reqCtx *gin.Context) {
	const fallback = "An unexpected error occurred while generating advice."
	ctx := reqCtx.Request.Context()
	roomID, err := validators.ValidateRoomIDParam(ctx, reqCtx.Param("roomId"))
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	var req requests.GenerateSimpleAdviceRequest
	if err := inspirationRoute.binder.BindGenerationJSON(reqCtx, &req, false); err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}

	resp, err := inspirationRoute.inspirationHandler.ExecuteGenerateSimpleAdvice(ctx, inspirationhandler.GenerateSimpleAdviceCommand{
		UserID:      userID,
		RoomID:      roomID,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, fallback)
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}
