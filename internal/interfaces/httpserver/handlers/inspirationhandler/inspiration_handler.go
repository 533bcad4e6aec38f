package inspirationhandler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/utils/httpclients"
	"github.com/roomcraft/roomcraft-server/internal/utils/idgen"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// GenerateInspirationCommand asks the gateway for a full redesign.
type GenerateInspirationCommand struct {
	UserID string
	RoomID string
	Prompt string
}

// GenerateSimpleAdviceCommand asks the gateway for text advice only.
type GenerateSimpleAdviceCommand struct {
	UserID      string
	RoomID      string
	Description string
}

// Requirements are the photo minimums checked before a full generation.
type Requirements struct {
	MinRoomPhotos        int
	MinInspirationPhotos int
}

func RequirementsFromConfig(cfg *config.Config) Requirements {
	return Requirements{
		MinRoomPhotos:        cfg.MinRoomPhotos,
		MinInspirationPhotos: cfg.MinInspirationPhotos,
	}
}

// InspirationHandler runs the generation use cases. Unlike the photo
// endpoints, a room owned by someone else is reported as Forbidden.
type InspirationHandler struct {
	roomService      *room.RoomService
	photoService     *photo.PhotoService
	analyticsService *analytics.AnalyticsService
	generator        inspiration.Generator
	requirements     Requirements
	log              zerolog.Logger
	now              func() time.Time
}

func NewInspirationHandler(
	roomService *room.RoomService,
	photoService *photo.PhotoService,
	analyticsService *analytics.AnalyticsService,
	generator inspiration.Generator,
	requirements Requirements,
	log zerolog.Logger,
) *InspirationHandler {
	return &InspirationHandler{
		roomService:      roomService,
		photoService:     photoService,
		analyticsService: analyticsService,
		generator:        generator,
		requirements:     requirements,
		log:              log.With().Str("component", "inspiration-handler").Logger(),
		now:              time.Now,
	}
}

// ExecuteGenerateInspiration validates the room's photos, calls the gateway
// with the newest room photo and every inspiration photo, and records an
// InspirationGenerated event on success.
func (h *InspirationHandler) ExecuteGenerateInspiration(ctx context.Context, cmd GenerateInspirationCommand) (*responses.GeneratedInspirationResponse, error) {
	requestID := idgen.NewGenerationID()
	ctx = httpclients.WithRequestID(ctx, requestID)
	logger := h.log.With().
		Str("request_id", requestID).
		Str("room_id", cmd.RoomID).
		Str("user_id", cmd.UserID).
		Logger()

	access, err := h.roomService.Authorize(ctx, cmd.RoomID, cmd.UserID)
	if err != nil {
		return nil, h.fail(ctx, logger, "generate.inspiration failed", requestID, err, "An unexpected error occurred while generating inspiration.")
	}
	r, err := requireOwner(ctx, access, "inspiration")
	if err != nil {
		return nil, err
	}

	photos, err := h.photoService.GetRoomPhotos(ctx, cmd.RoomID, nil)
	if err != nil {
		return nil, h.fail(ctx, logger, "generate.inspiration failed", requestID, err, "An unexpected error occurred while generating inspiration.")
	}
	var roomPhotos, inspirationPhotos []*photo.Photo
	for _, p := range photos {
		switch p.PhotoType {
		case photo.PhotoTypeRoom:
			roomPhotos = append(roomPhotos, p)
		case photo.PhotoTypeInspiration:
			inspirationPhotos = append(inspirationPhotos, p)
		}
	}

	logger.Info().
		Int("prompt_length", len([]rune(cmd.Prompt))).
		Int("room_photos", len(roomPhotos)).
		Int("inspiration_photos", len(inspirationPhotos)).
		Msg("generate.inspiration.request")

	if err := h.checkRequirements(ctx, len(roomPhotos), len(inspirationPhotos)); err != nil {
		return nil, err
	}

	input := inspiration.RoomInspirationInput{
		RoomID:   cmd.RoomID,
		RoomType: r.RoomType.DisplayName,
		Prompt:   cmd.Prompt,
		RoomPhoto: inspiration.PhotoInput{
			URL:         roomPhotos[0].URL,
			Description: roomPhotos[0].Description,
		},
	}
	for _, p := range inspirationPhotos {
		input.InspirationPhotos = append(input.InspirationPhotos, inspiration.PhotoInput{URL: p.URL, Description: p.Description})
	}

	start := h.now()
	result, err := h.generator.GenerateRoomInspiration(ctx, input)
	if err != nil {
		return nil, h.fail(ctx, logger, "generate.inspiration failed", requestID, err, "An unexpected error occurred while generating inspiration.")
	}

	h.analyticsService.TrackBestEffort(ctx, cmd.UserID, analytics.EventInspirationGenerated, map[string]any{
		"roomId":             cmd.RoomID,
		"roomType":           r.RoomType.Name,
		"generationDuration": h.now().Sub(start).Milliseconds(),
	})
	return responses.NewGeneratedInspirationResponse(cmd.RoomID, result), nil
}

// ExecuteGenerateSimpleAdvice returns text advice for the room.
func (h *InspirationHandler) ExecuteGenerateSimpleAdvice(ctx context.Context, cmd GenerateSimpleAdviceCommand) (*responses.SimpleAdviceResponse, error) {
	requestID := idgen.NewGenerationID()
	ctx = httpclients.WithRequestID(ctx, requestID)
	logger := h.log.With().
		Str("request_id", requestID).
		Str("room_id", cmd.RoomID).
		Str("user_id", cmd.UserID).
		Logger()

	access, err := h.roomService.Authorize(ctx, cmd.RoomID, cmd.UserID)
	if err != nil {
		return nil, h.fail(ctx, logger, "generate.simple failed", requestID, err, "An unexpected error occurred while generating advice.")
	}
	r, err := requireOwner(ctx, access, "advice")
	if err != nil {
		return nil, err
	}

	logger.Info().Int("description_length", len([]rune(cmd.Description))).Msg("generate.simple.request")

	result, err := h.generator.GenerateSimpleAdvice(ctx, inspiration.SimpleAdviceInput{
		RoomID:      cmd.RoomID,
		RoomType:    r.RoomType.DisplayName,
		Description: cmd.Description,
	})
	if err != nil {
		return nil, h.fail(ctx, logger, "generate.simple failed", requestID, err, "An unexpected error occurred while generating advice.")
	}
	return responses.NewSimpleAdviceResponse(cmd.RoomID, result), nil
}

// requireOwner turns a non-owned access outcome into the 403 or 404 error.
func requireOwner(ctx context.Context, access room.Access, op string) (*room.Room, error) {
	switch access.Outcome {
	case room.AccessOwned:
		return access.Room, nil
	case room.AccessForbidden:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeForbidden,
			"User does not own this room.", nil, "generate-"+op+"-403").WithCode(platformerrors.CodeForbidden)
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound,
			"Room not found.", nil, "generate-"+op+"-404").WithCode(platformerrors.CodeNotFound)
	}
}

func (h *InspirationHandler) checkRequirements(ctx context.Context, roomCount, inspirationCount int) error {
	if roomCount < h.requirements.MinRoomPhotos {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"At least one room photo is required.", nil, "generate-room-photos",
			map[string]any{"current": roomCount, "required": h.requirements.MinRoomPhotos}).
			WithCode(platformerrors.CodeValidationError)
	}
	if inspirationCount < h.requirements.MinInspirationPhotos {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"At least two inspiration photos are required.", nil, "generate-inspiration-photos",
			map[string]any{"current": inspirationCount, "required": h.requirements.MinInspirationPhotos}).
			WithCode(platformerrors.CodeValidationError)
	}
	return nil
}

// fail logs the failure with the request id and maps it to the envelope.
// Errors that already carry a code, such as storage not being configured, keep
// their code and gain the requestId detail.
func (h *InspirationHandler) fail(ctx context.Context, logger zerolog.Logger, msg, requestID string, err error, fallback string) error {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.Code != "" {
		logger.Error().Err(err).Str("code", platformErr.EnvelopeCode()).Msg(msg)
		return platformErr.WithDetails(map[string]any{"requestId": requestID})
	}
	logger.Error().Err(err).Str("kind", inspiration.KindOf(err).String()).Msg(msg)
	return MapGenerationError(ctx, err, requestID, fallback)
}

// MapGenerationError translates a gateway failure into a coded PlatformError
// whose details carry requestId and the underlying message.
func MapGenerationError(ctx context.Context, err error, requestID, fallback string) *platformerrors.PlatformError {
	details := map[string]any{"requestId": requestID, "message": err.Error()}

	newErr := func(errType platformerrors.ErrorType, status int, code, message string) *platformerrors.PlatformError {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, errType, message, err, "generation-"+code, details).
			WithCode(code).
			WithStatus(status)
	}

	switch inspiration.KindOf(err) {
	case inspiration.KindTimeout:
		return newErr(platformerrors.ErrorTypeTimeout, http.StatusGatewayTimeout, platformerrors.CodeOpenRouterTimeout, "OpenRouter request timed out.")
	case inspiration.KindAuthFailure:
		return newErr(platformerrors.ErrorTypeExternal, http.StatusBadGateway, platformerrors.CodeOpenRouterAuthError, "OpenRouter authorization failed.")
	case inspiration.KindRateLimited:
		return newErr(platformerrors.ErrorTypeExternal, http.StatusBadGateway, platformerrors.CodeOpenRouterRateLimit, "OpenRouter rate limit exceeded.")
	case inspiration.KindInvalidResponse:
		return newErr(platformerrors.ErrorTypeExternal, http.StatusBadGateway, platformerrors.CodeOpenRouterResponseInvalid, "OpenRouter returned invalid response.")
	case inspiration.KindNotConfigured:
		return newErr(platformerrors.ErrorTypeNotConfigured, http.StatusInternalServerError, platformerrors.CodeOpenRouterNotConfigured, "OpenRouter configuration is missing.")
	case inspiration.KindInvalidInput:
		var genErr *inspiration.GenerationError
		errors.As(err, &genErr)
		return newErr(platformerrors.ErrorTypeValidation, http.StatusBadRequest, platformerrors.CodeValidationError, genErr.Message)
	default:
		return newErr(platformerrors.ErrorTypeInternal, http.StatusInternalServerError, platformerrors.CodeInternalError, fallback)
	}
}
