package photo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainphoto "github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/photohandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/validators"
)

type PhotoRoute struct {
	photoHandler *photohandler.PhotoHandler
	binder       *requests.Binder
	rateLimiter  *middlewares.RateLimiter
}

func NewPhotoRoute(
	photoHandler *photohandler.PhotoHandler,
	binder *requests.Binder,
	rateLimiter *middlewares.RateLimiter,
) *PhotoRoute {
	return &PhotoRoute{
		photoHandler: photoHandler,
		binder:       binder,
		rateLimiter:  rateLimiter,
	}
}

func (photoRoute *PhotoRoute) RegisterRouter(router gin.IRouter) {
	photos := router.Group("/rooms/:roomId/photos")
	photos.GET("", photoRoute.ListRoomPhotos)
	photos.POST("", photoRoute.ConfirmPhotoUpload)
	photos.POST("/upload-url", photoRoute.rateLimiter.Bucket(ratelimit.BucketUpload), photoRoute.CreateUploadURL)
}

// ListRoomPhotos
// @Summary List room photos
// @Description Returns the photos of a room owned by the caller, optionally filtered by type, with per-type counts.
// @Tags Photos API
// @Security BearerAuth
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Param photoType query string false "Photo type filter" Enums(room, inspiration)
// @Success 200 {object} responses.RoomPhotosListResponse "Photos"
// @Failure 400 {object} responses.ErrorResponse "Invalid roomId or photoType"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 404 {object} responses.ErrorResponse "Room not found"
// @Failure 500 {object} responses.ErrorResponse "Failed to fetch photos"
// @Router /api/rooms/{roomId}/photos [get]
func (photoRoute *PhotoRoute) ListRoomPhotos(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	roomID, userID, ok := photoRoute.identify(reqCtx)
	if !ok {
		return
	}

	resp, err := photoRoute.photoHandler.ExecuteListRoomPhotos(ctx, photohandler.ListRoomPhotosCommand{
		UserID:    userID,
		RoomID:    roomID,
		PhotoType: reqCtx.Query("photoType"),
	})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while fetching photos.")
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

// CreateUploadURL
// @Summary Request a photo upload URL
// @Description Reserves a pending photo and returns a presigned PUT URL valid for one hour.
// @Description The upload must send the same Content-Type that was requested.
// @Tags Photos API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Param request body requests.UploadURLRequest true "Photo to upload"
// @Success 200 {object} responses.UploadURLResponse "Upload URL"
// @Failure 400 {object} responses.ErrorResponse "Invalid request"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 404 {object} responses.ErrorResponse "Room not found"
// @Failure 413 {object} responses.ErrorResponse "Photo limit reached"
// @Failure 429 {object} responses.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} responses.ErrorResponse "Failed to generate upload URL"
// @Router /api/rooms/{roomId}/photos/upload-url [post]
func (photoRoute *PhotoRoute) CreateUploadURL(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	roomID, userID, ok := photoRoute.identify(reqCtx)
	if !ok {
		return
	}

	var req requests.UploadURLRequest
	if err := photoRoute.binder.BindJSON(reqCtx, &req); err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while generating upload URL.")
		return
	}

	resp, err := photoRoute.photoHandler.ExecuteGenerateUploadURL(ctx, photohandler.GenerateUploadURLCommand{
		UserID:      userID,
		RoomID:      roomID,
		PhotoType:   domainphoto.PhotoType(req.PhotoType),
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while generating upload URL.")
		return
	}
	responses.JSON(reqCtx, http.StatusOK, resp)
}

// ConfirmPhotoUpload
// @Summary Confirm a photo upload
// @Description Confirms a pending photo once its object has been uploaded. The photoId, storagePath and photoType must match the reservation.
// @Tags Photos API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID (UUID)"
// @Param request body requests.ConfirmPhotoRequest true "Uploaded photo"
// @Success 201 {object} responses.PhotoResponse "Confirmed photo"
// @Failure 400 {object} responses.ErrorResponse "Invalid request"
// @Failure 401 {object} responses.ErrorResponse "Authentication required"
// @Failure 404 {object} responses.ErrorResponse "Room or photo not found"
// @Failure 500 {object} responses.ErrorResponse "Failed to confirm photo"
// @Router /api/rooms/{roomId}/photos [post]
func (photoRoute *PhotoRoute) ConfirmPhotoUpload(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	roomID, userID, ok := photoRoute.identify(reqCtx)
	if !ok {
		return
	}

	var req requests.ConfirmPhotoRequest
	if err := photoRoute.binder.BindJSON(reqCtx, &req); err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while confirming photo.")
		return
	}

	resp, err := photoRoute.photoHandler.ExecuteConfirmPhotoUpload(ctx, photohandler.ConfirmPhotoUploadCommand{
		UserID:      userID,
		RoomID:      roomID,
		PhotoID:     req.PhotoID,
		PhotoType:   domainphoto.PhotoType(req.PhotoType),
		StoragePath: req.StoragePath,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, "An unexpected error occurred while confirming photo.")
		return
	}
	responses.JSON(reqCtx, http.StatusCreated, resp)
}

// identify validates the roomId path parameter and the caller. On failure the
// response has already been written.
func (photoRoute *PhotoRoute) identify(reqCtx *gin.Context) (string, string, bool) {
	ctx := reqCtx.Request.Context()
	roomID, err := validators.ValidateRoomID(ctx, reqCtx.Param("roomId"))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return "", "", false
	}
	userID, err := validators.ValidateAuth(ctx, middlewares.UserIDFromContext(reqCtx))
	if err != nil {
		responses.HandleError(reqCtx, err, "")
		return "", "", false
	}
	return roomID, userID, true
}
