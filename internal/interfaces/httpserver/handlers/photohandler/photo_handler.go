package photohandler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// GenerateUploadURLCommand reserves a pending photo and signs its upload.
type GenerateUploadURLCommand struct {
	UserID      string
	RoomID      string
	PhotoType   photo.PhotoType
	FileName    string
	ContentType string
}

// ConfirmPhotoUploadCommand confirms a pending photo by its exact tuple.
type ConfirmPhotoUploadCommand struct {
	UserID      string
	RoomID      string
	PhotoID     string
	PhotoType   photo.PhotoType
	StoragePath string
	Description *string
}

// ListRoomPhotosCommand lists a room's photos. PhotoType is the raw query
// value; empty means all types.
type ListRoomPhotosCommand struct {
	UserID    string
	RoomID    string
	PhotoType string
}

// PhotoHandler runs the photo use cases. A room the caller does not own is
// reported as missing.
type PhotoHandler struct {
	roomService      *room.RoomService
	photoService     *photo.PhotoService
	analyticsService *analytics.AnalyticsService
	log              zerolog.Logger
}

func NewPhotoHandler(
	roomService *room.RoomService,
	photoService *photo.PhotoService,
	analyticsService *analytics.AnalyticsService,
	log zerolog.Logger,
) *PhotoHandler {
	return &PhotoHandler{
		roomService:      roomService,
		photoService:     photoService,
		analyticsService: analyticsService,
		log:              log.With().Str("component", "photo-handler").Logger(),
	}
}

// ExecuteGenerateUploadURL enforces the per-room cap, inserts the pending row
// and signs a PUT URL bound to the content type.
func (h *PhotoHandler) ExecuteGenerateUploadURL(ctx context.Context, cmd GenerateUploadURLCommand) (*responses.UploadURLResponse, error) {
	if err := h.verifyOwnership(ctx, cmd.RoomID, cmd.UserID); err != nil {
		return nil, err
	}

	count, err := h.photoService.CountByRoomID(ctx, cmd.RoomID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to count photos")
	}
	maxPhotos := h.photoService.MaxPhotosPerRoom()
	if count >= int64(maxPhotos) {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeTooManyRecords,
			fmt.Sprintf("Room has reached the maximum limit of %d photos.", maxPhotos), nil, "photo-upload-413",
			map[string]any{"currentCount": count, "maxCount": maxPhotos}).
			WithCode(platformerrors.CodePayloadTooLarge)
	}

	storagePath := photo.GenerateStoragePath(cmd.UserID, cmd.RoomID, cmd.PhotoType, cmd.FileName)
	photoID, err := h.photoService.CreatePendingPhoto(ctx, uuid.NewString(), cmd.RoomID, cmd.PhotoType, storagePath)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create pending photo")
	}

	uploadURL, expiresAt, err := h.photoService.PresignUpload(ctx, storagePath, cmd.ContentType)
	if err != nil {
		// The row would otherwise count against the cap until the sweeper runs.
		if discardErr := h.photoService.DiscardPending(context.WithoutCancel(ctx), photoID); discardErr != nil {
			h.log.Warn().Err(discardErr).Str("photo_id", photoID).Msg("failed to discard pending photo")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to sign upload url")
	}

	h.log.Debug().
		Str("room_id", cmd.RoomID).
		Str("photo_id", photoID).
		Str("photo_type", string(cmd.PhotoType)).
		Msg("upload url issued")
	return responses.NewUploadURLResponse(uploadURL, storagePath, photoID, expiresAt), nil
}

// ExecuteConfirmPhotoUpload confirms the upload and records a PhotoUploaded event.
func (h *PhotoHandler) ExecuteConfirmPhotoUpload(ctx context.Context, cmd ConfirmPhotoUploadCommand) (*responses.PhotoResponse, error) {
	if err := h.verifyOwnership(ctx, cmd.RoomID, cmd.UserID); err != nil {
		return nil, err
	}

	confirmed, err := h.photoService.ConfirmPhotoUpload(ctx, photo.ConfirmInput{
		PhotoID:     cmd.PhotoID,
		RoomID:      cmd.RoomID,
		PhotoType:   cmd.PhotoType,
		StoragePath: cmd.StoragePath,
		Description: cmd.Description,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to confirm photo")
	}
	if confirmed == nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound,
			"Photo not found.", nil, "photo-confirm-404",
			map[string]any{"photoId": cmd.PhotoID}).
			WithCode(platformerrors.CodeNotFound)
	}

	h.analyticsService.TrackBestEffort(ctx, cmd.UserID, analytics.EventPhotoUploaded, map[string]any{
		"photoId":   confirmed.ID,
		"roomId":    confirmed.RoomID,
		"photoType": string(confirmed.PhotoType),
	})
	return responses.NewPhotoResponse(confirmed), nil
}

// ExecuteListRoomPhotos returns the photos and per-type counts.
func (h *PhotoHandler) ExecuteListRoomPhotos(ctx context.Context, cmd ListRoomPhotosCommand) (*responses.RoomPhotosListResponse, error) {
	var filter *photo.PhotoType
	if cmd.PhotoType != "" {
		pt := photo.PhotoType(cmd.PhotoType)
		if !pt.IsValid() {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				"photoType must be 'room' or 'inspiration'.", nil, "photo-list-type",
				map[string]any{"providedValue": cmd.PhotoType, "allowedValues": photo.AllowedPhotoTypes()}).
				WithCode(platformerrors.CodeValidationError)
		}
		filter = &pt
	}

	if err := h.verifyOwnership(ctx, cmd.RoomID, cmd.UserID); err != nil {
		return nil, err
	}

	var (
		photos []*photo.Photo
		counts photo.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photos, err = h.photoService.GetRoomPhotos(gctx, cmd.RoomID, filter)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = h.photoService.GetPhotoCountsByType(gctx, cmd.RoomID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list photos")
	}

	return responses.NewRoomPhotosListResponse(photos, counts), nil
}

func (h *PhotoHandler) verifyOwnership(ctx context.Context, roomID, userID string) error {
	owned, err := h.roomService.VerifyRoomOwnership(ctx, roomID, userID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to verify room ownership")
	}
	if !owned {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound,
			"Room not found.", nil, "photo-room-404").WithCode(platformerrors.CodeNotFound)
	}
	return nil
}
