package roomhandler

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// ListRoomsCommand lists the caller's rooms.
type ListRoomsCommand struct {
	UserID string
}

// CreateRoomCommand creates a room of the given type for the caller.
type CreateRoomCommand struct {
	UserID     string
	RoomTypeID int
}

// GetRoomCommand loads one room with its photos.
type GetRoomCommand struct {
	UserID string
	RoomID string
}

type RoomHandler struct {
	roomTypeService  *roomtype.RoomTypeService
	roomService      *room.RoomService
	photoService     *photo.PhotoService
	analyticsService *analytics.AnalyticsService
	log              zerolog.Logger
}

func NewRoomHandler(
	roomTypeService *roomtype.RoomTypeService,
	roomService *room.RoomService,
	photoService *photo.PhotoService,
	analyticsService *analytics.AnalyticsService,
	log zerolog.Logger,
) *RoomHandler {
	return &RoomHandler{
		roomTypeService:  roomTypeService,
		roomService:      roomService,
		photoService:     photoService,
		analyticsService: analyticsService,
		log:              log.With().Str("component", "room-handler").Logger(),
	}
}

// ExecuteListRoomTypes returns the room type dictionary.
func (h *RoomHandler) ExecuteListRoomTypes(ctx context.Context) (*responses.RoomTypesListResponse, error) {
	types, err := h.roomTypeService.ListRoomTypes(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list room types")
	}
	return responses.NewRoomTypesListResponse(types), nil
}

// ExecuteListRooms returns the caller's rooms, newest first.
func (h *RoomHandler) ExecuteListRooms(ctx context.Context, cmd ListRoomsCommand) (*responses.RoomsListResponse, error) {
	rooms, err := h.roomService.GetRoomsByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list rooms")
	}
	return responses.NewRoomsListResponse(rooms), nil
}

// ExecuteCreateRoom inserts the room and records a RoomCreated event.
func (h *RoomHandler) ExecuteCreateRoom(ctx context.Context, cmd CreateRoomCommand) (*responses.RoomResponse, error) {
	r, err := h.roomService.CreateRoom(ctx, cmd.UserID, cmd.RoomTypeID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create room")
	}

	h.analyticsService.TrackBestEffort(ctx, cmd.UserID, analytics.EventRoomCreated, map[string]any{
		"roomId":   r.ID,
		"roomType": r.RoomType.Name,
	})
	return responses.NewRoomResponse(r), nil
}

// ExecuteGetRoom returns the room with its photos. A room owned by someone
// else is reported as missing, like the photo endpoints.
func (h *RoomHandler) ExecuteGetRoom(ctx context.Context, cmd GetRoomCommand) (*responses.RoomWithPhotosResponse, error) {
	access, err := h.roomService.Authorize(ctx, cmd.RoomID, cmd.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get room")
	}
	if !access.Owned() {
		return nil, roomNotFound(ctx)
	}

	var (
		photos []*photo.Photo
		counts photo.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photos, err = h.photoService.GetRoomPhotos(gctx, cmd.RoomID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = h.photoService.GetPhotoCountsByType(gctx, cmd.RoomID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to load room photos")
	}

	return responses.NewRoomWithPhotosResponse(access.Room, photos, counts), nil
}

func roomNotFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotFound,
		"Room not found.", nil, "room-404").WithCode(platformerrors.CodeNotFound)
}
