package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// RoomService handles business logic for rooms
type RoomService struct {
	repo RoomRepository
	log  zerolog.Logger
}

// NewRoomService creates a new room service
func NewRoomService(repo RoomRepository, log zerolog.Logger) *RoomService {
	return &RoomService{
		repo: repo,
		log:  log.With().Str("component", "room-service").Logger(),
	}
}

// ===============================================
// Queries
// ===============================================

// GetRoomsByUserID lists the user's rooms, newest first, with photo counts.
func (s *RoomService) GetRoomsByUserID(ctx context.Context, userID string) ([]*Room, error) {
	rooms, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list rooms")
	}
	if len(rooms) == 0 {
		return []*Room{}, nil
	}

	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	counts, err := s.repo.CountPhotosByRoomIDs(ctx, ids)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count room photos")
	}
	for _, r := range rooms {
		r.PhotoCount = counts[r.ID]
	}
	return rooms, nil
}

// GetRoomWithTypeByID returns the room with its type and owner, or nil when it does not exist.
// Ownership is not enforced here.
func (s *RoomService) GetRoomWithTypeByID(ctx context.Context, roomID string) (*Room, error) {
	r, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get room")
	}
	return r, nil
}

// VerifyRoomOwnership reports whether a non-deleted room with this id belongs to userID.
func (s *RoomService) VerifyRoomOwnership(ctx context.Context, roomID, userID string) (bool, error) {
	ok, err := s.repo.ExistsForOwner(ctx, roomID, userID)
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to verify room ownership")
	}
	return ok, nil
}

// Authorize loads the room and classifies the requester's access to it.
func (s *RoomService) Authorize(ctx context.Context, roomID, userID string) (Access, error) {
	r, err := s.GetRoomWithTypeByID(ctx, roomID)
	if err != nil {
		return Access{}, err
	}
	switch {
	case r == nil:
		return Access{Outcome: AccessNotFound}, nil
	case !r.IsOwnedBy(userID):
		return Access{Outcome: AccessForbidden}, nil
	default:
		return Access{Outcome: AccessOwned, Room: r}, nil
	}
}

// ===============================================
// Mutations
// ===============================================

// CreateRoom inserts a room for the user. The room type is checked by the
// rooms.room_type_id foreign key rather than a separate lookup.
func (s *RoomService) CreateRoom(ctx context.Context, userID string, roomTypeID int) (*Room, error) {
	r := &Room{
		ID:          uuid.NewString(),
		OwnerUserID: userID,
		RoomTypeID:  roomTypeID,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		switch {
		case errors.Is(err, ErrRoomTypeNotFound):
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("Room type with id %d not found.", roomTypeID), err, "room-create-404",
				map[string]any{"roomTypeId": roomTypeID}).WithCode(platformerrors.CodeNotFound)
		case errors.Is(err, ErrInsufficientPrivilege):
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
				"Insufficient permissions to create room.", err, "room-create-403",
				map[string]any{"message": err.Error()}).WithCode(platformerrors.CodeForbidden)
		default:
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create room")
		}
	}

	r.PhotoCount = PhotoCount{}
	s.log.Debug().Str("room_id", r.ID).Int("room_type_id", roomTypeID).Msg("room created")
	return r, nil
}
