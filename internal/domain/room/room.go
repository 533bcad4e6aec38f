package room

import (
	"context"
	"errors"
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
)

// PhotoCount is the number of photos a room holds per photo type.
type PhotoCount struct {
	Room        int64 `json:"room"`
	Inspiration int64 `json:"inspiration"`
}

// Room is a user-owned unit of redesign work.
type Room struct {
	ID          string
	OwnerUserID string
	RoomTypeID  int
	RoomType    roomtype.RoomType
	PhotoCount  PhotoCount
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsOwnedBy reports whether userID owns the room.
func (r *Room) IsOwnedBy(userID string) bool {
	return r != nil && r.OwnerUserID == userID
}

var (
	// ErrRoomTypeNotFound is returned when a room references a missing room type.
	ErrRoomTypeNotFound = errors.New("room type not found")
	// ErrInsufficientPrivilege is returned when the database denies the write.
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)

// RoomRepository persists rooms. All reads skip soft-deleted rows.
type RoomRepository interface {
	// Create inserts the room and loads its room type in one transaction.
	Create(ctx context.Context, r *Room) error
	FindByID(ctx context.Context, roomID string) (*Room, error)
	ListByOwner(ctx context.Context, userID string) ([]*Room, error)
	ExistsForOwner(ctx context.Context, roomID, userID string) (bool, error)
	// CountPhotosByRoomIDs tallies non-deleted photos per room in a single query.
	CountPhotosByRoomIDs(ctx context.Context, roomIDs []string) (map[string]PhotoCount, error)
}
