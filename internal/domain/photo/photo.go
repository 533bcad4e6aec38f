package photo

import (
	"context"
	"time"
)

// PhotoType partitions a room's photos into two counted sets.
type PhotoType string

const (
	PhotoTypeRoom        PhotoType = "room"
	PhotoTypeInspiration PhotoType = "inspiration"
)

// IsValid reports whether t is a known photo type.
func (t PhotoType) IsValid() bool {
	return t == PhotoTypeRoom || t == PhotoTypeInspiration
}

// AllowedPhotoTypes lists the accepted photoType values.
func AllowedPhotoTypes() []string {
	return []string{string(PhotoTypeRoom), string(PhotoTypeInspiration)}
}

// Photo is an image attached to a room. A row is pending until its upload
// is confirmed; ConfirmedAt records the last successful confirmation.
type Photo struct {
	ID          string
	RoomID      string
	PhotoType   PhotoType
	StoragePath string
	Description *string
	URL         string
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	DeletedAt   *time.Time
}

// Counts tallies a room's photos per type.
type Counts struct {
	Room        int64 `json:"room"`
	Inspiration int64 `json:"inspiration"`
	Total       int64 `json:"total"`
}

// ConfirmInput is the exact tuple a client must echo back to confirm an upload.
type ConfirmInput struct {
	PhotoID     string
	RoomID      string
	PhotoType   PhotoType
	StoragePath string
	Description *string
}

// PhotoRepository persists room photos. Reads skip soft-deleted rows.
type PhotoRepository interface {
	Create(ctx context.Context, p *Photo) error
	CountByRoomID(ctx context.Context, roomID string) (int64, error)
	// FindByTuple returns nil, nil when no row matches all four fields.
	FindByTuple(ctx context.Context, photoID, roomID string, photoType PhotoType, storagePath string) (*Photo, error)
	Confirm(ctx context.Context, photoID string, description *string, confirmedAt time.Time) error
	ListByRoomID(ctx context.Context, roomID string, photoType *PhotoType) ([]*Photo, error)
	ListTypesByRoomID(ctx context.Context, roomID string) ([]PhotoType, error)
	ListUnconfirmedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Photo, error)
	SoftDelete(ctx context.Context, photoIDs []string) error
}

// ObjectStore signs URLs against the photo bucket.
type ObjectStore interface {
	PresignUpload(ctx context.Context, storagePath, contentType string) (string, error)
	PresignDownload(ctx context.Context, storagePath string) (string, error)
	Exists(ctx context.Context, storagePath string) (bool, error)
}
