package dbschema

import (
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
)

// ===============================================
// RoomPhoto Schema
// ===============================================

// RoomPhoto represents the database schema for room photos.
// ConfirmedAt stays NULL while the upload is pending.
type RoomPhoto struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	RoomID      string     `gorm:"type:uuid;not null;index:idx_room_photos_room_created"`
	PhotoType   string     `gorm:"type:varchar(16);not null"`
	StoragePath string     `gorm:"type:text;not null"`
	Description *string    `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null"`
	ConfirmedAt *time.Time
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName specifies the table name for RoomPhoto
func (RoomPhoto) TableName() string {
	return "room_photos"
}

// EtoD converts database schema to domain photo (Entity to Domain)
func (p *RoomPhoto) EtoD() *photo.Photo {
	return &photo.Photo{
		ID:          p.ID,
		RoomID:      p.RoomID,
		PhotoType:   photo.PhotoType(p.PhotoType),
		StoragePath: p.StoragePath,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		ConfirmedAt: p.ConfirmedAt,
		DeletedAt:   p.DeletedAt,
	}
}

// NewSchemaRoomPhoto creates a database schema from domain photo
func NewSchemaRoomPhoto(p *photo.Photo) *RoomPhoto {
	return &RoomPhoto{
		ID:          p.ID,
		RoomID:      p.RoomID,
		PhotoType:   string(p.PhotoType),
		StoragePath: p.StoragePath,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		ConfirmedAt: p.ConfirmedAt,
		DeletedAt:   p.DeletedAt,
	}
}
