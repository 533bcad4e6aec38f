package dbschema

import (
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/room"
)

// ===============================================
// Room Schema
// ===============================================

// Room represents the database schema for rooms
type Room struct {
	ID         string     `gorm:"type:uuid;primaryKey"`
	UserID     string     `gorm:"type:uuid;not null;index:idx_rooms_user_created"`
	RoomTypeID int        `gorm:"not null"`
	RoomType   RoomType   `gorm:"foreignKey:RoomTypeID"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
	DeletedAt  *time.Time `gorm:"index"`
}

// TableName specifies the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// ===============================================
// Conversion Methods
// ===============================================

// EtoD converts database schema to domain room (Entity to Domain)
func (r *Room) EtoD() *room.Room {
	return &room.Room{
		ID:          r.ID,
		OwnerUserID: r.UserID,
		RoomTypeID:  r.RoomTypeID,
		RoomType:    *r.RoomType.EtoD(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// NewSchemaRoom creates a database schema from domain room
func NewSchemaRoom(r *room.Room) *Room {
	return &Room{
		ID:         r.ID,
		UserID:     r.OwnerUserID,
		RoomTypeID: r.RoomTypeID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		DeletedAt:  r.DeletedAt,
	}
}

// RoomPhotoCountRow is one row of the grouped photo count query.
type RoomPhotoCountRow struct {
	RoomID    string
	PhotoType string
	Count     int64
}
