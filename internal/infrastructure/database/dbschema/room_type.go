package dbschema

import "github.com/roomcraft/roomcraft-server/internal/domain/roomtype"

// ===============================================
// RoomType Schema
// ===============================================

// RoomType represents the seeded room type dictionary
type RoomType struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"size:64;uniqueIndex;not null"`
	DisplayName string `gorm:"size:128;not null"`
}

// TableName specifies the table name for RoomType
func (RoomType) TableName() string {
	return "room_types"
}

// EtoD converts database schema to domain room type (Entity to Domain)
func (rt *RoomType) EtoD() *roomtype.RoomType {
	return &roomtype.RoomType{
		ID:          rt.ID,
		Name:        rt.Name,
		DisplayName: rt.DisplayName,
	}
}
