package roomtype

import "context"

// RoomType is a seeded dictionary entry such as "kitchen" or "bedroom".
type RoomType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// RoomTypeRepository reads the room type dictionary.
type RoomTypeRepository interface {
	List(ctx context.Context) ([]*RoomType, error)
}
