package responses

import (
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
)

// RoomTypeResponse is a room type dictionary entry.
type RoomTypeResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// RoomTypesListResponse is the body of GET /api/room-types.
type RoomTypesListResponse struct {
	RoomTypes []RoomTypeResponse `json:"roomTypes"`
}

// PhotoCountResponse tallies a room's photos per type.
type PhotoCountResponse struct {
	Room        int64 `json:"room"`
	Inspiration int64 `json:"inspiration"`
}

// RoomResponse is a room with its type and photo counts.
type RoomResponse struct {
	ID         string             `json:"id"`
	RoomType   RoomTypeResponse   `json:"roomType"`
	PhotoCount PhotoCountResponse `json:"photoCount"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
}

// RoomsListResponse is the body of GET /api/rooms.
type RoomsListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// RoomWithPhotosResponse is the body of GET /api/rooms/{roomId}.
type RoomWithPhotosResponse struct {
	RoomResponse
	Photos []PhotoResponse `json:"photos"`
}

func NewRoomTypeResponse(rt roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{ID: rt.ID, Name: rt.Name, DisplayName: rt.DisplayName}
}

func NewRoomTypesListResponse(types []*roomtype.RoomType) *RoomTypesListResponse {
	out := make([]RoomTypeResponse, 0, len(types))
	for _, rt := range types {
		out = append(out, NewRoomTypeResponse(*rt))
	}
	return &RoomTypesListResponse{RoomTypes: out}
}

func NewRoomResponse(r *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:       r.ID,
		RoomType: NewRoomTypeResponse(r.RoomType),
		PhotoCount: PhotoCountResponse{
			Room:        r.PhotoCount.Room,
			Inspiration: r.PhotoCount.Inspiration,
		},
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func NewRoomsListResponse(rooms []*room.Room) *RoomsListResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, *NewRoomResponse(r))
	}
	return &RoomsListResponse{Rooms: out}
}

// NewRoomWithPhotosResponse takes the photo counts from counts rather than
// from the room row.
func NewRoomWithPhotosResponse(r *room.Room, photos []*photo.Photo, counts photo.Counts) *RoomWithPhotosResponse {
	base := NewRoomResponse(r)
	base.PhotoCount = PhotoCountResponse{Room: counts.Room, Inspiration: counts.Inspiration}
	return &RoomWithPhotosResponse{
		RoomResponse: *base,
		Photos:       newPhotoResponses(photos),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
