package responses

import (
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
)

// PhotoResponse is a room photo with a signed download URL.
type PhotoResponse struct {
	ID          string  `json:"id"`
	RoomID      string  `json:"roomId"`
	PhotoType   string  `json:"photoType"`
	StoragePath string  `json:"storagePath"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	CreatedAt   string  `json:"createdAt"`
}

// PhotoCountsResponse adds the total to the per-type counts.
type PhotoCountsResponse struct {
	Room        int64 `json:"room"`
	Inspiration int64 `json:"inspiration"`
	Total       int64 `json:"total"`
}

// RoomPhotosListResponse is the body of GET /api/rooms/{roomId}/photos.
type RoomPhotosListResponse struct {
	Photos []PhotoResponse     `json:"photos"`
	Counts PhotoCountsResponse `json:"counts"`
}

// UploadURLResponse is the body of POST /api/rooms/{roomId}/photos/upload-url.
type UploadURLResponse struct {
	UploadURL   string `json:"uploadUrl"`
	StoragePath string `json:"storagePath"`
	PhotoID     string `json:"photoId"`
	ExpiresAt   string `json:"expiresAt"`
}

func NewPhotoResponse(p *photo.Photo) *PhotoResponse {
	return &PhotoResponse{
		ID:          p.ID,
		RoomID:      p.RoomID,
		PhotoType:   string(p.PhotoType),
		StoragePath: p.StoragePath,
		Description: p.Description,
		URL:         p.URL,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func NewRoomPhotosListResponse(photos []*photo.Photo, counts photo.Counts) *RoomPhotosListResponse {
	return &RoomPhotosListResponse{
		Photos: newPhotoResponses(photos),
		Counts: PhotoCountsResponse{
			Room:        counts.Room,
			Inspiration: counts.Inspiration,
			Total:       counts.Total,
		},
	}
}

func NewUploadURLResponse(uploadURL, storagePath, photoID string, expiresAt time.Time) *UploadURLResponse {
	return &UploadURLResponse{
		UploadURL:   uploadURL,
		StoragePath: storagePath,
		PhotoID:     photoID,
		ExpiresAt:   formatTime(expiresAt),
	}
}

func newPhotoResponses(photos []*photo.Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, *NewPhotoResponse(p))
	}
	return out
}
