package responses

import "github.com/roomcraft/roomcraft-server/internal/domain/inspiration"

// GeneratedImageResponse is one generated visualization.
type GeneratedImageResponse struct {
	StoragePath string `json:"storagePath"`
	Position    int    `json:"position"`
	URL         string `json:"url"`
}

// GeneratedInspirationResponse is the body of POST /api/rooms/{roomId}/generate.
type GeneratedInspirationResponse struct {
	RoomID       string                   `json:"roomId"`
	BulletPoints []string                 `json:"bulletPoints"`
	Images       []GeneratedImageResponse `json:"images"`
}

// SimpleAdviceResponse is the body of POST /api/rooms/{roomId}/generate-simple.
type SimpleAdviceResponse struct {
	RoomID string                  `json:"roomId"`
	Advice string                  `json:"advice"`
	Image  *GeneratedImageResponse `json:"image,omitempty"`
}

// TrackEventResponse is the body of POST /api/analytics/events.
type TrackEventResponse struct {
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

func NewGeneratedInspirationResponse(roomID string, result *inspiration.Result) *GeneratedInspirationResponse {
	bullets := result.BulletPoints
	if bullets == nil {
		bullets = []string{}
	}
	images := make([]GeneratedImageResponse, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, newGeneratedImageResponse(img))
	}
	return &GeneratedInspirationResponse{RoomID: roomID, BulletPoints: bullets, Images: images}
}

func NewSimpleAdviceResponse(roomID string, result *inspiration.AdviceResult) *SimpleAdviceResponse {
	resp := &SimpleAdviceResponse{RoomID: roomID, Advice: result.Advice}
	if result.Image != nil {
		img := newGeneratedImageResponse(*result.Image)
		resp.Image = &img
	}
	return resp
}

func NewTrackEventResponse(eventID string) *TrackEventResponse {
	return &TrackEventResponse{Message: "Event tracked successfully", EventID: eventID}
}

func newGeneratedImageResponse(img inspiration.GeneratedImage) GeneratedImageResponse {
	return GeneratedImageResponse{StoragePath: img.StoragePath, Position: img.Position, URL: img.URL}
}
