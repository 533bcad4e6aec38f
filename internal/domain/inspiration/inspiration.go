package inspiration

import "context"

// PhotoInput references one source photo by a fetchable URL.
type PhotoInput struct {
	URL         string
	Description *string
}

// RoomInspirationInput is the full generation request.
type RoomInspirationInput struct {
	RoomID            string
	RoomType          string
	Prompt            string
	RoomPhoto         PhotoInput
	InspirationPhotos []PhotoInput
}

// SimpleAdviceInput is the text-only advice request.
type SimpleAdviceInput struct {
	RoomID      string
	RoomType    string
	Description string
}

// GeneratedImage is an image returned by the upstream model. StoragePath
// echoes the URL because generated images are not persisted.
type GeneratedImage struct {
	URL         string `json:"url"`
	Position    int    `json:"position"`
	StoragePath string `json:"storagePath"`
}

// Result is the normalized full generation outcome.
type Result struct {
	RoomID       string
	BulletPoints []string
	Images       []GeneratedImage
}

// AdviceResult is the normalized simple advice outcome. Image is optional.
type AdviceResult struct {
	RoomID string
	Advice string
	Image  *GeneratedImage
}

// Generator produces room redesign suggestions from an external model.
type Generator interface {
	GenerateRoomInspiration(ctx context.Context, input RoomInspirationInput) (*Result, error)
	GenerateSimpleAdvice(ctx context.Context, input SimpleAdviceInput) (*AdviceResult, error)
}
