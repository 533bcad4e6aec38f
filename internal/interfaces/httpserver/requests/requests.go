package requests

// CreateRoomRequest is the body of POST /api/rooms.
type CreateRoomRequest struct {
	RoomTypeID int `json:"roomTypeId" validate:"required,gt=0"`
}

// UploadURLRequest is the body of POST /api/rooms/{roomId}/photos/upload-url.
type UploadURLRequest struct {
	PhotoType   string `json:"photoType" validate:"required,photo_type"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,content_type"`
}

// ConfirmPhotoRequest is the body of POST /api/rooms/{roomId}/photos.
type ConfirmPhotoRequest struct {
	PhotoID     string  `json:"photoId" validate:"required,anyuuid"`
	StoragePath string  `json:"storagePath" validate:"required,notblank"`
	PhotoType   string  `json:"photoType" validate:"required,photo_type"`
	Description *string `json:"description,omitempty" validate:"omitempty,description_len"`
}

// GenerateInspirationRequest is the optional body of POST /api/rooms/{roomId}/generate.
type GenerateInspirationRequest struct {
	Prompt *string `json:"prompt,omitempty" validate:"omitempty,prompt_len"`
}

// GenerateSimpleAdviceRequest is the body of POST /api/rooms/{roomId}/generate-simple.
type GenerateSimpleAdviceRequest struct {
	Description string `json:"description" validate:"required,notblank,prompt_len"`
}

// TrackEventRequest is the body of POST /api/analytics/events.
type TrackEventRequest struct {
	EventType string         `json:"eventType" validate:"required,max=100"`
	EventData map[string]any `json:"eventData" validate:"required,min=1"`
}
