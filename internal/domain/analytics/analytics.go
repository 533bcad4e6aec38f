package analytics

import (
	"context"
	"time"
)

const (
	EventInspirationGenerated = "InspirationGenerated"
	EventRoomCreated          = "RoomCreated"
	EventPhotoUploaded        = "PhotoUploaded"
)

var supportedEventTypes = map[string]struct{}{
	EventInspirationGenerated: {},
	EventRoomCreated:          {},
	EventPhotoUploaded:        {},
}

// IsSupportedEventType reports whether t is on the known allow-list.
// Unknown types are still accepted by TrackEvent.
func IsSupportedEventType(t string) bool {
	_, ok := supportedEventTypes[t]
	return ok
}

// Event is an append-only analytics record.
type Event struct {
	ID        string
	UserID    string
	EventType string
	EventData map[string]any
	CreatedAt time.Time
}

// AnalyticsRepository appends analytics events.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *Event) error
}
