package dbschema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
)

func TestRoomEtoDMapsOwner(t *testing.T) {
	now := time.Now()
	entity := &Room{
		ID:         "r1",
		UserID:     "u1",
		RoomTypeID: 3,
		RoomType:   RoomType{ID: 3, Name: "kitchen", DisplayName: "Kitchen"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r := entity.EtoD()

	assert.Equal(t, "u1", r.OwnerUserID)
	assert.Equal(t, "Kitchen", r.RoomType.DisplayName)
	assert.Equal(t, 3, r.RoomType.ID)
}

func TestRoomPhotoKeepsPendingState(t *testing.T) {
	p := NewSchemaRoomPhoto(&photo.Photo{ID: "p1", RoomID: "r1", PhotoType: photo.PhotoTypeInspiration, StoragePath: "a/b.jpg"})

	assert.Equal(t, "inspiration", p.PhotoType)
	assert.Nil(t, p.ConfirmedAt)
	assert.Equal(t, photo.PhotoTypeInspiration, p.EtoD().PhotoType)
}

func TestAnalyticsEventCopiesData(t *testing.T) {
	data := map[string]any{"roomId": "r1"}
	e := NewSchemaAnalyticsEvent(&analytics.Event{ID: "e1", UserID: "u1", EventType: "RoomCreated", EventData: data})

	data["roomId"] = "changed"

	assert.Equal(t, "r1", e.EventData["roomId"])
}
