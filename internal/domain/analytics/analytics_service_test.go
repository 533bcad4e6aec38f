package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/pkg/testhelpers"
)

func TestIsSupportedEventType(t *testing.T) {
	assert.True(t, analytics.IsSupportedEventType("InspirationGenerated"))
	assert.True(t, analytics.IsSupportedEventType("RoomCreated"))
	assert.True(t, analytics.IsSupportedEventType("PhotoUploaded"))
	assert.False(t, analytics.IsSupportedEventType("SomethingNew"))
}

func TestTrackEventAcceptsUnknownTypes(t *testing.T) {
	db := testhelpers.NewMemoryDB()
	svc := analytics.NewAnalyticsService(db.Analytics(), zerolog.Nop())

	id, err := svc.TrackEvent(context.Background(), "user-1", "SomethingNew", map[string]any{"a": 1})
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	events := db.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "SomethingNew", events[0].EventType)
	assert.Equal(t, id, events[0].ID)
}

func TestTrackBestEffortSwallowsFailures(t *testing.T) {
	db := testhelpers.NewMemoryDB()
	db.Fail(testhelpers.OpCreateEvent, errors.New("insert failed"))
	svc := analytics.NewAnalyticsService(db.Analytics(), zerolog.Nop())

	assert.NotPanics(t, func() {
		svc.TrackBestEffort(context.Background(), "user-1", analytics.EventRoomCreated, map[string]any{"roomId": "r"})
	})
	assert.Empty(t, db.Events())
}
