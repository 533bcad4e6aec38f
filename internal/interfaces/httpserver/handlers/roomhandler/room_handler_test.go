package roomhandler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
	"github.com/roomcraft/roomcraft-server/pkg/testhelpers"
)

const (
	ownerID  = "user-owner"
	otherID  = "user-other"
	roomID   = "4f6b1c2e-8a3d-4e5f-9b7c-0d1e2f3a4b5c"
	missing  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	photoURL = "https://storage.test"
)

func newTestHandler(t *testing.T) (*RoomHandler, *testhelpers.MemoryDB) {
	t.Helper()
	db := testhelpers.NewMemoryDB()
	log := zerolog.Nop()
	store := testhelpers.NewMemoryObjectStore(photoURL)
	h := NewRoomHandler(
		roomtype.NewRoomTypeService(db.RoomTypes()),
		room.NewRoomService(db.Rooms(), log),
		photo.NewPhotoService(db.Photos(), store, photo.Config{MaxPhotosPerRoom: 10}, log),
		analytics.NewAnalyticsService(db.Analytics(), log),
		log,
	)
	return h, db
}

func platformErr(t *testing.T, err error) *platformerrors.PlatformError {
	t.Helper()
	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestExecuteListRoomTypes(t *testing.T) {
	h, _ := newTestHandler(t)

	resp, err := h.ExecuteListRoomTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.RoomTypes, 3)
	assert.Equal(t, "living_room", resp.RoomTypes[0].Name)
	assert.Equal(t, "Kitchen", resp.RoomTypes[2].DisplayName)
}

func TestExecuteListRoomsEmpty(t *testing.T) {
	h, _ := newTestHandler(t)

	resp, err := h.ExecuteListRooms(context.Background(), ListRoomsCommand{UserID: ownerID})
	require.NoError(t, err)
	assert.NotNil(t, resp.Rooms)
	assert.Empty(t, resp.Rooms)
}

func TestExecuteListRoomsCountsPhotos(t *testing.T) {
	h, db := newTestHandler(t)
	db.AddRoom(roomID, ownerID, 2)
	db.AddRoom(missing, otherID, 1)
	db.AddPhoto(photo.Photo{ID: "p1", RoomID: roomID, PhotoType: photo.PhotoTypeRoom, StoragePath: "a"})
	db.AddPhoto(photo.Photo{ID: "p2", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "b"})
	db.AddPhoto(photo.Photo{ID: "p3", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "c"})

	resp, err := h.ExecuteListRooms(context.Background(), ListRoomsCommand{UserID: ownerID})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "bedroom", resp.Rooms[0].RoomType.Name)
	assert.Equal(t, int64(1), resp.Rooms[0].PhotoCount.Room)
	assert.Equal(t, int64(2), resp.Rooms[0].PhotoCount.Inspiration)
}

func TestExecuteCreateRoom(t *testing.T) {
	h, db := newTestHandler(t)

	resp, err := h.ExecuteCreateRoom(context.Background(), CreateRoomCommand{UserID: ownerID, RoomTypeID: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "kitchen", resp.RoomType.Name)
	assert.Zero(t, resp.PhotoCount.Room)

	events := db.Events()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.EventRoomCreated, events[0].EventType)
	assert.Equal(t, resp.ID, events[0].EventData["roomId"])
	assert.Equal(t, "kitchen", events[0].EventData["roomType"])
}

func TestExecuteCreateRoomUnknownType(t *testing.T) {
	h, db := newTestHandler(t)

	_, err := h.ExecuteCreateRoom(context.Background(), CreateRoomCommand{UserID: ownerID, RoomTypeID: 99})

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
	assert.Equal(t, "NOT_FOUND", perr.EnvelopeCode())
	assert.Equal(t, "Room type with id 99 not found.", perr.Message)
	assert.Empty(t, db.Events())
}

func TestExecuteCreateRoomSurvivesAnalyticsFailure(t *testing.T) {
	h, db := newTestHandler(t)
	db.Fail(testhelpers.OpCreateEvent, errors.New("events table locked"))

	resp, err := h.ExecuteCreateRoom(context.Background(), CreateRoomCommand{UserID: ownerID, RoomTypeID: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, db.Calls(testhelpers.OpCreateEvent))
}

func TestExecuteGetRoom(t *testing.T) {
	h, db := newTestHandler(t)
	db.AddRoom(roomID, ownerID, 1)
	db.AddPhoto(photo.Photo{ID: "p1", RoomID: roomID, PhotoType: photo.PhotoTypeRoom, StoragePath: "users/u/rooms/r/room/1.jpg"})

	t.Run("owner", func(t *testing.T) {
		resp, err := h.ExecuteGetRoom(context.Background(), GetRoomCommand{UserID: ownerID, RoomID: roomID})
		require.NoError(t, err)
		assert.Equal(t, roomID, resp.ID)
		require.Len(t, resp.Photos, 1)
		assert.Equal(t, photoURL+"/object/users/u/rooms/r/room/1.jpg?signature=test", resp.Photos[0].URL)
		assert.Equal(t, int64(1), resp.PhotoCount.Room)
	})

	t.Run("other user gets 404 never 403", func(t *testing.T) {
		_, err := h.ExecuteGetRoom(context.Background(), GetRoomCommand{UserID: otherID, RoomID: roomID})

		perr := platformErr(t, err)
		assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
		assert.Equal(t, "NOT_FOUND", perr.EnvelopeCode())
		assert.Equal(t, "Room not found.", perr.Message)
	})

	t.Run("missing room", func(t *testing.T) {
		_, err := h.ExecuteGetRoom(context.Background(), GetRoomCommand{UserID: ownerID, RoomID: missing})

		perr := platformErr(t, err)
		assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
		assert.Equal(t, "Room not found.", perr.Message)
	})

	t.Run("deleted room", func(t *testing.T) {
		db.AddRoom(missing, ownerID, 1)
		db.SoftDeleteRoom(missing)

		_, err := h.ExecuteGetRoom(context.Background(), GetRoomCommand{UserID: ownerID, RoomID: missing})
		assert.Equal(t, http.StatusNotFound, platformErr(t, err).HTTPStatus())
	})
}

func TestExecuteGetRoomRepositoryFailure(t *testing.T) {
	h, db := newTestHandler(t)
	db.AddRoom(roomID, ownerID, 1)
	db.Fail(testhelpers.OpListPhotos, errors.New("connection reset by peer"))

	_, err := h.ExecuteGetRoom(context.Background(), GetRoomCommand{UserID: ownerID, RoomID: roomID})

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusInternalServerError, perr.HTTPStatus())
	assert.ErrorContains(t, err, "connection reset by peer")
}
