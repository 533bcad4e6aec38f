package photohandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
	"github.com/roomcraft/roomcraft-server/pkg/testhelpers"
)

const (
	ownerID = "user-owner"
	otherID = "user-other"
	roomID  = "4f6b1c2e-8a3d-4e5f-9b7c-0d1e2f3a4b5c"
	baseURL = "https://storage.test"
)

type fixture struct {
	handler *PhotoHandler
	db      *testhelpers.MemoryDB
	store   *testhelpers.MemoryObjectStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.NewMemoryDB()
	store := testhelpers.NewMemoryObjectStore(baseURL)
	log := zerolog.Nop()
	db.AddRoom(roomID, ownerID, 1)
	return &fixture{
		handler: NewPhotoHandler(
			room.NewRoomService(db.Rooms(), log),
			photo.NewPhotoService(db.Photos(), store, photo.Config{MaxPhotosPerRoom: 10}, log),
			analytics.NewAnalyticsService(db.Analytics(), log),
			log,
		),
		db:    db,
		store: store,
	}
}

func platformErr(t *testing.T, err error) *platformerrors.PlatformError {
	t.Helper()
	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	return perr
}

func uploadCmd(userID string) GenerateUploadURLCommand {
	return GenerateUploadURLCommand{
		UserID:      userID,
		RoomID:      roomID,
		PhotoType:   photo.PhotoTypeRoom,
		FileName:    "sofa.png",
		ContentType: "image/png",
	}
}

func TestUploadThenConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	upload, err := f.handler.ExecuteGenerateUploadURL(ctx, uploadCmd(ownerID))
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^users/` + ownerID + `/rooms/` + roomID + `/room/\d+-[0-9a-f-]{36}\.png$`)
	assert.Regexp(t, pattern, upload.StoragePath)
	assert.Equal(t, fmt.Sprintf("%s/upload/%s?content-type=image%%2Fpng", baseURL, upload.StoragePath), upload.UploadURL)
	assert.NotEmpty(t, upload.PhotoID)
	assert.NotEmpty(t, upload.ExpiresAt)

	pending, ok := f.db.Photo(upload.PhotoID)
	require.True(t, ok)
	assert.Nil(t, pending.ConfirmedAt)

	description := "north facing window"
	confirmed, err := f.handler.ExecuteConfirmPhotoUpload(ctx, ConfirmPhotoUploadCommand{
		UserID:      ownerID,
		RoomID:      roomID,
		PhotoID:     upload.PhotoID,
		PhotoType:   photo.PhotoTypeRoom,
		StoragePath: upload.StoragePath,
		Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, upload.PhotoID, confirmed.ID)
	assert.Equal(t, baseURL+"/object/"+upload.StoragePath+"?signature=test", confirmed.URL)
	require.NotNil(t, confirmed.Description)
	assert.Equal(t, description, *confirmed.Description)

	events := f.db.Events()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.EventPhotoUploaded, events[0].EventType)
	assert.Equal(t, "room", events[0].EventData["photoType"])
}

func TestUploadRejectsForeignRoomAsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.ExecuteGenerateUploadURL(context.Background(), uploadCmd(otherID))

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
	assert.Equal(t, "Room not found.", perr.Message)
	assert.Zero(t, f.db.Calls(testhelpers.OpCreatePhoto))
}

func TestUploadEnforcesPhotoCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := f.handler.ExecuteGenerateUploadURL(ctx, uploadCmd(ownerID))
		require.NoError(t, err, "upload %d", i+1)
	}

	_, err := f.handler.ExecuteGenerateUploadURL(ctx, uploadCmd(ownerID))

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, perr.HTTPStatus())
	assert.Equal(t, "PAYLOAD_TOO_LARGE", perr.EnvelopeCode())
	assert.Equal(t, "Room has reached the maximum limit of 10 photos.", perr.Message)
	assert.Equal(t, int64(10), perr.Context["currentCount"])
	assert.Equal(t, 10, perr.Context["maxCount"])
	assert.Equal(t, 10, f.db.Calls(testhelpers.OpCreatePhoto))
}

func TestUploadSigningFailure(t *testing.T) {
	f := newFixture(t)
	f.store.UploadErr = errors.New("presign: credentials expired")

	_, err := f.handler.ExecuteGenerateUploadURL(context.Background(), uploadCmd(ownerID))

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusInternalServerError, perr.HTTPStatus())
	assert.ErrorContains(t, err, "credentials expired")

	count, err := f.handler.photoService.CountByRoomID(context.Background(), roomID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConfirmMismatchedTuple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	upload, err := f.handler.ExecuteGenerateUploadURL(ctx, uploadCmd(ownerID))
	require.NoError(t, err)

	_, err = f.handler.ExecuteConfirmPhotoUpload(ctx, ConfirmPhotoUploadCommand{
		UserID:      ownerID,
		RoomID:      roomID,
		PhotoID:     upload.PhotoID,
		PhotoType:   photo.PhotoTypeInspiration,
		StoragePath: upload.StoragePath,
	})

	perr := platformErr(t, err)
	assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
	assert.Equal(t, "Photo not found.", perr.Message)
	assert.Equal(t, upload.PhotoID, perr.Context["photoId"])
	assert.Empty(t, f.db.Events())
}

func TestListRoomPhotos(t *testing.T) {
	f := newFixture(t)
	f.db.AddPhoto(photo.Photo{ID: "p1", RoomID: roomID, PhotoType: photo.PhotoTypeRoom, StoragePath: "a.jpg"})
	f.db.AddPhoto(photo.Photo{ID: "p2", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "b.jpg"})
	f.db.AddPhoto(photo.Photo{ID: "p3", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "c.jpg"})

	t.Run("all types", func(t *testing.T) {
		resp, err := f.handler.ExecuteListRoomPhotos(context.Background(), ListRoomPhotosCommand{UserID: ownerID, RoomID: roomID})
		require.NoError(t, err)
		assert.Len(t, resp.Photos, 3)
		assert.Equal(t, int64(1), resp.Counts.Room)
		assert.Equal(t, int64(2), resp.Counts.Inspiration)
		assert.Equal(t, int64(3), resp.Counts.Total)
	})

	t.Run("filtered counts stay global", func(t *testing.T) {
		resp, err := f.handler.ExecuteListRoomPhotos(context.Background(), ListRoomPhotosCommand{UserID: ownerID, RoomID: roomID, PhotoType: "room"})
		require.NoError(t, err)
		require.Len(t, resp.Photos, 1)
		assert.Equal(t, "p1", resp.Photos[0].ID)
		assert.Equal(t, int64(3), resp.Counts.Total)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := f.handler.ExecuteListRoomPhotos(context.Background(), ListRoomPhotosCommand{UserID: ownerID, RoomID: roomID, PhotoType: "garage"})

		perr := platformErr(t, err)
		assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
		assert.Equal(t, "garage", perr.Context["providedValue"])
		assert.Equal(t, []string{"room", "inspiration"}, perr.Context["allowedValues"])
	})

	t.Run("foreign room", func(t *testing.T) {
		_, err := f.handler.ExecuteListRoomPhotos(context.Background(), ListRoomPhotosCommand{UserID: otherID, RoomID: roomID})
		assert.Equal(t, http.StatusNotFound, platformErr(t, err).HTTPStatus())
	})
}
