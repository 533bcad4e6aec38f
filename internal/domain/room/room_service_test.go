package room_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

type fakeRoomRepo struct {
	rooms      map[string]*room.Room
	types      map[int]roomtype.RoomType
	counts     map[string]room.PhotoCount
	createErr  error
	countCalls int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:  map[string]*room.Room{},
		types:  map[int]roomtype.RoomType{1: {ID: 1, Name: "kitchen", DisplayName: "Kitchen"}},
		counts: map[string]room.PhotoCount{},
	}
}

func (f *fakeRoomRepo) Create(_ context.Context, r *room.Room) error {
	if f.createErr != nil {
		return f.createErr
	}
	rt, ok := f.types[r.RoomTypeID]
	if !ok {
		return room.ErrRoomTypeNotFound
	}
	r.RoomType = rt
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, roomID string) (*room.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok || r.DeletedAt != nil {
		return nil, nil
	}
	return r, nil
}

func (f *fakeRoomRepo) ListByOwner(_ context.Context, userID string) ([]*room.Room, error) {
	var out []*room.Room
	for _, r := range f.rooms {
		if r.OwnerUserID == userID && r.DeletedAt == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) ExistsForOwner(ctx context.Context, roomID, userID string) (bool, error) {
	r, _ := f.FindByID(ctx, roomID)
	return r != nil && r.OwnerUserID == userID, nil
}

func (f *fakeRoomRepo) CountPhotosByRoomIDs(_ context.Context, roomIDs []string) (map[string]room.PhotoCount, error) {
	f.countCalls++
	out := make(map[string]room.PhotoCount, len(roomIDs))
	for _, id := range roomIDs {
		out[id] = f.counts[id]
	}
	return out, nil
}

const (
	ownerID = "7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f"
	otherID = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

func TestCreateRoomReturnsZeroCounts(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := room.NewRoomService(repo, zerolog.Nop())

	r, err := svc.CreateRoom(context.Background(), ownerID, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, ownerID, r.OwnerUserID)
	assert.Equal(t, "kitchen", r.RoomType.Name)
	assert.Equal(t, room.PhotoCount{}, r.PhotoCount)
}

func TestCreateRoomUnknownTypeIsNotFound(t *testing.T) {
	svc := room.NewRoomService(newFakeRoomRepo(), zerolog.Nop())

	_, err := svc.CreateRoom(context.Background(), ownerID, 99)

	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.HTTPStatus())
	assert.Equal(t, "Room type with id 99 not found.", perr.Message)
	assert.Equal(t, 99, perr.Context["roomTypeId"])
	assert.ErrorIs(t, err, room.ErrRoomTypeNotFound)
}

func TestCreateRoomPermissionDeniedIsForbidden(t *testing.T) {
	repo := newFakeRoomRepo()
	repo.createErr = room.ErrInsufficientPrivilege
	svc := room.NewRoomService(repo, zerolog.Nop())

	_, err := svc.CreateRoom(context.Background(), ownerID, 1)

	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusForbidden, perr.HTTPStatus())
	assert.Equal(t, "Insufficient permissions to create room.", perr.Message)
}

func TestCreateRoomUnexpectedFailureIsInternal(t *testing.T) {
	repo := newFakeRoomRepo()
	repo.createErr = errors.New("connection reset")
	svc := room.NewRoomService(repo, zerolog.Nop())

	_, err := svc.CreateRoom(context.Background(), ownerID, 1)

	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.HTTPStatus())
}

func TestGetRoomsByUserIDCountsInOneQuery(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := room.NewRoomService(repo, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.CreateRoom(ctx, ownerID, 1)
	require.NoError(t, err)
	_, err = svc.CreateRoom(ctx, ownerID, 1)
	require.NoError(t, err)
	_, err = svc.CreateRoom(ctx, otherID, 1)
	require.NoError(t, err)
	repo.counts[first.ID] = room.PhotoCount{Room: 1, Inspiration: 2}

	rooms, err := svc.GetRoomsByUserID(ctx, ownerID)
	require.NoError(t, err)

	assert.Len(t, rooms, 2)
	assert.Equal(t, 1, repo.countCalls)
	for _, r := range rooms {
		if r.ID == first.ID {
			assert.Equal(t, room.PhotoCount{Room: 1, Inspiration: 2}, r.PhotoCount)
		}
	}
}

func TestGetRoomsByUserIDEmpty(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := room.NewRoomService(repo, zerolog.Nop())

	rooms, err := svc.GetRoomsByUserID(context.Background(), ownerID)
	require.NoError(t, err)

	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
	assert.Zero(t, repo.countCalls)
}

func TestAuthorizeOutcomes(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := room.NewRoomService(repo, zerolog.Nop())
	ctx := context.Background()

	owned, err := svc.CreateRoom(ctx, ownerID, 1)
	require.NoError(t, err)
	deleted, err := svc.CreateRoom(ctx, ownerID, 1)
	require.NoError(t, err)
	now := time.Now()
	deleted.DeletedAt = &now

	tests := []struct {
		name   string
		roomID string
		userID string
		want   room.AccessOutcome
	}{
		{"owner", owned.ID, ownerID, room.AccessOwned},
		{"other user", owned.ID, otherID, room.AccessForbidden},
		{"missing", "5f0c7a9e-1111-4222-8333-944455566677", ownerID, room.AccessNotFound},
		{"soft deleted", deleted.ID, ownerID, room.AccessNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := svc.Authorize(ctx, tt.roomID, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, access.Outcome)
			assert.Equal(t, tt.want == room.AccessOwned, access.Owned())
		})
	}
}

func TestVerifyRoomOwnership(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := room.NewRoomService(repo, zerolog.Nop())
	ctx := context.Background()

	r, err := svc.CreateRoom(ctx, ownerID, 1)
	require.NoError(t, err)

	ok, err := svc.VerifyRoomOwnership(ctx, r.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyRoomOwnership(ctx, r.ID, otherID)
	require.NoError(t, err)
	assert.False(t, ok)
}
