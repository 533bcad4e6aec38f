// Package testhelpers provides in-memory stand-ins for the repositories and
// the object store, plus token minting, for handler and service tests.
package testhelpers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
)

// Operation names accepted by MemoryDB.Fail.
const (
	OpListRoomTypes   = "room_types.list"
	OpCreateRoom      = "rooms.create"
	OpFindRoom        = "rooms.find"
	OpListRooms       = "rooms.list"
	OpCountRoomPhotos = "rooms.count_photos"
	OpCreatePhoto     = "photos.create"
	OpCountPhotos     = "photos.count"
	OpConfirmPhoto    = "photos.confirm"
	OpListPhotos      = "photos.list"
	OpCreateEvent     = "events.create"
)

// MemoryDB is a goroutine-safe in-memory database shared by the repository views.
type MemoryDB struct {
	mu        sync.Mutex
	roomTypes map[int]*roomtype.RoomType
	rooms     map[string]*room.Room
	photos    []*photo.Photo
	events    []*analytics.Event
	failures  map[string]error
	calls     map[string]int
}

// NewMemoryDB returns a database seeded with the default room types.
func NewMemoryDB() *MemoryDB {
	db := &MemoryDB{
		roomTypes: map[int]*roomtype.RoomType{},
		rooms:     map[string]*room.Room{},
		failures:  map[string]error{},
		calls:     map[string]int{},
	}
	for _, rt := range []roomtype.RoomType{
		{ID: 1, Name: "living_room", DisplayName: "Living room"},
		{ID: 2, Name: "bedroom", DisplayName: "Bedroom"},
		{ID: 3, Name: "kitchen", DisplayName: "Kitchen"},
	} {
		rt := rt
		db.roomTypes[rt.ID] = &rt
	}
	return db
}

// Fail makes every later call of op return err. A nil err clears it.
func (db *MemoryDB) Fail(op string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, op)
		return
	}
	db.failures[op] = err
}

// Calls returns how many times op was invoked.
func (db *MemoryDB) Calls(op string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls[op]
}

func (db *MemoryDB) enter(op string) error {
	db.calls[op]++
	return db.failures[op]
}

// AddRoom inserts a room owned by ownerID directly and returns a copy.
func (db *MemoryDB) AddRoom(roomID, ownerID string, roomTypeID int) *room.Room {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now().UTC()
	r := &room.Room{ID: roomID, OwnerUserID: ownerID, RoomTypeID: roomTypeID, CreatedAt: now, UpdatedAt: now}
	if rt, ok := db.roomTypes[roomTypeID]; ok {
		r.RoomType = *rt
	}
	db.rooms[roomID] = r
	cp := *r
	return &cp
}

// SoftDeleteRoom marks the room deleted.
func (db *MemoryDB) SoftDeleteRoom(roomID string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if r, ok := db.rooms[roomID]; ok {
		now := time.Now().UTC()
		r.DeletedAt = &now
	}
}

// AddPhoto inserts a photo row directly.
func (db *MemoryDB) AddPhoto(p photo.Photo) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	db.photos = append(db.photos, &p)
}

// Photo returns a copy of the stored photo, deleted or not.
func (db *MemoryDB) Photo(photoID string) (*photo.Photo, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range db.photos {
		if p.ID == photoID {
			cp := *p
			return &cp, true
		}
	}
	return nil, false
}

// Events returns copies of every tracked event.
func (db *MemoryDB) Events() []analytics.Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]analytics.Event, 0, len(db.events))
	for _, e := range db.events {
		out = append(out, *e)
	}
	return out
}

// RoomTypes returns the room type repository view.
func (db *MemoryDB) RoomTypes() roomtype.RoomTypeRepository { return roomTypeRepo{db} }

// Rooms returns the room repository view.
func (db *MemoryDB) Rooms() room.RoomRepository { return roomRepo{db} }

// Photos returns the photo repository view.
func (db *MemoryDB) Photos() photo.PhotoRepository { return photoRepo{db} }

// Analytics returns the analytics repository view.
func (db *MemoryDB) Analytics() analytics.AnalyticsRepository { return analyticsRepo{db} }

// ===============================================
// Room types
// ===============================================

type roomTypeRepo struct{ db *MemoryDB }

func (r roomTypeRepo) List(_ context.Context) ([]*roomtype.RoomType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpListRoomTypes); err != nil {
		return nil, err
	}
	out := make([]*roomtype.RoomType, 0, len(r.db.roomTypes))
	for _, rt := range r.db.roomTypes {
		cp := *rt
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===============================================
// Rooms
// ===============================================

type roomRepo struct{ db *MemoryDB }

func (r roomRepo) Create(_ context.Context, rm *room.Room) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCreateRoom); err != nil {
		return err
	}
	rt, ok := r.db.roomTypes[rm.RoomTypeID]
	if !ok {
		return room.ErrRoomTypeNotFound
	}
	now := time.Now().UTC()
	rm.RoomType = *rt
	rm.CreatedAt = now
	rm.UpdatedAt = now
	cp := *rm
	r.db.rooms[rm.ID] = &cp
	return nil
}

func (r roomRepo) FindByID(_ context.Context, roomID string) (*room.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpFindRoom); err != nil {
		return nil, err
	}
	rm, ok := r.db.rooms[roomID]
	if !ok || rm.DeletedAt != nil {
		return nil, nil
	}
	cp := *rm
	return &cp, nil
}

func (r roomRepo) ListByOwner(_ context.Context, userID string) ([]*room.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpListRooms); err != nil {
		return nil, err
	}
	var out []*room.Room
	for _, rm := range r.db.rooms {
		if rm.OwnerUserID == userID && rm.DeletedAt == nil {
			cp := *rm
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r roomRepo) ExistsForOwner(_ context.Context, roomID, userID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpFindRoom); err != nil {
		return false, err
	}
	rm, ok := r.db.rooms[roomID]
	return ok && rm.DeletedAt == nil && rm.OwnerUserID == userID, nil
}

func (r roomRepo) CountPhotosByRoomIDs(_ context.Context, roomIDs []string) (map[string]room.PhotoCount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCountRoomPhotos); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]room.PhotoCount, len(roomIDs))
	for _, p := range r.db.photos {
		if _, ok := wanted[p.RoomID]; !ok || p.DeletedAt != nil {
			continue
		}
		c := out[p.RoomID]
		switch p.PhotoType {
		case photo.PhotoTypeRoom:
			c.Room++
		case photo.PhotoTypeInspiration:
			c.Inspiration++
		}
		out[p.RoomID] = c
	}
	return out, nil
}

// ===============================================
// Photos
// ===============================================

type photoRepo struct{ db *MemoryDB }

func (r photoRepo) Create(_ context.Context, p *photo.Photo) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCreatePhoto); err != nil {
		return err
	}
	for _, existing := range r.db.photos {
		if existing.ID == p.ID {
			return errors.New("duplicate photo id")
		}
	}
	cp := *p
	r.db.photos = append(r.db.photos, &cp)
	return nil
}

func (r photoRepo) CountByRoomID(_ context.Context, roomID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCountPhotos); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range r.db.photos {
		if p.RoomID == roomID && p.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r photoRepo) FindByTuple(_ context.Context, photoID, roomID string, photoType photo.PhotoType, storagePath string) (*photo.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpConfirmPhoto); err != nil {
		return nil, err
	}
	for _, p := range r.db.photos {
		if p.ID == photoID && p.RoomID == roomID && p.PhotoType == photoType && p.StoragePath == storagePath && p.DeletedAt == nil {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r photoRepo) Confirm(_ context.Context, photoID string, description *string, confirmedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.photos {
		if p.ID == photoID {
			p.Description = description
			at := confirmedAt
			p.ConfirmedAt = &at
			return nil
		}
	}
	return errors.New("photo not found")
}

func (r photoRepo) ListByRoomID(_ context.Context, roomID string, photoType *photo.PhotoType) ([]*photo.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpListPhotos); err != nil {
		return nil, err
	}
	var out []*photo.Photo
	for i := len(r.db.photos) - 1; i >= 0; i-- {
		p := r.db.photos[i]
		if p.RoomID != roomID || p.DeletedAt != nil {
			continue
		}
		if photoType != nil && p.PhotoType != *photoType {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r photoRepo) ListTypesByRoomID(_ context.Context, roomID string) ([]photo.PhotoType, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCountPhotos); err != nil {
		return nil, err
	}
	var out []photo.PhotoType
	for _, p := range r.db.photos {
		if p.RoomID == roomID && p.DeletedAt == nil {
			out = append(out, p.PhotoType)
		}
	}
	return out, nil
}

func (r photoRepo) ListUnconfirmedBefore(_ context.Context, cutoff time.Time, limit int) ([]*photo.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*photo.Photo
	for _, p := range r.db.photos {
		if p.ConfirmedAt == nil && p.DeletedAt == nil && p.CreatedAt.Before(cutoff) {
			cp := *p
			out = append(out, &cp)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r photoRepo) SoftDelete(_ context.Context, photoIDs []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids := make(map[string]struct{}, len(photoIDs))
	for _, id := range photoIDs {
		ids[id] = struct{}{}
	}
	now := time.Now().UTC()
	for _, p := range r.db.photos {
		if _, ok := ids[p.ID]; ok {
			p.DeletedAt = &now
		}
	}
	return nil
}

// ===============================================
// Analytics
// ===============================================

type analyticsRepo struct{ db *MemoryDB }

func (r analyticsRepo) Create(_ context.Context, event *analytics.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.enter(OpCreateEvent); err != nil {
		return err
	}
	cp := *event
	r.db.events = append(r.db.events, &cp)
	return nil
}
