package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
)

const roomTypesKey = "room_types:all"

// RoomTypeMemoryCache keeps the room type dictionary in process memory. The
// dictionary only changes on seed, so a short TTL is enough.
type RoomTypeMemoryCache struct {
	next  roomtype.RoomTypeRepository
	cache *lru.Cache
	ttl   time.Duration
	mu    sync.RWMutex
	now   func() time.Time
}

type roomTypesEntry struct {
	value     []*roomtype.RoomType
	expiresAt time.Time
}

var _ roomtype.RoomTypeRepository = (*RoomTypeMemoryCache)(nil)

// NewRoomTypeMemoryCache wraps next. A non-positive ttl disables caching and
// returns next unchanged.
func NewRoomTypeMemoryCache(next roomtype.RoomTypeRepository, ttl time.Duration) (roomtype.RoomTypeRepository, error) {
	if ttl <= 0 {
		return next, nil
	}
	cache, err := lru.New(4)
	if err != nil {
		return nil, err
	}
	return &RoomTypeMemoryCache{
		next:  next,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

// List implements roomtype.RoomTypeRepository.
func (c *RoomTypeMemoryCache) List(ctx context.Context) ([]*roomtype.RoomType, error) {
	if types, ok := c.get(); ok {
		return types, nil
	}

	types, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(roomTypesKey, roomTypesEntry{value: types, expiresAt: c.now().Add(c.ttl)})
	c.mu.Unlock()
	return types, nil
}

func (c *RoomTypeMemoryCache) get() ([]*roomtype.RoomType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, found := c.cache.Get(roomTypesKey)
	if !found {
		return nil, false
	}
	entry := val.(roomTypesEntry)
	if c.now().After(entry.expiresAt) {
		c.cache.Remove(roomTypesKey)
		return nil, false
	}
	return entry.value, true
}
