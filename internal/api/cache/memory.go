package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// entry wraps a cached value with a stable internal identifier. Upserting an
// existing key keeps its identifier; only a newly-created entry mints one.
type entry struct {
	ID    uuid.UUID
	Value []byte
}

// MemoryStore is the transient in-process backend used when the durable
// backend is unreachable. go-cache handles TTL bookkeeping and background
// eviction; an expired-but-not-yet-evicted entry still reads as a miss.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, found := s.c.Get(key)
	if !found {
		return nil, types.ErrCacheMiss
	}
	e := v.(entry)
	out := make([]byte, len(e.Value))
	copy(out, e.Value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	id := uuid.New()
	if existing, found := s.c.Get(key); found {
		id = existing.(entry).ID
	}
	val := make([]byte, len(value))
	copy(val, value)
	s.c.Set(key, entry{ID: id, Value: val}, ttl)
	return nil
}

// EntryID exposes the internal identifier of a live entry, mainly for tests
// asserting upsert identity semantics.
func (s *MemoryStore) EntryID(key string) (uuid.UUID, bool) {
	v, found := s.c.Get(key)
	if !found {
		return uuid.Nil, false
	}
	return v.(entry).ID, true
}
