package cache

import (
	"context"
	"log/slog"
	"time"
)

// Store is the cache contract the rest of the application sees. Get returns
// types.ErrCacheMiss for an absent key and for an existing-but-expired entry.
// Set has upsert semantics: it creates the entry if absent and replaces value
// and expiry if present.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Pinger reports whether a durable backend is currently reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const reachabilityTimeout = 500 * time.Millisecond

// FallbackStore delegates each call to the durable backend when it is
// reachable and to the transient in-process backend otherwise. Entries are
// never migrated between backends: a write that landed in the transient store
// is invisible once the durable backend comes back, which is an accepted
// staleness/loss policy for a degraded-mode safety net.
type FallbackStore struct {
	durable   Store
	durablePg Pinger
	transient Store
	logger    *slog.Logger
}

func NewFallbackStore(durable Store, pinger Pinger, transient Store, logger *slog.Logger) *FallbackStore {
	return &FallbackStore{
		durable:   durable,
		durablePg: pinger,
		transient: transient,
		logger:    logger,
	}
}

func (s *FallbackStore) backend(ctx context.Context) Store {
	if s.durable == nil || s.durablePg == nil {
		return s.transient
	}
	pingCtx, cancel := context.WithTimeout(ctx, reachabilityTimeout)
	defer cancel()
	if err := s.durablePg.Ping(pingCtx); err != nil {
		s.logger.WarnContext(ctx, "Durable cache backend unreachable, using transient store",
			slog.Any("error", err))
		return s.transient
	}
	return s.durable
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.backend(ctx).Get(ctx, key)
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.backend(ctx).Set(ctx, key, value, ttl)
}
