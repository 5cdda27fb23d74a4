// Package cache holds in-process stores used when no shared backend is
// configured.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
)

const (
	defaultTTL     = 24 * time.Hour
	defaultMaxKeys = 10_000
)

// IdempotencyStore keeps Idempotency-Key mappings in a bounded LRU. Entries
// are local to the process.
type IdempotencyStore struct {
	mu    sync.Mutex
	cache *ccache.Cache[int64]
	ttl   time.Duration
}

// NewIdempotencyStore returns a store holding at most maxKeys entries for ttl.
// Non-positive arguments fall back to 10000 keys and 24h.
func NewIdempotencyStore(maxKeys int64, ttl time.Duration) *IdempotencyStore {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdempotencyStore{
		cache: ccache.New(ccache.Configure[int64]().MaxSize(maxKeys)),
		ttl:   ttl,
	}
}

func (s *IdempotencyStore) Lookup(_ context.Context, scope, key string) (int64, bool, error) {
	item := s.cache.Get(scope + ":" + key)
	if item == nil || item.Expired() {
		return 0, false, nil
	}
	return item.Value(), true, nil
}

// Remember keeps the first id stored for scope/key.
func (s *IdempotencyStore) Remember(_ context.Context, scope, key string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := scope + ":" + key
	if item := s.cache.Get(k); item != nil && !item.Expired() {
		return nil
	}
	s.cache.Set(k, id, s.ttl)
	return nil
}

// Close stops the cache's background worker.
func (s *IdempotencyStore) Close() {
	s.cache.Stop()
}
