package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Config holds the settings for the Redis-backed idempotency store.
type Config struct {
	Addr        string
	DB          int
	DialTimeout time.Duration
	KeyTTL      time.Duration
}

// Open dials Redis, pings it and returns an IdempotencyStore that owns the
// client. Call Close when done.
func Open(ctx context.Context, cfg Config) (*IdempotencyStore, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: dial,
	})
	store := NewIdempotencyStore(client, cfg.KeyTTL)

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return store, nil
}

// Ping is used by the readiness probe.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", s.client.Options().Addr, err)
	}
	return nil
}

func (s *IdempotencyStore) Close() error {
	return s.client.Close()
}
