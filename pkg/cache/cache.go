package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service stores JSON-serializable values with per-key TTL. Get decodes
// into dest and returns ErrCacheMiss when the key is absent or expired.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
