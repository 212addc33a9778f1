package cache

import (
	"context"
	"time"
)

// Cache is the key/value store behind the page cache. Values are stored as
// JSON by implementations.
type Cache interface {
	// Get decodes the entry into dest. found is false on a miss, in which
	// case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key. ttl = 0 keeps the key until deleted.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Incr atomically increments the integer stored at key, starting from 0
	Incr(ctx context.Context, key string) (int64, error)

	// DeletePattern removes every key matching a Redis glob pattern ("page:/news/*")
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
