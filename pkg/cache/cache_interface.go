package cache

import (
	"context"
	"time"
)

// Cache defines the contract of the cache layer.
// Implementations: Redis (infrastructure/cache), in-memory fakes in tests.
type Cache interface {
	// Get loads a value and unmarshals it into dest.
	// found = false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
