package cache

import (
	"time"
)

// CacheService represents a generic cache service. The worker uses it as a
// seen-link guard so a re-run does not republish routes that already went
// out; delivery is at-least-once, so a cache miss only costs a duplicate
// publish downstream.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
