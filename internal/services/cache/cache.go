// Package cache holds decoded waveform payloads in memory so repeated
// /xy requests for the same channel skip the .npy read and encode.
package cache

import (
	"context"
	"time"
)

// DefaultTTL applies when Set is called with a non-positive ttl
const DefaultTTL = 30 * time.Minute

// Cache defines the interface for cache implementations
type Cache[V any] interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) (V, bool)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error
}

// Stats provides statistics about cache usage
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Size      int64
	MaxSize   int64
}

// Key joins an event and channel into a cache key
func Key(eventID, channel string) string {
	return eventID + "/" + channel
}
