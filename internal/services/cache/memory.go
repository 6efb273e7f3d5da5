package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a size-bounded in-memory cache. Entries past their TTL
// are dropped lazily and by a background sweep; when full, the entries
// closest to expiry are evicted first.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	sizeOf   func(V) int64
	maxBytes int64
	size     int64
	stats    Stats
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type entry[V any] struct {
	value  V
	expiry time.Time
	size   int64
}

// NewMemoryCache creates a cache holding at most maxMB megabytes as
// measured by sizeOf. maxMB <= 0 means unbounded.
func NewMemoryCache[V any](maxMB int64, sizeOf func(V) int64) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		items:    make(map[string]*entry[V]),
		sizeOf:   sizeOf,
		maxBytes: maxMB * 1024 * 1024,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.sweep(time.Minute)

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache[V]) Get(ctx context.Context, key string) (V, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	var zero V
	item, ok := mc.items[key]
	if !ok {
		mc.stats.Misses++
		return zero, false
	}
	if mc.now().After(item.expiry) {
		mc.remove(key, item)
		mc.stats.Misses++
		return zero, false
	}

	mc.stats.Hits++
	return item.value, true
}

// Set stores a value in the cache with a TTL. Values larger than the
// whole cache are not stored.
func (mc *MemoryCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	size := int64(len(key)) + mc.sizeOf(value)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.maxBytes > 0 && size > mc.maxBytes {
		return nil
	}
	if old, ok := mc.items[key]; ok {
		mc.remove(key, old)
	}
	mc.makeRoom(size)

	mc.items[key] = &entry[V]{value: value, expiry: mc.now().Add(ttl), size: size}
	mc.size += size
	mc.stats.Sets++
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache[V]) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if item, ok := mc.items[key]; ok {
		mc.remove(key, item)
	}
	return nil
}

// Clear removes all values from the cache
func (mc *MemoryCache[V]) Clear(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.items = make(map[string]*entry[V])
	mc.size = 0
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache[V]) Stats() Stats {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	stats := mc.stats
	stats.Size = mc.size
	stats.MaxSize = mc.maxBytes
	return stats
}

// Stop ends the background sweep. Safe to call more than once.
func (mc *MemoryCache[V]) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache[V]) sweep(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpired()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

// remove drops one entry. Callers hold mu.
func (mc *MemoryCache[V]) remove(key string, item *entry[V]) {
	delete(mc.items, key)
	mc.size -= item.size
}

// removeExpired drops every expired entry. Callers hold mu.
func (mc *MemoryCache[V]) removeExpired() {
	now := mc.now()
	for key, item := range mc.items {
		if now.After(item.expiry) {
			mc.remove(key, item)
			mc.stats.Evictions++
		}
	}
}

// makeRoom evicts until sizeNeeded fits. Callers hold mu.
func (mc *MemoryCache[V]) makeRoom(sizeNeeded int64) {
	if mc.maxBytes <= 0 || mc.size+sizeNeeded <= mc.maxBytes {
		return
	}

	mc.removeExpired()

	for mc.size+sizeNeeded > mc.maxBytes && len(mc.items) > 0 {
		var oldestKey string
		var oldest *entry[V]
		for key, item := range mc.items {
			if oldest == nil || item.expiry.Before(oldest.expiry) {
				oldestKey, oldest = key, item
			}
		}
		mc.remove(oldestKey, oldest)
		mc.stats.Evictions++
	}
}
