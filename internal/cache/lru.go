package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// LRUCache is a size-bounded cache backed by ristretto.
type LRUCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewLRU creates a cache holding at most maxSizeMB megabytes of values.
// maxEntries sizes the admission counters. A ttl of 0 keeps entries until evicted.
func NewLRU(maxSizeMB int64, maxEntries int64, ttl time.Duration) (*LRUCache, error) {
	if maxSizeMB <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d MB", maxSizeMB)
	}

	// NumCounters should be ~10x the number of entries
	numCounters := maxEntries * 10
	if numCounters < 1000 {
		numCounters = 1000
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxSizeMB * 1024 * 1024,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &LRUCache{cache: cache, ttl: ttl}, nil
}

// Get retrieves a value from the cache by key.
func (c *LRUCache) Get(key uint64) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		c.cache.Del(key)
		return nil, false
	}
	return data, true
}

// Set stores value under key. Cost is the value size in bytes.
func (c *LRUCache) Set(key uint64, value []byte) bool {
	ok := c.cache.SetWithTTL(key, value, int64(len(value)), c.ttl)
	// Wait for value to pass through buffers so a following Get sees it
	c.cache.Wait()
	return ok
}

// Delete removes a value from the cache.
func (c *LRUCache) Delete(key uint64) {
	c.cache.Del(key)
}

// Clear removes all values from the cache.
func (c *LRUCache) Clear() {
	c.cache.Clear()
}

// Stats returns cache statistics.
func (c *LRUCache) Stats() Stats {
	m := c.cache.Metrics
	return Stats{
		Hits:      m.Hits(),
		Misses:    m.Misses(),
		KeysAdded: m.KeysAdded(),
		Evictions: m.KeysEvicted(),
		Size:      int64(m.CostAdded() - m.CostEvicted()),
		Items:     int64(m.KeysAdded() - m.KeysEvicted()),
	}
}

// Close closes the cache and releases resources.
func (c *LRUCache) Close() {
	c.cache.Close()
}
