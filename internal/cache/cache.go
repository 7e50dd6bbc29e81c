// Package cache stores encoded layout results keyed by graph fingerprint.
package cache

// Cache defines the interface for caching encoded results.
type Cache interface {
	// Get returns the value stored under key if present and not expired.
	Get(key uint64) ([]byte, bool)

	// Set stores value under key with the cache's TTL.
	// It reports whether the value was admitted.
	Set(key uint64, value []byte) bool

	// Delete removes a value from the cache.
	Delete(key uint64)

	// Clear removes all values from the cache.
	Clear()

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats represents cache statistics.
type Stats struct {
	Hits      uint64 // Total cache hits
	Misses    uint64 // Total cache misses
	KeysAdded uint64 // Total keys added
	Evictions uint64 // Total evictions
	Size      int64  // Approximate size in bytes
	Items     int64  // Current number of items
}

// Nop is a Cache that never stores anything.
type Nop struct{}

func (Nop) Get(uint64) ([]byte, bool) { return nil, false }
func (Nop) Set(uint64, []byte) bool   { return false }
func (Nop) Delete(uint64)             {}
func (Nop) Clear()                    {}
func (Nop) Stats() Stats              { return Stats{} }
