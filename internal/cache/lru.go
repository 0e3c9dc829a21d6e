package cache

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/resource"
)

// LRU is a least-recently-used cache bounded by the total byte size of its
// values. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	sizeOf   func(V) int64
	items    *simplelru.LRU[K, V]
	rc       *resource.Controller
	onEvict  func(K, V)

	// removing is set while Remove or Purge run, so the eviction callback
	// can tell explicit removals from capacity evictions.
	removing bool

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	Bytes     int64
}

// NewLRU creates a cache holding at most capacity bytes as measured by
// sizeOf. If rc is non-nil every cached byte is also reserved there.
// onEvict, if non-nil, is called for every value dropped to make room; it
// runs with the cache locked and must not call back into the cache.
func NewLRU[K comparable, V any](capacity int64, sizeOf func(V) int64, rc *resource.Controller, onEvict func(K, V)) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be positive, got %d", capacity)
	}
	if sizeOf == nil {
		return nil, fmt.Errorf("cache: sizeOf is required")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		sizeOf:   sizeOf,
		rc:       rc,
		onEvict:  onEvict,
	}
	// Entries are bounded by bytes, not by count.
	items, err := simplelru.NewLRU[K, V](math.MaxInt32, c.evicted)
	if err != nil {
		return nil, err
	}
	c.items = items
	return c, nil
}

func (c *LRU[K, V]) evicted(key K, value V) {
	n := c.sizeOf(value)
	c.size -= n
	c.rc.ReleaseMemory(n)
	if c.removing {
		return
	}
	c.evictions.Add(1)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// Get returns the cached value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Contains reports whether key is cached without touching its recency or
// the hit counters.
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Contains(key)
}

// Add caches value under key and reports whether it was admitted. Values
// larger than the capacity are never cached. If the resource controller
// denies the memory the value is not cached either.
func (c *LRU[K, V]) Add(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.sizeOf(value)
	if n > c.capacity {
		return false
	}
	if c.items.Contains(key) {
		c.removing = true
		c.items.Remove(key)
		c.removing = false
	}

	// Evict locally first, which hands memory back to the controller
	// before we ask it for more.
	for c.size+n > c.capacity {
		if _, _, ok := c.items.RemoveOldest(); !ok {
			break
		}
	}
	if err := c.rc.AcquireMemory(n); err != nil {
		return false
	}

	c.items.Add(key, value)
	c.size += n
	return true
}

// Remove drops key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removing = true
	defer func() { c.removing = false }()
	return c.items.Remove(key)
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removing = true
	defer func() { c.removing = false }()
	c.items.Purge()
}

// Stats returns the current counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.items.Len(),
		Bytes:     c.size,
	}
}
