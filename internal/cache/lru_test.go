package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/resource"
)

func byteLen(b []byte) int64 { return int64(len(b)) }

func TestNewLRU_Invalid(t *testing.T) {
	_, err := NewLRU[int, []byte](0, byteLen, nil, nil)
	assert.Error(t, err)
	_, err = NewLRU[int, []byte](10, nil, nil, nil)
	assert.Error(t, err)
}

func TestLRU_EvictsByBytes(t *testing.T) {
	var evicted []int
	c, err := NewLRU(100, byteLen, nil, func(k int, _ []byte) {
		evicted = append(evicted, k)
	})
	require.NoError(t, err)

	assert.True(t, c.Add(1, make([]byte, 40)))
	assert.True(t, c.Add(2, make([]byte, 40)))
	assert.Equal(t, int64(80), c.Stats().Bytes)

	// Touch 1 so 2 becomes the oldest.
	_, ok := c.Get(1)
	require.True(t, ok)

	assert.True(t, c.Add(3, make([]byte, 30)))
	assert.Equal(t, []int{2}, evicted)
	assert.Equal(t, int64(70), c.Stats().Bytes)
	assert.False(t, c.Contains(2))
	assert.True(t, c.Contains(1))
	assert.Equal(t, 2, c.Stats().Entries)
}

func TestLRU_EdgeCases(t *testing.T) {
	c, err := NewLRU[string, []byte](50, byteLen, nil, nil)
	require.NoError(t, err)

	// Larger than capacity.
	assert.False(t, c.Add("k", make([]byte, 60)))
	_, ok := c.Get("k")
	assert.False(t, ok)

	// Replacing a value adjusts the size both ways.
	require.True(t, c.Add("k", make([]byte, 10)))
	require.True(t, c.Add("k", make([]byte, 20)))
	assert.Equal(t, int64(20), c.Stats().Bytes)
	require.True(t, c.Add("k", make([]byte, 5)))
	assert.Equal(t, int64(5), c.Stats().Bytes)
	assert.Equal(t, int64(0), c.Stats().Evictions, "replacement is not an eviction")

	assert.True(t, c.Remove("k"))
	assert.False(t, c.Remove("k"))
	assert.Equal(t, int64(0), c.Stats().Bytes)
}

func TestLRU_ResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c, err := NewLRU[int, []byte](50, byteLen, rc, nil)
	require.NoError(t, err)

	require.True(t, c.Add(1, make([]byte, 8)))
	assert.Equal(t, int64(8), rc.MemoryUsage())

	// Within the cache capacity but beyond the shared limit.
	assert.False(t, c.Add(2, make([]byte, 4)))
	assert.Equal(t, int64(8), rc.MemoryUsage())

	c.Purge()
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, 0, c.Stats().Entries)
	assert.True(t, c.Add(2, make([]byte, 4)))
}

func TestLRU_Stats(t *testing.T) {
	c, err := NewLRU[int, []byte](10, byteLen, nil, nil)
	require.NoError(t, err)

	c.Add(1, make([]byte, 6))
	c.Get(1)
	c.Get(1)
	c.Get(2)
	c.Add(2, make([]byte, 6))

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, int64(1), s.Evictions)
	assert.Equal(t, 1, s.Entries)
	assert.Equal(t, int64(6), s.Bytes)
}

func TestLRU_Concurrent(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 10})
	c, err := NewLRU[int, []byte](512, byteLen, rc, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (w*200 + i) % 64
				if _, ok := c.Get(k); !ok {
					c.Add(k, make([]byte, 16))
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Stats().Bytes, int64(512))
	assert.Equal(t, c.Stats().Bytes, rc.MemoryUsage())
}
