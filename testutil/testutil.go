package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// AscendingIndices returns n strictly ascending indices starting at start.
// Consecutive values differ by a random gap in [1, maxGap].
func (r *RNG) AscendingIndices(n int, start, maxGap int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if maxGap < 1 {
		maxGap = 1
	}
	out := make([]int64, n)
	v := start
	for i := range out {
		out[i] = v
		v += 1 + r.rand.Int63n(maxGap)
	}
	return out
}

// RandomIndices returns n indices drawn uniformly from [0, limit). The
// result is unsorted and may contain duplicates.
func (r *RNG) RandomIndices(n int, limit int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = r.rand.Int63n(limit)
	}
	return out
}

// Shuffle permutes values in place.
func (r *RNG) Shuffle(values []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// Range returns the inclusive range [from, to] as a slice.
func Range(from, to int64) []int64 {
	if to < from {
		return nil
	}
	out := make([]int64, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

// SortedUnique returns the distinct values of values in ascending order.
func SortedUnique(values []int64) []int64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Chunk splits values into consecutive slices of at most size elements.
func Chunk(values []int64, size int) [][]int64 {
	var out [][]int64
	for len(values) > 0 {
		n := min(size, len(values))
		out = append(out, values[:n:n])
		values = values[n:]
	}
	return out
}
