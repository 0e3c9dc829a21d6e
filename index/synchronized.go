package index

import (
	"fmt"
	"iter"
	"sync"
)

// SynchronizedSet serializes every accessor of a wrapped set behind one lock.
//
// Each call is atomic on its own. A sequence of calls, such as Size followed
// by IndexAt, is not.
type SynchronizedSet struct {
	mu  *sync.RWMutex
	set Set
}

// NewSynchronizedSet wraps s with its own lock.
func NewSynchronizedSet(s Set) (*SynchronizedSet, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	return &SynchronizedSet{mu: &sync.RWMutex{}, set: s}, nil
}

func (s *SynchronizedSet) sealed() {}

// Size implements Set.
func (s *SynchronizedSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Size()
}

// ValueType implements Set.
func (s *SynchronizedSet) ValueType() ValueType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.ValueType()
}

// IsSorted implements Set.
func (s *SynchronizedSet) IsSorted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.IsSorted()
}

// Features implements Set.
func (s *SynchronizedSet) Features() Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Features() | FeatureThreadSafe
}

// IndexAt implements Set.
func (s *SynchronizedSet) IndexAt(i int) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.IndexAt(i)
}

// FirstIndex implements Set.
func (s *SynchronizedSet) FirstIndex() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.FirstIndex()
}

// LastIndex implements Set.
func (s *SynchronizedSet) LastIndex() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.LastIndex()
}

// Export implements Set.
func (s *SynchronizedSet) Export(begin, end int, dst []int64, off int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Export(begin, end, dst, off)
}

// All iterates a copy taken under the lock, so the yield callback never runs
// while the lock is held.
func (s *SynchronizedSet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		s.mu.RLock()
		values := Values(s.set)
		s.mu.RUnlock()
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}

// SubSet returns a synchronized view sharing the same lock.
func (s *SynchronizedSet) SubSet(from, to int) (Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, err := s.set.SubSet(from, to)
	if err != nil {
		return nil, err
	}
	return &SynchronizedSet{mu: s.mu, set: sub}, nil
}

// Sort implements Set.
func (s *SynchronizedSet) Sort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Sort()
}

// Externalize returns an unsynchronized copy of the current contents.
func (s *SynchronizedSet) Externalize() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set.Size() == 0 {
		return &ArraySet{arr: s.set.ValueType().NewArray(0), sorted: true}
	}
	c, err := CopyOf(s.set)
	if err != nil {
		panic(err)
	}
	return c
}

// GuardedBuffer is the exclusive writer of a Buffer shared with readers.
//
// Readers only ever see the SynchronizedSet returned by View; the Buffer
// itself never escapes. Every write takes the same lock as the readers.
type GuardedBuffer struct {
	mu   sync.RWMutex
	buf  *Buffer
	view *SynchronizedSet
}

// NewGuardedBuffer creates a buffer of the given width and capacity together
// with its read view.
func NewGuardedBuffer(valueType ValueType, capacity int) (*GuardedBuffer, error) {
	buf, err := NewBuffer(valueType, capacity)
	if err != nil {
		return nil, err
	}
	g := &GuardedBuffer{buf: buf}
	g.view = &SynchronizedSet{mu: &g.mu, set: buf}
	return g, nil
}

// View returns the lock-guarded read view of the buffer.
func (g *GuardedBuffer) View() *SynchronizedSet { return g.view }

// Add appends v under the write lock.
func (g *GuardedBuffer) Add(v int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.Add(v)
}

// AddSet appends s under the write lock.
func (g *GuardedBuffer) AddSet(s Set) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.AddSet(s)
}

// Update runs fn with exclusive access to the buffer. fn must not retain it.
func (g *GuardedBuffer) Update(fn func(b *Buffer) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.buf)
}

// Remaining returns the number of free slots.
func (g *GuardedBuffer) Remaining() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.buf.Remaining()
}

// Snapshot returns an immutable copy of the contents, or nil when empty.
func (g *GuardedBuffer) Snapshot() Set {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.buf.Snapshot()
}
