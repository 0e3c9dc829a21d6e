package collect

import (
	"fmt"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
)

const unlimited = -1

// SortedBuilder accepts strictly ascending indices and emits chunks of at
// most chunkSize indices in input order.
type SortedBuilder struct {
	valueType index.ValueType
	capacity  int64 // unlimited or the total number of accepted indices
	count     int64
	last      int64
	chunks    chunker
}

// NewLimitedSorted creates a sorted builder accepting at most capacity
// indices in total.
func NewLimitedSorted(valueType index.ValueType, capacity int64, chunkSize int) (*SortedBuilder, error) {
	if !valueType.Valid() {
		return nil, fmt.Errorf("%w: value type %s", index.ErrInvalidInput, valueType)
	}
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	if capacity > valueType.MaxValue() {
		return nil, fmt.Errorf("%w: capacity %d exceeds %s", index.ErrOverflow, capacity, valueType)
	}
	return newSorted(valueType, capacity, chunkSize)
}

// NewUnlimitedSorted creates a sorted builder without a total capacity.
func NewUnlimitedSorted(valueType index.ValueType, chunkSize int) (*SortedBuilder, error) {
	if !valueType.Valid() {
		return nil, fmt.Errorf("%w: value type %s", index.ErrInvalidInput, valueType)
	}
	return newSorted(valueType, unlimited, chunkSize)
}

func newSorted(valueType index.ValueType, capacity int64, chunkSize int) (*SortedBuilder, error) {
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	return &SortedBuilder{
		valueType: valueType,
		capacity:  capacity,
		last:      index.UnsetIndex,
		chunks:    chunker{valueType: valueType, chunkSize: chunkSize, spans: true},
	}, nil
}

// Add accepts v if it is greater than every previously accepted index.
func (b *SortedBuilder) Add(v int64) error {
	if err := b.valueType.CheckValue(v); err != nil {
		return err
	}
	if v <= b.last {
		return fmt.Errorf("%w: %d after %d", index.ErrUnsortedInput, v, b.last)
	}
	if err := b.reserve(1); err != nil {
		return err
	}
	if err := b.chunks.add(v); err != nil {
		return err
	}
	b.last = v
	b.count++
	return nil
}

// AddSet accepts s if it is strictly ascending and starts above every
// previously accepted index. s is validated completely before anything is
// accepted.
func (b *SortedBuilder) AddSet(s index.Set) error {
	if s == nil {
		return fmt.Errorf("%w: nil set", index.ErrInvalidInput)
	}
	if s.Size() == 0 {
		return nil
	}
	if !s.IsSorted() {
		return fmt.Errorf("%w: set is not sorted", index.ErrUnsortedSet)
	}
	first := s.FirstIndex()
	if err := b.valueType.CheckValue(first); err != nil {
		return err
	}
	if err := b.valueType.CheckValue(s.LastIndex()); err != nil {
		return err
	}
	if first <= b.last {
		return fmt.Errorf("%w: set starts at %d after %d", index.ErrUnsortedSet, first, b.last)
	}
	if err := b.reserve(int64(s.Size())); err != nil {
		return err
	}
	prev := b.last
	for v := range s.All() {
		if v <= prev {
			return fmt.Errorf("%w: duplicate index %d", index.ErrUnsortedSet, v)
		}
		prev = v
	}

	for v := range s.All() {
		if err := b.chunks.add(v); err != nil {
			return err
		}
	}
	b.last = prev
	b.count += int64(s.Size())
	return nil
}

func (b *SortedBuilder) reserve(n int64) error {
	if b.capacity != unlimited && b.count+n > b.capacity {
		return fmt.Errorf("%w: %d of %d indices accepted, %d more requested",
			index.ErrCapacityExceeded, b.count, b.capacity, n)
	}
	return nil
}

// Build returns the chunks accumulated since the previous call.
func (b *SortedBuilder) Build() ([]index.Set, error) {
	return b.chunks.flush(), nil
}

// Count returns the total number of accepted indices.
func (b *SortedBuilder) Count() int64 { return b.count }

// LastIndex returns the greatest accepted index, or index.UnsetIndex.
func (b *SortedBuilder) LastIndex() int64 { return b.last }

// Remaining returns the number of indices still accepted, or -1 when the
// builder is unlimited.
func (b *SortedBuilder) Remaining() int64 {
	if b.capacity == unlimited {
		return unlimited
	}
	return b.capacity - b.count
}

var _ Builder = (*SortedBuilder)(nil)
