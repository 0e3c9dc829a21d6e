package collect

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
)

// distinct is the deduplicating store behind an UnsortedBuilder.
type distinct interface {
	// add inserts v and reports whether it was not present before.
	add(v int64) bool
	contains(v int64) bool
	// drain yields the stored values in ascending order and empties the store.
	drain(fn func(v int64) error) error
}

type longDistinct struct{ rb *roaring64.Bitmap }

func (d longDistinct) add(v int64) bool      { return d.rb.CheckedAdd(uint64(v)) }
func (d longDistinct) contains(v int64) bool { return d.rb.Contains(uint64(v)) }
func (d longDistinct) drain(fn func(int64) error) error {
	defer d.rb.Clear()
	it := d.rb.Iterator()
	for it.HasNext() {
		if err := fn(int64(it.Next())); err != nil {
			return err
		}
	}
	return nil
}

type intDistinct struct{ rb *roaring.Bitmap }

func (d intDistinct) add(v int64) bool      { return d.rb.CheckedAdd(uint32(v)) }
func (d intDistinct) contains(v int64) bool { return d.rb.Contains(uint32(v)) }
func (d intDistinct) drain(fn func(int64) error) error {
	defer d.rb.Clear()
	it := d.rb.Iterator()
	for it.HasNext() {
		if err := fn(int64(it.Next())); err != nil {
			return err
		}
	}
	return nil
}

// shortDistinct covers the whole Short range with a dense 32768-bit set.
type shortDistinct struct{ bs *bitset.BitSet }

func (d shortDistinct) add(v int64) bool {
	if d.bs.Test(uint(v)) {
		return false
	}
	d.bs.Set(uint(v))
	return true
}

func (d shortDistinct) contains(v int64) bool { return d.bs.Test(uint(v)) }

func (d shortDistinct) drain(fn func(int64) error) error {
	defer d.bs.ClearAll()
	for i, ok := d.bs.NextSet(0); ok; i, ok = d.bs.NextSet(i + 1) {
		if err := fn(int64(i)); err != nil {
			return err
		}
	}
	return nil
}

// UnsortedBuilder accepts indices in any order, drops duplicates and emits
// ascending chunks at a fixed width.
//
// Duplicates are detected across Build cycles: an index emitted once is
// never emitted again.
type UnsortedBuilder struct {
	valueType index.ValueType
	capacity  int64
	count     int64
	seen      distinct
	pending   distinct
	chunks    chunker
}

// NewLimitedUnsortedLong creates an unsorted builder over the full Long
// range, backed by 64-bit roaring bitmaps.
func NewLimitedUnsortedLong(capacity int64, chunkSize int) (*UnsortedBuilder, error) {
	return newUnsorted(index.Long, capacity, chunkSize,
		longDistinct{roaring64.New()}, longDistinct{roaring64.New()})
}

// NewLimitedUnsortedInt creates an unsorted builder over the Integer range,
// backed by 32-bit roaring bitmaps.
func NewLimitedUnsortedInt(capacity int64, chunkSize int) (*UnsortedBuilder, error) {
	return newUnsorted(index.Integer, capacity, chunkSize,
		intDistinct{roaring.New()}, intDistinct{roaring.New()})
}

// NewLimitedUnsortedShort creates an unsorted builder over the Short range,
// backed by dense bitsets.
func NewLimitedUnsortedShort(capacity int64, chunkSize int) (*UnsortedBuilder, error) {
	const universe = math.MaxInt16 + 1
	return newUnsorted(index.Short, capacity, chunkSize,
		shortDistinct{bitset.New(universe)}, shortDistinct{bitset.New(universe)})
}

func newUnsorted(valueType index.ValueType, capacity int64, chunkSize int, seen, pending distinct) (*UnsortedBuilder, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	return &UnsortedBuilder{
		valueType: valueType,
		capacity:  capacity,
		seen:      seen,
		pending:   pending,
		chunks:    chunker{valueType: valueType, chunkSize: chunkSize},
	}, nil
}

// Add accepts v. A duplicate is ignored without error.
func (b *UnsortedBuilder) Add(v int64) error {
	if err := b.valueType.CheckValue(v); err != nil {
		return err
	}
	if b.seen.contains(v) {
		return nil
	}
	if b.count >= b.capacity {
		return fmt.Errorf("%w: %d distinct indices accepted", index.ErrCapacityExceeded, b.count)
	}
	b.seen.add(v)
	b.pending.add(v)
	b.count++
	return nil
}

// AddSet accepts every index of s.
func (b *UnsortedBuilder) AddSet(s index.Set) error {
	if s == nil {
		return fmt.Errorf("%w: nil set", index.ErrInvalidInput)
	}
	for v := range s.All() {
		if err := b.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether v was ever accepted.
func (b *UnsortedBuilder) Contains(v int64) bool {
	if v < 0 || v > b.valueType.MaxValue() {
		return false
	}
	return b.seen.contains(v)
}

// Count returns the number of distinct indices accepted so far.
func (b *UnsortedBuilder) Count() int64 { return b.count }

// ValueType returns the width of emitted chunks.
func (b *UnsortedBuilder) ValueType() index.ValueType { return b.valueType }

// Build returns the indices accepted since the previous call in ascending
// order, chunked.
func (b *UnsortedBuilder) Build() ([]index.Set, error) {
	if err := b.pending.drain(b.chunks.add); err != nil {
		return nil, err
	}
	return b.chunks.flush(), nil
}

var _ Builder = (*UnsortedBuilder)(nil)
