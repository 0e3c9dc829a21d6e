package index

import (
	"fmt"
	"iter"
)

// Buffer is the mutable, fixed-capacity accumulator every incremental
// construction funnels through.
//
// A Buffer has a single writer. It never grows beyond its capacity; a full
// buffer rejects further values with ErrCapacityExceeded. Once Externalize
// has been called the caller must stop writing.
type Buffer struct {
	arr    Array
	size   int
	sorted bool
}

// NewBuffer creates an empty buffer of the given width and capacity.
func NewBuffer(valueType ValueType, capacity int) (*Buffer, error) {
	if !valueType.Valid() {
		return nil, fmt.Errorf("%w: value type %s", ErrInvalidInput, valueType)
	}
	// MaxSetSize is reserved as a sentinel capacity.
	if capacity <= 0 || capacity >= MaxSetSize {
		return nil, fmt.Errorf("%w: buffer capacity %d", ErrInvalidInput, capacity)
	}
	return &Buffer{arr: valueType.NewArray(capacity), sorted: true}, nil
}

// NewLongBuffer creates a buffer using the widest value type.
func NewLongBuffer(capacity int) (*Buffer, error) {
	return NewBuffer(Long, capacity)
}

func (b *Buffer) sealed() {}

// append is the single write path. It validates v, updates sortedness
// against the previous value and advances the cursor.
func (b *Buffer) append(v int64) error {
	if b.size == b.arr.Len() {
		return fmt.Errorf("%w: %d of %d slots used", ErrCapacityExceeded, b.size, b.arr.Len())
	}
	if err := b.arr.ValueType().CheckValue(v); err != nil {
		return err
	}
	if b.size > 0 && v < b.arr.Get(b.size-1) {
		b.sorted = false
	}
	b.arr.Set(b.size, v)
	b.size++
	return nil
}

// batch runs fn as one add. If fn fails the cursor and sortedness are
// restored, so a rejected add leaves the buffer unchanged.
func (b *Buffer) batch(fn func() error) error {
	size, sorted := b.size, b.sorted
	if err := fn(); err != nil {
		b.size, b.sorted = size, sorted
		return err
	}
	return nil
}

func (b *Buffer) reserve(n int) error {
	if n > b.Remaining() {
		return fmt.Errorf("%w: %d values requested, %d remaining", ErrCapacityExceeded, n, b.Remaining())
	}
	return nil
}

// Add appends a single index.
func (b *Buffer) Add(v int64) error {
	return b.append(v)
}

// AddRange appends every index in the inclusive range [from, to].
func (b *Buffer) AddRange(from, to int64) error {
	if from < 0 || to < from {
		return fmt.Errorf("%w: range [%d, %d]", ErrInvalidInput, from, to)
	}
	if to-from >= int64(b.Remaining()) {
		return fmt.Errorf("%w: range of %d values, %d remaining", ErrCapacityExceeded, to-from+1, b.Remaining())
	}
	return b.batch(func() error {
		for v := from; v <= to; v++ {
			if err := b.append(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddValues appends values in order. Either all values are added or none.
func (b *Buffer) AddValues(values ...int64) error {
	if err := b.reserve(len(values)); err != nil {
		return err
	}
	return b.batch(func() error {
		for _, v := range values {
			if err := b.append(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddArray appends every element of a.
func (b *Buffer) AddArray(a Array) error {
	if a == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidInput)
	}
	return b.AddArraySlice(a, 0, a.Len())
}

// AddArraySlice appends n elements of a starting at off.
func (b *Buffer) AddArraySlice(a Array, off, n int) error {
	if a == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidInput)
	}
	if off < 0 || n < 0 || off+n > a.Len() {
		return fmt.Errorf("%w: slice [%d, %d) of array with length %d", ErrOutOfBounds, off, off+n, a.Len())
	}
	if err := b.reserve(n); err != nil {
		return err
	}
	return b.batch(func() error {
		for i := off; i < off+n; i++ {
			if err := b.append(a.Get(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddSet appends every index of s.
func (b *Buffer) AddSet(s Set) error {
	if s == nil {
		return fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	return b.AddSetRange(s, 0, s.Size())
}

// AddSetFrom appends the indices of s starting at position off.
func (b *Buffer) AddSetFrom(s Set, off int) error {
	if s == nil {
		return fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	return b.AddSetRange(s, off, s.Size()-off)
}

// AddSetRange appends n indices of s starting at position off.
func (b *Buffer) AddSetRange(s Set, off, n int) error {
	if s == nil {
		return fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	if off < 0 || n < 0 || off+n > s.Size() {
		return fmt.Errorf("%w: range [%d, %d) of set with size %d", ErrOutOfBounds, off, off+n, s.Size())
	}
	if err := b.reserve(n); err != nil {
		return err
	}
	return b.batch(func() error {
		for i := off; i < off+n; i++ {
			if err := b.append(s.IndexAt(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddSets appends all sets in order. Either every set is added or none.
func (b *Buffer) AddSets(sets ...Set) error {
	for i, s := range sets {
		if s == nil {
			return fmt.Errorf("%w: nil set at position %d", ErrInvalidInput, i)
		}
	}
	if err := b.reserve(int(min(TotalSize(sets...), int64(MaxSetSize)))); err != nil {
		return err
	}
	return b.batch(func() error {
		for _, s := range sets {
			if err := b.AddSet(s); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddSeq appends every index yielded by seq. If any value is rejected
// nothing from seq is kept.
func (b *Buffer) AddSeq(seq iter.Seq[int64]) error {
	return b.batch(func() error {
		for v := range seq {
			if err := b.append(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddMapped appends the index derived from every item of items. If any
// value is rejected nothing from items is kept.
func AddMapped[T any](b *Buffer, items iter.Seq[T], indexOf func(T) int64) error {
	return b.batch(func() error {
		for item := range items {
			if err := b.append(indexOf(item)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Capacity returns the fixed number of slots.
func (b *Buffer) Capacity() int { return b.arr.Len() }

// Remaining returns the number of free slots.
func (b *Buffer) Remaining() int { return b.arr.Len() - b.size }

// Clear empties the buffer for reuse.
func (b *Buffer) Clear() {
	b.size = 0
	b.sorted = true
}

// Size implements Set.
func (b *Buffer) Size() int { return b.size }

// ValueType implements Set.
func (b *Buffer) ValueType() ValueType { return b.arr.ValueType() }

// IsSorted implements Set.
func (b *Buffer) IsSorted() bool { return b.sorted }

// Features implements Set.
func (b *Buffer) Features() Feature {
	f := FeatureRandomAccess | FeatureExport | FeatureSortable
	if b.sorted {
		f |= FeatureSortedOps
	}
	return f
}

// IndexAt implements Set.
func (b *Buffer) IndexAt(i int) int64 {
	checkPosition(i, b.size)
	return b.arr.Get(i)
}

// FirstIndex implements Set.
func (b *Buffer) FirstIndex() int64 { return firstOf(b) }

// LastIndex implements Set.
func (b *Buffer) LastIndex() int64 { return lastOf(b) }

// Export implements Set. Bounds are checked against the filled region.
func (b *Buffer) Export(begin, end int, dst []int64, off int) error {
	if b.size == 0 {
		return ErrEmpty
	}
	if err := checkExport(begin, end, b.size, dst, off); err != nil {
		return err
	}
	exportArray(b.arr, begin, end, dst[off:off+end-begin])
	return nil
}

// All implements Set.
func (b *Buffer) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(b.arr.Get(i)) {
				return
			}
		}
	}
}

// SubSet implements Set. The view shares storage with the buffer.
func (b *Buffer) SubSet(from, to int) (Set, error) {
	if b.size == 0 {
		return nil, ErrEmpty
	}
	if err := checkRange("SubSet", from, to, b.size); err != nil {
		return nil, err
	}
	sorted := b.sorted || ascending(b.arr, from, to+1)
	return &ArraySet{arr: b.arr, from: from, to: to + 1, sorted: sorted}, nil
}

// Sort orders the filled region ascending. Sorting an empty or already
// sorted buffer is a no-op.
func (b *Buffer) Sort() bool {
	if !b.sorted {
		sortArray(b.arr, 0, b.size)
		b.sorted = true
	}
	return true
}

// Snapshot returns an immutable copy of the current contents, or nil when
// the buffer is empty.
func (b *Buffer) Snapshot() Set {
	if b.size == 0 {
		return nil
	}
	arr := b.arr.ValueType().NewArray(b.size)
	copyArray(arr, 0, b.arr, 0, b.size)
	return &ArraySet{arr: arr, to: b.size, sorted: b.sorted}
}

// Externalize returns an immutable view over the filled region without
// copying. The buffer must not be written afterwards.
func (b *Buffer) Externalize() Set {
	return &ArraySet{arr: b.arr, to: b.size, sorted: b.sorted}
}
