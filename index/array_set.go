package index

import (
	"fmt"
	"iter"
)

// ArraySet is a Set backed by a window of a width-typed array.
type ArraySet struct {
	arr    Array
	from   int // inclusive
	to     int // exclusive
	sorted bool
}

type arrayOptions struct {
	from, to    int
	count       int
	hasRange    bool
	hasCount    bool
	sorted      bool
	sortedGiven bool
}

// ArrayOption configures NewArraySet.
type ArrayOption func(*arrayOptions)

// WithRange restricts the set to the inclusive window [from, to] of the array.
func WithRange(from, to int) ArrayOption {
	return func(o *arrayOptions) {
		o.from, o.to = from, to
		o.hasRange = true
	}
}

// WithCount restricts the set to the first n elements of the array.
func WithCount(n int) ArrayOption {
	return func(o *arrayOptions) {
		o.count = n
		o.hasCount = true
	}
}

// WithSorted declares the sortedness of the window instead of detecting it.
// A declared true is verified.
func WithSorted(sorted bool) ArrayOption {
	return func(o *arrayOptions) {
		o.sorted = sorted
		o.sortedGiven = true
	}
}

// NewArraySet creates a set over arr. The value type is the width of arr.
// Without WithSorted the window is scanned once to detect ascending order.
func NewArraySet(arr Array, opts ...ArrayOption) (*ArraySet, error) {
	if arr == nil {
		return nil, fmt.Errorf("%w: nil array", ErrInvalidInput)
	}
	var o arrayOptions
	for _, opt := range opts {
		opt(&o)
	}

	from, to := 0, arr.Len()
	switch {
	case o.hasRange && o.hasCount:
		return nil, fmt.Errorf("%w: range and count are exclusive", ErrInvalidInput)
	case o.hasRange:
		if o.from < 0 || o.from > o.to || o.to >= arr.Len() {
			return nil, fmt.Errorf("%w: window [%d, %d] for array of length %d",
				ErrInvalidInput, o.from, o.to, arr.Len())
		}
		from, to = o.from, o.to+1
	case o.hasCount:
		if o.count < 0 || o.count > arr.Len() {
			return nil, fmt.Errorf("%w: count %d for array of length %d", ErrInvalidInput, o.count, arr.Len())
		}
		to = o.count
	}
	if to-from > MaxSetSize {
		return nil, fmt.Errorf("%w: %d indices exceed set limit", ErrOverflow, to-from)
	}

	s := &ArraySet{arr: arr, from: from, to: to}
	switch {
	case to-from <= 1:
		s.sorted = true
	case o.sortedGiven && o.sorted:
		if !ascending(arr, from, to) {
			return nil, fmt.Errorf("%w: window declared sorted is not ascending", ErrUnsortedInput)
		}
		s.sorted = true
	case o.sortedGiven:
		s.sorted = false
	default:
		s.sorted = ascending(arr, from, to)
	}
	return s, nil
}

// CopyOf copies every index of src into a new ArraySet of the same width.
func CopyOf(src Set) (*ArraySet, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	if src.Size() == 0 {
		return &ArraySet{arr: src.ValueType().NewArray(0), sorted: true}, nil
	}
	return CopyOfRange(src, 0, src.Size()-1)
}

// CopyOfRange copies the inclusive positions [from, to] of src.
func CopyOfRange(src Set, from, to int) (*ArraySet, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil set", ErrInvalidInput)
	}
	if err := checkRange("CopyOfRange", from, to, src.Size()); err != nil {
		return nil, err
	}
	n := to - from + 1
	arr := src.ValueType().NewArray(n)
	if as, ok := src.(*ArraySet); ok {
		copyArray(arr, 0, as.arr, as.from+from, as.from+to+1)
	} else {
		for i := 0; i < n; i++ {
			arr.Set(i, src.IndexAt(from+i))
		}
	}
	sorted := src.IsSorted() || ascending(arr, 0, n)
	return &ArraySet{arr: arr, to: n, sorted: sorted}, nil
}

// CopyOfLongs copies values into the narrowest array able to hold them.
func CopyOfLongs(values []int64) (*ArraySet, error) {
	var hi int64
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrInvalidInput, v)
		}
		if v > hi {
			hi = v
		}
	}
	arr := ValueTypeFor(hi).NewArray(len(values))
	copyLongs(arr, 0, values)
	return NewArraySet(arr)
}

// CopyOfInts copies 32-bit values into the narrowest array able to hold them.
func CopyOfInts(values []int32) (*ArraySet, error) {
	return copyOfWords(values)
}

// CopyOfShorts copies 16-bit values into the narrowest array able to hold them.
func CopyOfShorts(values []int16) (*ArraySet, error) {
	return copyOfWords(values)
}

// CopyOfBytes copies 8-bit values into a new Byte array.
func CopyOfBytes(values []int8) (*ArraySet, error) {
	return copyOfWords(values)
}

func copyOfWords[T word](values []T) (*ArraySet, error) {
	var hi int64
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrInvalidInput, v)
		}
		if int64(v) > hi {
			hi = int64(v)
		}
	}
	arr := ValueTypeFor(hi).NewArray(len(values))
	for i, v := range values {
		arr.Set(i, int64(v))
	}
	return NewArraySet(arr)
}

// FromSeq drains seq into a new ArraySet of the narrowest fitting width.
func FromSeq(seq iter.Seq[int64]) (*ArraySet, error) {
	var values []int64
	for v := range seq {
		values = append(values, v)
	}
	return CopyOfLongs(values)
}

func (s *ArraySet) sealed() {}

// Size implements Set.
func (s *ArraySet) Size() int { return s.to - s.from }

// ValueType implements Set.
func (s *ArraySet) ValueType() ValueType { return s.arr.ValueType() }

// IsSorted implements Set.
func (s *ArraySet) IsSorted() bool { return s.sorted }

// Features implements Set.
func (s *ArraySet) Features() Feature {
	f := FeatureRandomAccess | FeatureExport
	if s.sorted {
		f |= FeatureSortedOps
	}
	return f
}

// IndexAt implements Set.
func (s *ArraySet) IndexAt(i int) int64 {
	checkPosition(i, s.Size())
	return s.arr.Get(s.from + i)
}

// FirstIndex implements Set.
func (s *ArraySet) FirstIndex() int64 { return firstOf(s) }

// LastIndex implements Set.
func (s *ArraySet) LastIndex() int64 { return lastOf(s) }

// Export implements Set.
func (s *ArraySet) Export(begin, end int, dst []int64, off int) error {
	if err := checkExport(begin, end, s.Size(), dst, off); err != nil {
		return err
	}
	exportArray(s.arr, s.from+begin, s.from+end, dst[off:off+end-begin])
	return nil
}

// All implements Set.
func (s *ArraySet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i := s.from; i < s.to; i++ {
			if !yield(s.arr.Get(i)) {
				return
			}
		}
	}
}

// SubSet implements Set. The returned set shares storage with s.
func (s *ArraySet) SubSet(from, to int) (Set, error) {
	if err := checkRange("SubSet", from, to, s.Size()); err != nil {
		return nil, err
	}
	sorted := s.sorted || ascending(s.arr, s.from+from, s.from+to+1)
	return &ArraySet{arr: s.arr, from: s.from + from, to: s.from + to + 1, sorted: sorted}, nil
}

// Sort reports whether the window is sorted. The backing array may be
// shared with other sets, so it is never reordered.
func (s *ArraySet) Sort() bool { return s.sorted }

// Externalize implements Set.
func (s *ArraySet) Externalize() Set { return s }

// Array returns the backing window. Callers must not modify it.
func (s *ArraySet) Array() Array { return s.arr.Slice(s.from, s.to) }
