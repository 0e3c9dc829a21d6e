package index

import (
	"fmt"
	"iter"
)

// SpanSet is the contiguous ascending range [begin, end] without storage.
type SpanSet struct {
	begin, end int64
}

// NewSpanSet creates a span over the inclusive range [begin, end].
func NewSpanSet(begin, end int64) (*SpanSet, error) {
	if begin < 0 || end < begin {
		return nil, fmt.Errorf("%w: span [%d, %d]", ErrInvalidInput, begin, end)
	}
	if end-begin >= MaxSetSize {
		return nil, fmt.Errorf("%w: span [%d, %d] exceeds set limit", ErrOverflow, begin, end)
	}
	return &SpanSet{begin: begin, end: end}, nil
}

func (s *SpanSet) sealed() {}

// Size implements Set.
func (s *SpanSet) Size() int { return int(s.end - s.begin + 1) }

// ValueType implements Set.
func (s *SpanSet) ValueType() ValueType { return ValueTypeFor(s.end) }

// IsSorted implements Set.
func (s *SpanSet) IsSorted() bool { return true }

// Features implements Set.
func (s *SpanSet) Features() Feature {
	return FeatureRandomAccess | FeatureExport | FeatureSortedOps | FeatureVirtual
}

// IndexAt implements Set.
func (s *SpanSet) IndexAt(i int) int64 {
	checkPosition(i, s.Size())
	return s.begin + int64(i)
}

// FirstIndex implements Set.
func (s *SpanSet) FirstIndex() int64 { return s.begin }

// LastIndex implements Set.
func (s *SpanSet) LastIndex() int64 { return s.end }

// Export implements Set.
func (s *SpanSet) Export(begin, end int, dst []int64, off int) error {
	if err := checkExport(begin, end, s.Size(), dst, off); err != nil {
		return err
	}
	v := s.begin + int64(begin)
	for i := off; i < off+end-begin; i++ {
		dst[i] = v
		v++
	}
	return nil
}

// All implements Set.
func (s *SpanSet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for v := s.begin; v <= s.end; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

// SubSet implements Set.
func (s *SpanSet) SubSet(from, to int) (Set, error) {
	if err := checkRange("SubSet", from, to, s.Size()); err != nil {
		return nil, err
	}
	return &SpanSet{begin: s.begin + int64(from), end: s.begin + int64(to)}, nil
}

// Sort implements Set.
func (s *SpanSet) Sort() bool { return true }

// Externalize implements Set.
func (s *SpanSet) Externalize() Set { return s }

// SingletonSet holds exactly one index.
type SingletonSet struct {
	value int64
}

// NewSingletonSet creates a set holding only v.
func NewSingletonSet(v int64) (*SingletonSet, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrInvalidInput, v)
	}
	return &SingletonSet{value: v}, nil
}

func (s *SingletonSet) sealed() {}

// Size implements Set.
func (s *SingletonSet) Size() int { return 1 }

// ValueType implements Set.
func (s *SingletonSet) ValueType() ValueType { return ValueTypeFor(s.value) }

// IsSorted implements Set.
func (s *SingletonSet) IsSorted() bool { return true }

// Features implements Set.
func (s *SingletonSet) Features() Feature {
	return FeatureRandomAccess | FeatureExport | FeatureSortedOps | FeatureVirtual
}

// IndexAt implements Set.
func (s *SingletonSet) IndexAt(i int) int64 {
	checkPosition(i, 1)
	return s.value
}

// FirstIndex implements Set.
func (s *SingletonSet) FirstIndex() int64 { return s.value }

// LastIndex implements Set.
func (s *SingletonSet) LastIndex() int64 { return s.value }

// Export implements Set.
func (s *SingletonSet) Export(begin, end int, dst []int64, off int) error {
	if err := checkExport(begin, end, 1, dst, off); err != nil {
		return err
	}
	if end > begin {
		dst[off] = s.value
	}
	return nil
}

// All implements Set.
func (s *SingletonSet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) { yield(s.value) }
}

// SubSet implements Set.
func (s *SingletonSet) SubSet(from, to int) (Set, error) {
	if err := checkRange("SubSet", from, to, 1); err != nil {
		return nil, err
	}
	return s, nil
}

// Sort implements Set.
func (s *SingletonSet) Sort() bool { return true }

// Externalize implements Set.
func (s *SingletonSet) Externalize() Set { return s }
