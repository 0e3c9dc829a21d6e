package index

import (
	"fmt"
	"iter"
)

// IndexFunc computes the index at position pos of a sequence starting at
// origin.
type IndexFunc func(origin int64, pos int) int64

// VirtualSet computes its indices on demand instead of storing them.
type VirtualSet struct {
	origin    int64
	size      int
	fn        IndexFunc
	valueType ValueType
	sorted    bool
}

// NewVirtualSet creates a set of size positions computed by fn. valueType
// and sorted describe the values fn produces and are not verified.
func NewVirtualSet(origin int64, size int, fn IndexFunc, valueType ValueType, sorted bool) (*VirtualSet, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil index function", ErrInvalidInput)
	}
	if size < 0 || size > MaxSetSize {
		return nil, fmt.Errorf("%w: virtual set size %d", ErrInvalidInput, size)
	}
	if !valueType.Valid() {
		return nil, fmt.Errorf("%w: value type %s", ErrInvalidInput, valueType)
	}
	return &VirtualSet{origin: origin, size: size, fn: fn, valueType: valueType, sorted: sorted}, nil
}

func (s *VirtualSet) sealed() {}

// Size implements Set.
func (s *VirtualSet) Size() int { return s.size }

// ValueType implements Set.
func (s *VirtualSet) ValueType() ValueType { return s.valueType }

// IsSorted implements Set.
func (s *VirtualSet) IsSorted() bool { return s.sorted || s.size <= 1 }

// Features implements Set.
func (s *VirtualSet) Features() Feature {
	f := FeatureRandomAccess | FeatureVirtual
	if s.IsSorted() {
		f |= FeatureSortedOps
	}
	return f
}

// IndexAt implements Set.
func (s *VirtualSet) IndexAt(i int) int64 {
	checkPosition(i, s.size)
	return s.fn(s.origin, i)
}

// FirstIndex implements Set.
func (s *VirtualSet) FirstIndex() int64 { return firstOf(s) }

// LastIndex implements Set.
func (s *VirtualSet) LastIndex() int64 { return lastOf(s) }

// Export implements Set.
func (s *VirtualSet) Export(begin, end int, dst []int64, off int) error {
	return exportByPosition(s, begin, end, dst, off)
}

// All implements Set.
func (s *VirtualSet) All() iter.Seq[int64] { return allByPosition(s) }

// SubSet implements Set.
func (s *VirtualSet) SubSet(from, to int) (Set, error) { return subSetOf(s, from, to) }

// Sort implements Set.
func (s *VirtualSet) Sort() bool { return s.IsSorted() }

// Externalize implements Set.
func (s *VirtualSet) Externalize() Set { return s }
