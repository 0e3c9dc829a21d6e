package index

import (
	"fmt"
	"iter"
)

// FilteredSet projects a delegate through an optional array of positions.
//
// With a nil filter it is a transparent passthrough. Filter entries are not
// validated; a bad entry surfaces as the delegate's own bounds panic.
type FilteredSet struct {
	delegate Set
	filter   []int
	sorted   bool
}

// NewFilteredSet creates a view of delegate. filter may be nil. The
// projection is scanned once to detect ascending order.
func NewFilteredSet(delegate Set, filter []int) (*FilteredSet, error) {
	if delegate == nil {
		return nil, fmt.Errorf("%w: nil delegate", ErrInvalidInput)
	}
	s := &FilteredSet{delegate: delegate, filter: filter}
	if filter != nil {
		s.sorted = projectionAscending(delegate, filter)
	}
	return s, nil
}

// projectionAscending reports whether delegate read through filter is
// ascending. An entry outside the delegate counts as unsorted.
func projectionAscending(delegate Set, filter []int) bool {
	if len(filter) <= 1 {
		return true
	}
	n := delegate.Size()
	prev := int64(UnsetIndex)
	for _, p := range filter {
		if p < 0 || p >= n {
			return false
		}
		v := delegate.IndexAt(p)
		if v < prev {
			return false
		}
		prev = v
	}
	return true
}

func (s *FilteredSet) sealed() {}

// Size implements Set.
func (s *FilteredSet) Size() int {
	if s.filter == nil {
		return s.delegate.Size()
	}
	return len(s.filter)
}

// ValueType implements Set.
func (s *FilteredSet) ValueType() ValueType { return s.delegate.ValueType() }

// IsSorted implements Set.
func (s *FilteredSet) IsSorted() bool {
	if s.filter == nil {
		return s.delegate.IsSorted()
	}
	return s.sorted
}

// Features implements Set.
func (s *FilteredSet) Features() Feature {
	f := s.delegate.Features() &^ (FeatureSortable | FeatureThreadSafe | FeatureSortedOps)
	if s.IsSorted() {
		f |= FeatureSortedOps
	}
	return f
}

// IndexAt implements Set.
func (s *FilteredSet) IndexAt(i int) int64 {
	if s.filter == nil {
		return s.delegate.IndexAt(i)
	}
	checkPosition(i, len(s.filter))
	return s.delegate.IndexAt(s.filter[i])
}

// FirstIndex implements Set.
func (s *FilteredSet) FirstIndex() int64 { return firstOf(s) }

// LastIndex implements Set.
func (s *FilteredSet) LastIndex() int64 { return lastOf(s) }

// Export implements Set.
func (s *FilteredSet) Export(begin, end int, dst []int64, off int) error {
	if s.filter == nil {
		return s.delegate.Export(begin, end, dst, off)
	}
	return exportByPosition(s, begin, end, dst, off)
}

// All implements Set.
func (s *FilteredSet) All() iter.Seq[int64] {
	if s.filter == nil {
		return s.delegate.All()
	}
	return allByPosition(s)
}

// SubSet implements Set.
func (s *FilteredSet) SubSet(from, to int) (Set, error) { return subSetOf(s, from, to) }

// Sort implements Set. Views never reorder their delegate.
func (s *FilteredSet) Sort() bool { return s.IsSorted() }

// Externalize implements Set.
func (s *FilteredSet) Externalize() Set { return s }

// DelegatingSpanSet is a view over the inclusive positions [begin, end] of a
// delegate.
type DelegatingSpanSet struct {
	delegate   Set
	begin, end int
}

// NewDelegatingSpanSet creates a view over delegate positions [begin, end].
func NewDelegatingSpanSet(delegate Set, begin, end int) (*DelegatingSpanSet, error) {
	if delegate == nil {
		return nil, fmt.Errorf("%w: nil delegate", ErrInvalidInput)
	}
	if begin < 0 || end < begin || end >= delegate.Size() {
		return nil, fmt.Errorf("%w: span [%d, %d] of delegate with size %d",
			ErrInvalidInput, begin, end, delegate.Size())
	}
	return &DelegatingSpanSet{delegate: delegate, begin: begin, end: end}, nil
}

func (s *DelegatingSpanSet) sealed() {}

// Size implements Set.
func (s *DelegatingSpanSet) Size() int { return s.end - s.begin + 1 }

// ValueType implements Set.
func (s *DelegatingSpanSet) ValueType() ValueType { return s.delegate.ValueType() }

// IsSorted implements Set.
func (s *DelegatingSpanSet) IsSorted() bool { return s.delegate.IsSorted() || s.begin == s.end }

// Features implements Set.
func (s *DelegatingSpanSet) Features() Feature {
	return s.delegate.Features() &^ (FeatureSortable | FeatureThreadSafe)
}

// IndexAt implements Set.
func (s *DelegatingSpanSet) IndexAt(i int) int64 {
	checkPosition(i, s.Size())
	return s.delegate.IndexAt(s.begin + i)
}

// FirstIndex implements Set.
func (s *DelegatingSpanSet) FirstIndex() int64 { return s.delegate.IndexAt(s.begin) }

// LastIndex implements Set.
func (s *DelegatingSpanSet) LastIndex() int64 { return s.delegate.IndexAt(s.end) }

// Export implements Set.
func (s *DelegatingSpanSet) Export(begin, end int, dst []int64, off int) error {
	if err := checkExport(begin, end, s.Size(), dst, off); err != nil {
		return err
	}
	return s.delegate.Export(s.begin+begin, s.begin+end, dst, off)
}

// All implements Set.
func (s *DelegatingSpanSet) All() iter.Seq[int64] { return allByPosition(s) }

// SubSet implements Set.
func (s *DelegatingSpanSet) SubSet(from, to int) (Set, error) {
	if err := checkRange("SubSet", from, to, s.Size()); err != nil {
		return nil, err
	}
	return &DelegatingSpanSet{delegate: s.delegate, begin: s.begin + from, end: s.begin + to}, nil
}

// Sort implements Set.
func (s *DelegatingSpanSet) Sort() bool { return s.IsSorted() }

// Externalize implements Set.
func (s *DelegatingSpanSet) Externalize() Set { return s }
