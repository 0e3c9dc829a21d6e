package index

import (
	"iter"
	"math"
	"strings"
)

// MaxSetSize bounds the number of indices held by a single Set. Address
// spaces beyond it are expressed as slices of sets.
const MaxSetSize = math.MaxInt32

// Feature flags describe optional capabilities a Set honors.
type Feature uint16

const (
	// FeatureRandomAccess means IndexAt runs in constant time.
	FeatureRandomAccess Feature = 1 << iota
	// FeatureExport means Export copies without per-element dispatch.
	FeatureExport
	// FeatureSortedOps means the set is guaranteed sorted and supports
	// binary-search style lookups.
	FeatureSortedOps
	// FeatureSortable means Sort may reorder the set in place. Only the
	// mutable Buffer carries it.
	FeatureSortable
	// FeatureThreadSafe means every accessor is serialized internally.
	FeatureThreadSafe
	// FeatureVirtual means values are computed instead of stored.
	FeatureVirtual
)

// Has reports whether all flags in other are set.
func (f Feature) Has(other Feature) bool { return f&other == other }

func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	names := []string{"random-access", "export", "sorted-ops", "sortable", "thread-safe", "virtual"}
	var parts []string
	for i, name := range names {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Set is a read-only collection of indices.
//
// The variants in this package form a closed family; the interface is sealed.
// All variants except Buffer are immutable after construction and safe for
// concurrent reads.
type Set interface {
	// Size returns the number of indices.
	Size() int
	// ValueType returns the width of the backing storage.
	ValueType() ValueType
	// IsSorted reports whether the indices are in non-decreasing order.
	IsSorted() bool
	// Features returns the optional capabilities of the set.
	Features() Feature
	// IndexAt returns the index at position i. It panics with a *BoundsError
	// when i is outside [0, Size()).
	IndexAt(i int) int64
	// FirstIndex returns the index at position 0, or UnsetIndex if empty.
	FirstIndex() int64
	// LastIndex returns the index at position Size()-1, or UnsetIndex if empty.
	LastIndex() int64
	// Export copies the positions [begin, end) into dst starting at off.
	Export(begin, end int, dst []int64, off int) error
	// All iterates the indices in position order.
	All() iter.Seq[int64]
	// SubSet returns a view over the inclusive positions [from, to].
	SubSet(from, to int) (Set, error)
	// Sort orders the set in place if it carries FeatureSortable and reports
	// whether the set is sorted afterwards. Immutable sets only report.
	Sort() bool
	// Externalize returns an immutable view of the set.
	Externalize() Set

	sealed()
}

// IsEmpty reports whether s is nil or holds no indices.
func IsEmpty(s Set) bool {
	return s == nil || s.Size() == 0
}

// Values copies all indices of s into a new slice.
func Values(s Set) []int64 {
	if IsEmpty(s) {
		return nil
	}
	out := make([]int64, s.Size())
	if err := s.Export(0, s.Size(), out, 0); err != nil {
		panic(err)
	}
	return out
}

// Concat returns the indices of all sets in order.
func Concat(sets ...Set) []int64 {
	n := 0
	for _, s := range sets {
		if s != nil {
			n += s.Size()
		}
	}
	out := make([]int64, 0, n)
	for _, s := range sets {
		if IsEmpty(s) {
			continue
		}
		out = out[:len(out)+s.Size()]
		if err := s.Export(0, s.Size(), out, len(out)-s.Size()); err != nil {
			panic(err)
		}
	}
	return out
}

// TotalSize returns the sum of the sizes of sets as an int64.
func TotalSize(sets ...Set) int64 {
	var n int64
	for _, s := range sets {
		if s != nil {
			n += int64(s.Size())
		}
	}
	return n
}

// Equal reports whether a and b hold the same indices in the same order.
func Equal(a, b Set) bool {
	if IsEmpty(a) || IsEmpty(b) {
		return IsEmpty(a) && IsEmpty(b)
	}
	if a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.IndexAt(i) != b.IndexAt(i) {
			return false
		}
	}
	return true
}

// exportByPosition is the generic Export for variants without a backing
// array.
func exportByPosition(s Set, begin, end int, dst []int64, off int) error {
	if err := checkExport(begin, end, s.Size(), dst, off); err != nil {
		return err
	}
	for i := begin; i < end; i++ {
		dst[off+i-begin] = s.IndexAt(i)
	}
	return nil
}

func allByPosition(s Set) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i, n := 0, s.Size(); i < n; i++ {
			if !yield(s.IndexAt(i)) {
				return
			}
		}
	}
}

func firstOf(s Set) int64 {
	if s.Size() == 0 {
		return UnsetIndex
	}
	return s.IndexAt(0)
}

func lastOf(s Set) int64 {
	if s.Size() == 0 {
		return UnsetIndex
	}
	return s.IndexAt(s.Size() - 1)
}

// subSetOf wraps s in a DelegatingSpanSet after a bounds check.
func subSetOf(s Set, from, to int) (Set, error) {
	if err := checkRange("SubSet", from, to, s.Size()); err != nil {
		return nil, err
	}
	return &DelegatingSpanSet{delegate: s, begin: from, end: to}, nil
}
