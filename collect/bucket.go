package collect

import (
	"fmt"
	"slices"

	"github.com/google/btree"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/conv"
)

const (
	// MaxBucketSize is the widest bucket whose offsets fit into uint32.
	MaxBucketSize = int64(1) << 32

	// compactThreshold is the dirty tail length that triggers an early
	// compaction of a bucket during Add.
	compactThreshold = 1 << 16
)

// bucket holds the offsets of all indices in [base, base+bucketSize).
// offsets[:clean] is sorted and free of duplicates, offsets[clean:] is the
// dirty tail in arrival order.
type bucket struct {
	base    int64
	offsets []uint32
	clean   int
}

func (b *bucket) dirty() bool { return b.clean < len(b.offsets) }

// compact sorts and deduplicates the dirty tail and merges it into the clean
// prefix.
func (b *bucket) compact() {
	if !b.dirty() {
		return
	}
	tail := b.offsets[b.clean:]
	slices.Sort(tail)
	tail = slices.Compact(tail)

	switch {
	case b.clean == 0:
		b.offsets = b.offsets[:len(tail)]
	case tail[0] > b.offsets[b.clean-1]:
		b.offsets = b.offsets[:b.clean+len(tail)]
	default:
		merged := make([]uint32, 0, b.clean+len(tail))
		head := b.offsets[:b.clean]
		i, j := 0, 0
		for i < len(head) && j < len(tail) {
			switch {
			case head[i] < tail[j]:
				merged = append(merged, head[i])
				i++
			case head[i] > tail[j]:
				merged = append(merged, tail[j])
				j++
			default:
				merged = append(merged, head[i])
				i++
				j++
			}
		}
		merged = append(merged, head[i:]...)
		merged = append(merged, tail[j:]...)
		b.offsets = merged
	}
	b.clean = len(b.offsets)
}

func (b *bucket) contains(off uint32) bool {
	b.compact()
	_, found := slices.BinarySearch(b.offsets, off)
	return found
}

// BucketBuilder partitions unsorted, duplicate-laden input into fixed
// numeric buckets and flattens them into ascending chunks on Build.
//
// Offsets within a bucket are stored as uint32, halving the working set
// compared to raw indices. Sorting is deferred: each bucket tracks a clean
// watermark and only the tail past it is sorted, when a lookup or Build
// needs it or the tail grows past an internal threshold. Duplicates are
// dropped within a Build cycle.
type BucketBuilder struct {
	bucketSize int64
	chunkSize  int
	buckets    *btree.BTreeG[*bucket]
	probe      bucket
}

// NewBucketBuilder creates a bucket builder. bucketSize must be in
// (0, MaxBucketSize].
func NewBucketBuilder(bucketSize int64, chunkSize int) (*BucketBuilder, error) {
	if bucketSize <= 0 || bucketSize > MaxBucketSize {
		return nil, fmt.Errorf("%w: bucket size %d", index.ErrInvalidInput, bucketSize)
	}
	if err := checkChunkSize(chunkSize); err != nil {
		return nil, err
	}
	return &BucketBuilder{
		bucketSize: bucketSize,
		chunkSize:  chunkSize,
		buckets: btree.NewG(16, func(a, b *bucket) bool {
			return a.base < b.base
		}),
	}, nil
}

func (b *BucketBuilder) lookup(base int64) (*bucket, bool) {
	b.probe.base = base
	return b.buckets.Get(&b.probe)
}

// Add accepts v.
func (b *BucketBuilder) Add(v int64) error {
	if v < 0 {
		return fmt.Errorf("%w: negative index %d", index.ErrInvalidInput, v)
	}
	base := v - v%b.bucketSize
	off, err := conv.Int64ToUint32(v - base)
	if err != nil {
		return err
	}
	bk, ok := b.lookup(base)
	if !ok {
		bk = &bucket{base: base}
		b.buckets.ReplaceOrInsert(bk)
	}
	bk.offsets = append(bk.offsets, off)
	if len(bk.offsets)-bk.clean >= compactThreshold {
		bk.compact()
	}
	return nil
}

// AddSet accepts every index of s.
func (b *BucketBuilder) AddSet(s index.Set) error {
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

// Contains reports whether v was accepted in the current cycle.
func (b *BucketBuilder) Contains(v int64) bool {
	if v < 0 {
		return false
	}
	base := v - v%b.bucketSize
	bk, ok := b.lookup(base)
	if !ok {
		return false
	}
	return bk.contains(uint32(v - base))
}

// BucketCount returns the number of non-empty buckets.
func (b *BucketBuilder) BucketCount() int { return b.buckets.Len() }

// Build flattens all buckets into ascending chunks, each stored at the
// narrowest width covering its values, and starts a new cycle.
func (b *BucketBuilder) Build() ([]index.Set, error) {
	var (
		out     []index.Set
		err     error
		scratch = make([]int64, 0, min(b.chunkSize, 4096))
	)
	emit := func() bool {
		var s *index.ArraySet
		s, err = index.CopyOfLongs(scratch)
		if err != nil {
			return false
		}
		out = append(out, spanOf(s))
		scratch = scratch[:0]
		return true
	}

	b.buckets.Ascend(func(bk *bucket) bool {
		bk.compact()
		for _, off := range bk.offsets {
			scratch = append(scratch, bk.base+int64(off))
			if len(scratch) == b.chunkSize && !emit() {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(scratch) > 0 && !emit() {
		return nil, err
	}
	b.buckets.Clear(false)
	return out, nil
}

var _ Builder = (*BucketBuilder)(nil)
