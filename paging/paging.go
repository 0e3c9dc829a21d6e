package paging

import (
	"fmt"
	"sort"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/conv"
)

// IndexBuffer addresses an ordered sequence of index sets page by page.
type IndexBuffer struct {
	segments []index.Set
	// offsets[i] is the position of segments[i]'s first index in the
	// concatenation. It is non-decreasing; empty segments repeat an offset.
	offsets   []int64
	size      int64
	pageSize  int
	pageCount int
}

// New creates an IndexBuffer over segments. The slice is copied; the sets
// themselves are shared and must not change afterwards.
func New(segments []index.Set, pageSize int) (*IndexBuffer, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", index.ErrInvalidInput)
	}
	if pageSize <= 0 || pageSize >= index.MaxSetSize {
		return nil, fmt.Errorf("%w: page size %d", index.ErrInvalidInput, pageSize)
	}

	offsets := make([]int64, len(segments))
	var size int64
	for i, s := range segments {
		if s == nil {
			return nil, fmt.Errorf("%w: nil segment at %d", index.ErrInvalidInput, i)
		}
		offsets[i] = size
		size += int64(s.Size())
	}

	pageCount := size / int64(pageSize)
	if size%int64(pageSize) != 0 {
		pageCount++
	}
	n, err := conv.Int64ToInt(pageCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", index.ErrOverflow, err)
	}
	return &IndexBuffer{
		segments:  append([]index.Set(nil), segments...),
		offsets:   offsets,
		size:      size,
		pageSize:  pageSize,
		pageCount: n,
	}, nil
}

// Size returns the total number of indices across all segments.
func (b *IndexBuffer) Size() int64 { return b.size }

// PageSize returns the number of indices on every page but the last.
func (b *IndexBuffer) PageSize() int { return b.pageSize }

// PageCount returns the number of pages.
func (b *IndexBuffer) PageCount() int { return b.pageCount }

// SegmentCount returns the number of segments.
func (b *IndexBuffer) SegmentCount() int { return len(b.segments) }

// PageBounds returns the first position of page p and the number of indices
// on it.
func (b *IndexBuffer) PageBounds(p int) (first int64, n int, err error) {
	if err := b.checkPage(p); err != nil {
		return 0, 0, err
	}
	first = int64(p) * int64(b.pageSize)
	n = b.pageSize
	if p == b.pageCount-1 {
		if rem := int(b.size % int64(b.pageSize)); rem != 0 {
			n = rem
		}
	}
	return first, n, nil
}

func (b *IndexBuffer) checkPage(p int) error {
	if p < 0 || p >= b.pageCount {
		return &index.BoundsError{Op: "CreatePage", Index: int64(p), Size: int64(b.pageCount)}
	}
	return nil
}

// segmentOf returns the segment holding position pos: the last segment whose
// starting offset is <= pos. Empty segments share their offset with the
// next one and are skipped. The result is clamped to the last segment.
func (b *IndexBuffer) segmentOf(pos int64) int {
	i := sort.Search(len(b.offsets), func(i int) bool { return b.offsets[i] > pos }) - 1
	return min(max(i, 0), len(b.segments)-1)
}

// CreatePage materializes page p as a new set.
//
// With a single page and a single segment the segment itself is returned.
func (b *IndexBuffer) CreatePage(p int) (index.Set, error) {
	first, n, err := b.PageBounds(p)
	if err != nil {
		return nil, err
	}
	if b.pageCount == 1 && len(b.segments) == 1 {
		return b.segments[0], nil
	}

	last := first + int64(n) - 1
	firstSeg, lastSeg := b.segmentOf(first), b.segmentOf(last)

	buf, err := index.NewBuffer(index.DominantTypeOf(b.segments, firstSeg, lastSeg+1), n)
	if err != nil {
		return nil, err
	}

	head := int(first - b.offsets[firstSeg])
	if firstSeg == lastSeg {
		err = buf.AddSetRange(b.segments[firstSeg], head, n)
	} else {
		err = b.fill(buf, firstSeg, lastSeg, head, int(last-b.offsets[lastSeg])+1)
	}
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", p, err)
	}
	return buf.Externalize(), nil
}

// fill appends the tail of segments[firstSeg] starting at head, every
// segment in between and the first tail indices of segments[lastSeg].
func (b *IndexBuffer) fill(buf *index.Buffer, firstSeg, lastSeg, head, tail int) error {
	if err := buf.AddSetFrom(b.segments[firstSeg], head); err != nil {
		return err
	}
	if err := buf.AddSets(b.segments[firstSeg+1 : lastSeg]...); err != nil {
		return err
	}
	return buf.AddSetRange(b.segments[lastSeg], 0, tail)
}
