package collect

import (
	"fmt"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
)

// Builder accumulates indices and emits them as chunks.
type Builder interface {
	// Add accepts a single index.
	Add(v int64) error
	// AddSet accepts every index of s.
	AddSet(s index.Set) error
	// Build returns the chunks accumulated since the previous call.
	Build() ([]index.Set, error)
}

func checkChunkSize(chunkSize int) error {
	if chunkSize <= 0 || chunkSize >= index.MaxSetSize {
		return fmt.Errorf("%w: chunk size %d", index.ErrInvalidInput, chunkSize)
	}
	return nil
}

func checkCapacity(capacity int64) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity %d", index.ErrInvalidInput, capacity)
	}
	return nil
}

// chunker writes values into buffers of chunkSize slots and retains every
// full buffer as an immutable chunk.
type chunker struct {
	valueType index.ValueType
	chunkSize int
	// spans turns strictly ascending contiguous chunks into SpanSets.
	spans  bool
	chunks []index.Set
	buf    *index.Buffer
}

func (c *chunker) add(v int64) error {
	if c.buf == nil {
		buf, err := index.NewBuffer(c.valueType, c.chunkSize)
		if err != nil {
			return err
		}
		c.buf = buf
	}
	if err := c.buf.Add(v); err != nil {
		return err
	}
	if c.buf.Remaining() == 0 {
		c.chunks = append(c.chunks, c.seal(c.buf.Externalize()))
		c.buf = nil
	}
	return nil
}

// flush hands out all retained chunks plus a copy of the partial buffer.
func (c *chunker) flush() []index.Set {
	out := c.chunks
	c.chunks = nil
	if c.buf != nil {
		if snap := c.buf.Snapshot(); snap != nil {
			out = append(out, c.seal(snap))
		}
		c.buf.Clear()
	}
	return out
}

func (c *chunker) seal(s index.Set) index.Set {
	if c.spans {
		return spanOf(s)
	}
	return s
}

// spanOf replaces a set without gaps by a SpanSet. s must be strictly
// ascending; duplicates would be mistaken for a gap elsewhere.
func spanOf(s index.Set) index.Set {
	n := s.Size()
	if n < 2 || !s.IsSorted() {
		return s
	}
	first, last := s.FirstIndex(), s.LastIndex()
	if last-first != int64(n-1) {
		return s
	}
	span, err := index.NewSpanSet(first, last)
	if err != nil {
		return s
	}
	return span
}
