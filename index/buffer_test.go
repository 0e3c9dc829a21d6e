package index

import (
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	for _, c := range []int{0, -1, math.MaxInt32} {
		_, err := NewLongBuffer(c)
		assert.ErrorIs(t, err, ErrInvalidInput, "capacity %d", c)
	}
	_, err := NewBuffer(ValueType(0), 4)
	assert.ErrorIs(t, err, ErrInvalidInput)

	b, err := NewLongBuffer(8)
	require.NoError(t, err)
	assert.Equal(t, Long, b.ValueType())
	assert.Equal(t, 8, b.Capacity())
	assert.Equal(t, 8, b.Remaining())
}

func TestBufferEmptyState(t *testing.T) {
	b, err := NewBuffer(Integer, 4)
	require.NoError(t, err)

	assert.Equal(t, 0, b.Size())
	assert.Equal(t, UnsetIndex, b.FirstIndex())
	assert.Equal(t, UnsetIndex, b.LastIndex())
	assert.Nil(t, b.Snapshot())
	assert.True(t, b.IsSorted())
	assert.True(t, b.Sort())

	err = b.Export(0, 1, make([]int64, 1), 0)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = b.SubSet(0, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	requireBoundsPanic(t, func() { b.IndexAt(0) })

	ext := b.Externalize()
	assert.Equal(t, 0, ext.Size())
}

func TestBufferCapacityOne(t *testing.T) {
	b, err := NewLongBuffer(1)
	require.NoError(t, err)

	require.NoError(t, b.Add(5))
	assert.Equal(t, 0, b.Remaining())

	err = b.Add(6)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 1, b.Size())
}

func TestBufferAdd(t *testing.T) {
	src, err := NewArraySet(Longs{100, 101, 102, 103})
	require.NoError(t, err)
	span, err := NewSpanSet(200, 201)
	require.NoError(t, err)

	b, err := NewLongBuffer(64)
	require.NoError(t, err)

	require.NoError(t, b.Add(1))
	require.NoError(t, b.AddRange(2, 4))
	require.NoError(t, b.AddValues(5, 6))
	require.NoError(t, b.AddArray(Bytes{7, 8}))
	require.NoError(t, b.AddArraySlice(Shorts{0, 9, 10, 0}, 1, 2))
	require.NoError(t, b.AddSetRange(src, 1, 2))
	require.NoError(t, b.AddSetFrom(src, 3))
	require.NoError(t, b.AddSets(span))
	require.NoError(t, b.AddSeq(slices.Values([]int64{300, 301})))
	require.NoError(t, AddMapped(b, maps.Keys(map[string]int64{"x": 0}), func(k string) int64 { return 400 }))
	require.NoError(t, b.AddSet(src))

	assert.Equal(t, []int64{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		101, 102, 103, 200, 201, 300, 301, 400,
		100, 101, 102, 103,
	}, Values(b))
	assert.False(t, b.IsSorted())
	assert.Equal(t, 64-22, b.Remaining())
}

func TestBufferAddErrors(t *testing.T) {
	b, err := NewBuffer(Byte, 4)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Add(128), ErrOverflow)
	assert.ErrorIs(t, b.Add(-1), ErrInvalidInput)
	assert.ErrorIs(t, b.AddRange(3, 2), ErrInvalidInput)
	assert.ErrorIs(t, b.AddRange(0, 4), ErrCapacityExceeded)
	assert.ErrorIs(t, b.AddValues(1, 2, 3, 4, 5), ErrCapacityExceeded)
	assert.ErrorIs(t, b.AddArray(nil), ErrInvalidInput)
	assert.ErrorIs(t, b.AddArraySlice(Longs{1}, 0, 2), ErrOutOfBounds)
	assert.ErrorIs(t, b.AddSet(nil), ErrInvalidInput)
	assert.Equal(t, 0, b.Size(), "failed adds must not write")

	s, err := NewSpanSet(0, 9)
	require.NoError(t, err)
	assert.ErrorIs(t, b.AddSet(s), ErrCapacityExceeded)
	assert.ErrorIs(t, b.AddSetRange(s, 8, 3), ErrOutOfBounds)
}

func TestBufferFailedAddLeavesNoPartialAppend(t *testing.T) {
	b, err := NewBuffer(Byte, 8)
	require.NoError(t, err)
	require.NoError(t, b.AddValues(1, 2))

	assert.ErrorIs(t, b.AddValues(3, 200), ErrOverflow)
	assert.ErrorIs(t, b.AddValues(0, -4), ErrInvalidInput)

	a, err := NewSpanSet(3, 4)
	require.NoError(t, err)
	assert.ErrorIs(t, b.AddSets(a, nil), ErrInvalidInput)

	wide, err := NewArraySet(Longs{5, 1000})
	require.NoError(t, err)
	assert.ErrorIs(t, b.AddSets(a, wide), ErrOverflow)
	assert.ErrorIs(t, b.AddSetRange(wide, 0, 2), ErrOverflow)
	assert.ErrorIs(t, b.AddArraySlice(Longs{0, 300}, 0, 2), ErrOverflow)

	assert.ErrorIs(t, b.AddSeq(slices.Values([]int64{0, 9, 500})), ErrOverflow)
	assert.ErrorIs(t, AddMapped(b, slices.Values([]string{"a", "bbb"}), func(s string) int64 {
		return int64(len(s)) * 100
	}), ErrOverflow)

	assert.Equal(t, []int64{1, 2}, Values(b))
	assert.True(t, b.IsSorted(), "sortedness is restored with the cursor")

	require.NoError(t, b.AddSets(a))
	assert.Equal(t, []int64{1, 2, 3, 4}, Values(b))
}

func TestBufferSortedness(t *testing.T) {
	b, err := NewBuffer(Short, 8)
	require.NoError(t, err)

	require.NoError(t, b.AddValues(1, 1, 2))
	assert.True(t, b.IsSorted(), "duplicates keep non-decreasing order")
	require.NoError(t, b.Add(0))
	assert.False(t, b.IsSorted())

	assert.True(t, b.Sort())
	assert.Equal(t, []int64{0, 1, 1, 2}, Values(b))
	assert.True(t, b.Sort())
	assert.Equal(t, []int64{0, 1, 1, 2}, Values(b))

	b.Clear()
	assert.Equal(t, 0, b.Size())
	assert.True(t, b.IsSorted())
	assert.Equal(t, 8, b.Remaining())
}

func TestBufferViews(t *testing.T) {
	b, err := NewBuffer(Integer, 8)
	require.NoError(t, err)
	require.NoError(t, b.AddValues(10, 20, 30, 40))

	t.Run("subset bounded by size", func(t *testing.T) {
		sub, err := b.SubSet(1, 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{20, 30, 40}, Values(sub))
		_, err = b.SubSet(1, 4)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("export bounded by size", func(t *testing.T) {
		dst := make([]int64, 8)
		require.NoError(t, b.Export(0, 4, dst, 4))
		assert.Equal(t, []int64{0, 0, 0, 0, 10, 20, 30, 40}, dst)
		assert.ErrorIs(t, b.Export(0, 5, dst, 0), ErrOutOfBounds)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		snap := b.Snapshot()
		require.NotNil(t, snap)
		require.NoError(t, b.Add(50))
		assert.Equal(t, 4, snap.Size())
		assert.Equal(t, 5, b.Size())
	})

	t.Run("externalize", func(t *testing.T) {
		ext := b.Externalize()
		assert.Equal(t, []int64{10, 20, 30, 40, 50}, slices.Collect(ext.All()))
		assert.True(t, ext.IsSorted())
		assert.Equal(t, Integer, ext.ValueType())
	})
}
