package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/testutil"
)

func TestNewBucketBuilder(t *testing.T) {
	for _, bad := range []struct {
		bucketSize int64
		chunkSize  int
	}{{0, 10}, {-1, 10}, {MaxBucketSize + 1, 10}, {100, 0}} {
		_, err := NewBucketBuilder(bad.bucketSize, bad.chunkSize)
		assert.ErrorIs(t, err, index.ErrInvalidInput)
	}

	_, err := NewBucketBuilder(MaxBucketSize, 1)
	assert.NoError(t, err)
}

func TestBucketBuilderFlatten(t *testing.T) {
	rng := testutil.NewRNG(4711)
	input := rng.RandomIndices(5000, 1<<34)
	input = append(input, input[:500]...)
	rng.Shuffle(input)
	want := testutil.SortedUnique(input)

	b, err := NewBucketBuilder(1<<20, 256)
	require.NoError(t, err)
	for _, v := range input {
		require.NoError(t, b.Add(v))
	}
	assert.Greater(t, b.BucketCount(), 1)

	chunks, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, chunks, (len(want)+255)/256)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.Size(), 256)
		assert.True(t, c.IsSorted())
		assert.Equal(t, index.ValueTypeFor(c.LastIndex()), c.ValueType())
	}
	assert.Equal(t, want, index.Concat(chunks...))
	assert.Equal(t, 0, b.BucketCount())
}

func TestBucketBuilderNarrowChunks(t *testing.T) {
	b, err := NewBucketBuilder(100, 3)
	require.NoError(t, err)

	set, err := index.NewArraySet(index.Longs{70000, 5, 1, 90, 5, 3})
	require.NoError(t, err)
	require.NoError(t, b.AddSet(set))

	chunks, err := b.Build()
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, []int64{1, 3, 5}, index.Values(chunks[0]))
	assert.Equal(t, index.Byte, chunks[0].ValueType())
	assert.Equal(t, []int64{90, 70000}, index.Values(chunks[1]))
	assert.Equal(t, index.Integer, chunks[1].ValueType())
}

func TestBucketBuilderLazyCompaction(t *testing.T) {
	b, err := NewBucketBuilder(1000, 16)
	require.NoError(t, err)

	for _, v := range []int64{10, 5, 10, 7} {
		require.NoError(t, b.Add(v))
	}
	bk, ok := b.lookup(0)
	require.True(t, ok)
	assert.Equal(t, 0, bk.clean, "adds do not sort")
	assert.Len(t, bk.offsets, 4)

	assert.True(t, b.Contains(7))
	assert.Equal(t, []uint32{5, 7, 10}, bk.offsets)
	assert.Equal(t, 3, bk.clean)

	require.NoError(t, b.Add(6))
	require.NoError(t, b.Add(11))
	require.NoError(t, b.Add(5))
	assert.Equal(t, 3, bk.clean)
	assert.False(t, b.Contains(8))
	assert.Equal(t, []uint32{5, 6, 7, 10, 11}, bk.offsets)

	require.NoError(t, b.Add(20))
	assert.True(t, b.Contains(20))
	assert.Equal(t, []uint32{5, 6, 7, 10, 11, 20}, bk.offsets)

	assert.False(t, b.Contains(5000))
	assert.False(t, b.Contains(-3))
	assert.ErrorIs(t, b.Add(-3), index.ErrInvalidInput)
	assert.ErrorIs(t, b.AddSet(nil), index.ErrInvalidInput)
}

func TestBucketBuilderContiguousSpan(t *testing.T) {
	b, err := NewBucketBuilder(8, 100)
	require.NoError(t, err)
	for v := int64(40); v >= 20; v-- {
		require.NoError(t, b.Add(v))
	}

	chunks, err := b.Build()
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.IsType(t, &index.SpanSet{}, chunks[0])
	assert.Equal(t, int64(20), chunks[0].FirstIndex())
	assert.Equal(t, int64(40), chunks[0].LastIndex())
}
