package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTypeMetadata(t *testing.T) {
	tests := []struct {
		typ   ValueType
		bytes int
		max   int64
		name  string
	}{
		{Byte, 1, math.MaxInt8, "byte"},
		{Short, 2, math.MaxInt16, "short"},
		{Integer, 4, math.MaxInt32, "integer"},
		{Long, 8, math.MaxInt64, "long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bytes, tt.typ.BytesPerValue())
			assert.Equal(t, tt.max, tt.typ.MaxValue())
			assert.Equal(t, tt.name, tt.typ.String())
			assert.True(t, tt.typ.Valid())

			arr := tt.typ.NewArray(4)
			assert.Equal(t, 4, arr.Len())
			assert.Equal(t, tt.typ, arr.ValueType())
		})
	}

	assert.False(t, ValueType(0).Valid())
	assert.Equal(t, []ValueType{Byte, Short, Integer, Long}, ValueTypes())
}

func TestValueTypeFor(t *testing.T) {
	assert.Equal(t, Byte, ValueTypeFor(0))
	assert.Equal(t, Byte, ValueTypeFor(127))
	assert.Equal(t, Short, ValueTypeFor(128))
	assert.Equal(t, Short, ValueTypeFor(math.MaxInt16))
	assert.Equal(t, Integer, ValueTypeFor(math.MaxInt16+1))
	assert.Equal(t, Integer, ValueTypeFor(math.MaxInt32))
	assert.Equal(t, Long, ValueTypeFor(math.MaxInt32+1))
}

func TestDominantType(t *testing.T) {
	assert.Equal(t, Long, DominantType())
	assert.Equal(t, Byte, DominantType(Byte, Byte))
	assert.Equal(t, Integer, DominantType(Byte, Integer, Short))
	assert.Equal(t, Long, DominantType(Long, Byte))

	b, err := CopyOfLongs([]int64{1, 2})
	require.NoError(t, err)
	s, err := CopyOfLongs([]int64{1000})
	require.NoError(t, err)
	i, err := CopyOfLongs([]int64{1 << 20})
	require.NoError(t, err)
	sets := []Set{b, s, i}

	assert.Equal(t, Short, DominantTypeOf(sets, 0, 2))
	assert.Equal(t, Integer, DominantTypeOf(sets, 1, 3))
	assert.Equal(t, Byte, DominantTypeOf(sets, 0, 1))
	assert.Equal(t, Long, DominantTypeOf(sets, 2, 2))
}

func TestValueTypeSetGet(t *testing.T) {
	arr := Short.NewArray(3)

	require.NoError(t, Short.Set(arr, 0, 42))
	assert.Equal(t, int64(42), Short.Get(arr, 0))

	err := Short.Set(arr, 1, math.MaxInt16+1)
	assert.ErrorIs(t, err, ErrOverflow)
	var oe *OverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, Short, oe.Type)

	assert.ErrorIs(t, Short.Set(arr, 1, -3), ErrInvalidInput)

	// The array width wins over the receiver.
	assert.ErrorIs(t, Long.Set(arr, 2, 1<<20), ErrOverflow)
}

func TestValueTypeFill(t *testing.T) {
	for _, typ := range ValueTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			arr := typ.NewArray(5)
			require.NoError(t, typ.Fill(arr, UnsetIndex))
			for i := 0; i < arr.Len(); i++ {
				assert.Equal(t, UnsetIndex, arr.Get(i))
			}
		})
	}

	assert.ErrorIs(t, Byte.Fill(Byte.NewArray(1), 200), ErrOverflow)
}

func TestValueTypeCopyFrom(t *testing.T) {
	src := []int64{1, 2, 3, 4, 5}

	dst := Byte.NewArray(4)
	require.NoError(t, Byte.CopyFrom(src, 1, dst, 1, 3))
	assert.Equal(t, Bytes{0, 2, 3, 4}, dst)

	assert.ErrorIs(t, Byte.CopyFrom(src, 3, dst, 0, 3), ErrOutOfBounds)
	assert.ErrorIs(t, Byte.CopyFrom(src, 0, dst, 2, 3), ErrOutOfBounds)
	assert.ErrorIs(t, Byte.CopyFrom([]int64{500}, 0, dst, 0, 1), ErrOverflow)
}

func TestArraySlice(t *testing.T) {
	arr := Ints{1, 2, 3, 4}
	sub := arr.Slice(1, 3)

	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, int64(2), sub.Get(0))
	sub.Set(0, 9)
	assert.Equal(t, int32(9), arr[1])
}
