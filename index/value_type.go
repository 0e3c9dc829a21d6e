package index

import (
	"fmt"
	"math"
)

// UnsetIndex marks the absence of an index, e.g. FirstIndex of an empty set.
const UnsetIndex int64 = -1

// ValueType is the primitive width used to store indices of a set.
//
// The four widths form a closed enumeration. Every width-specific array
// operation dispatches on the Array implementation, so hot loops never box
// values.
type ValueType uint8

const (
	// Byte stores indices as int8.
	Byte ValueType = iota + 1
	// Short stores indices as int16.
	Short
	// Integer stores indices as int32.
	Integer
	// Long stores indices as int64.
	Long
)

var valueTypes = [...]ValueType{Byte, Short, Integer, Long}

// ValueTypes returns all value types ordered from narrowest to widest.
func ValueTypes() []ValueType {
	out := valueTypes
	return out[:]
}

// String returns the name of the value type.
func (t ValueType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Integer:
		return "integer"
	case Long:
		return "long"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the four known widths.
func (t ValueType) Valid() bool {
	return t >= Byte && t <= Long
}

// BytesPerValue returns the storage width of a single value.
func (t ValueType) BytesPerValue() int {
	switch t {
	case Byte:
		return 1
	case Short:
		return 2
	case Integer:
		return 4
	case Long:
		return 8
	default:
		panic(fmt.Sprintf("index: unknown value type %d", uint8(t)))
	}
}

// MaxValue returns the largest index the type can hold.
func (t ValueType) MaxValue() int64 {
	switch t {
	case Byte:
		return math.MaxInt8
	case Short:
		return math.MaxInt16
	case Integer:
		return math.MaxInt32
	case Long:
		return math.MaxInt64
	default:
		panic(fmt.Sprintf("index: unknown value type %d", uint8(t)))
	}
}

func (t ValueType) minValue() int64 {
	switch t {
	case Byte:
		return math.MinInt8
	case Short:
		return math.MinInt16
	case Integer:
		return math.MinInt32
	default:
		return math.MinInt64
	}
}

// CheckValue validates that v is a legal index for t.
func (t ValueType) CheckValue(v int64) error {
	if v < 0 {
		return fmt.Errorf("%w: negative index %d", ErrInvalidInput, v)
	}
	if v > t.MaxValue() {
		return &OverflowError{Value: v, Type: t}
	}
	return nil
}

// NewArray allocates a zeroed array of the given length.
func (t ValueType) NewArray(n int) Array {
	switch t {
	case Byte:
		return make(Bytes, n)
	case Short:
		return make(Shorts, n)
	case Integer:
		return make(Ints, n)
	case Long:
		return make(Longs, n)
	default:
		panic(fmt.Sprintf("index: unknown value type %d", uint8(t)))
	}
}

// Get returns the value stored at pos.
func (t ValueType) Get(a Array, pos int) int64 {
	return a.Get(pos)
}

// Set stores v at pos after checking it against t.
func (t ValueType) Set(a Array, pos int, v int64) error {
	if err := t.CheckValue(v); err != nil {
		return err
	}
	if a.ValueType().MaxValue() < v {
		return &OverflowError{Value: v, Type: a.ValueType()}
	}
	a.Set(pos, v)
	return nil
}

// Fill overwrites every slot of a with v. Negative sentinels such as
// UnsetIndex are allowed, values outside the signed range of the array's
// width are not.
func (t ValueType) Fill(a Array, v int64) error {
	at := a.ValueType()
	if v > at.MaxValue() || v < at.minValue() {
		return &OverflowError{Value: v, Type: at}
	}
	switch arr := a.(type) {
	case Bytes:
		fillWords(arr, int8(v))
	case Shorts:
		fillWords(arr, int16(v))
	case Ints:
		fillWords(arr, int32(v))
	case Longs:
		fillWords(arr, v)
	}
	return nil
}

// CopyFrom copies n values from src[srcOff:] into dst[dstOff:]. Every value
// is checked against the width of dst before anything is written.
func (t ValueType) CopyFrom(src []int64, srcOff int, dst Array, dstOff, n int) error {
	if n < 0 || srcOff < 0 || srcOff+n > len(src) {
		return fmt.Errorf("%w: copy of %d values from offset %d of %d", ErrOutOfBounds, n, srcOff, len(src))
	}
	if dstOff < 0 || dstOff+n > dst.Len() {
		return fmt.Errorf("%w: copy of %d values to offset %d of %d", ErrOutOfBounds, n, dstOff, dst.Len())
	}
	dt := dst.ValueType()
	for _, v := range src[srcOff : srcOff+n] {
		if err := dt.CheckValue(v); err != nil {
			return err
		}
	}
	copyLongs(dst, dstOff, src[srcOff:srcOff+n])
	return nil
}

// ValueTypeFor returns the narrowest type able to hold v.
func ValueTypeFor(v int64) ValueType {
	switch {
	case v <= math.MaxInt8:
		return Byte
	case v <= math.MaxInt16:
		return Short
	case v <= math.MaxInt32:
		return Integer
	default:
		return Long
	}
}

// DominantType returns the narrowest type whose MaxValue covers the largest
// MaxValue among types. It returns Long when types is empty.
func DominantType(types ...ValueType) ValueType {
	if len(types) == 0 {
		return Long
	}
	dominant := types[0]
	for _, t := range types[1:] {
		if t.MaxValue() > dominant.MaxValue() {
			dominant = t
		}
	}
	return dominant
}

// DominantTypeOf applies DominantType to the value types of sets[from:to].
func DominantTypeOf(sets []Set, from, to int) ValueType {
	if from < 0 || to > len(sets) || from >= to {
		return Long
	}
	dominant := sets[from].ValueType()
	for _, s := range sets[from+1 : to] {
		if t := s.ValueType(); t.MaxValue() > dominant.MaxValue() {
			dominant = t
		}
	}
	return dominant
}
