package index

import (
	"fmt"
	"slices"
)

// Array is a width-typed backing array of indices.
//
// Bytes, Shorts, Ints and Longs are the only implementations. Set does not
// validate; callers go through ValueType.Set or a Buffer for checked writes.
type Array interface {
	Len() int
	Get(i int) int64
	Set(i int, v int64)
	ValueType() ValueType
	// Slice returns the window [from, to) sharing storage with the receiver.
	Slice(from, to int) Array
}

// Bytes is an Array of int8 values.
type Bytes []int8

// Shorts is an Array of int16 values.
type Shorts []int16

// Ints is an Array of int32 values.
type Ints []int32

// Longs is an Array of int64 values.
type Longs []int64

func (a Bytes) Len() int                 { return len(a) }
func (a Bytes) Get(i int) int64          { return int64(a[i]) }
func (a Bytes) Set(i int, v int64)       { a[i] = int8(v) }
func (a Bytes) ValueType() ValueType     { return Byte }
func (a Bytes) Slice(from, to int) Array { return a[from:to:to] }

func (a Shorts) Len() int                 { return len(a) }
func (a Shorts) Get(i int) int64          { return int64(a[i]) }
func (a Shorts) Set(i int, v int64)       { a[i] = int16(v) }
func (a Shorts) ValueType() ValueType     { return Short }
func (a Shorts) Slice(from, to int) Array { return a[from:to:to] }

func (a Ints) Len() int                 { return len(a) }
func (a Ints) Get(i int) int64          { return int64(a[i]) }
func (a Ints) Set(i int, v int64)       { a[i] = int32(v) }
func (a Ints) ValueType() ValueType     { return Integer }
func (a Ints) Slice(from, to int) Array { return a[from:to:to] }

func (a Longs) Len() int                 { return len(a) }
func (a Longs) Get(i int) int64          { return a[i] }
func (a Longs) Set(i int, v int64)       { a[i] = v }
func (a Longs) ValueType() ValueType     { return Long }
func (a Longs) Slice(from, to int) Array { return a[from:to:to] }

type word interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func fillWords[T word](a []T, v T) {
	for i := range a {
		a[i] = v
	}
}

func narrowInto[T word](dst []T, src []int64) {
	for i, v := range src {
		dst[i] = T(v)
	}
}

func widenInto[T word](dst []int64, src []T) {
	for i, v := range src {
		dst[i] = int64(v)
	}
}

func isAscending[T word](a []T) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}

// copyLongs writes src into dst starting at off without range checks on the
// values themselves.
func copyLongs(dst Array, off int, src []int64) {
	switch d := dst.(type) {
	case Bytes:
		narrowInto(d[off:], src)
	case Shorts:
		narrowInto(d[off:], src)
	case Ints:
		narrowInto(d[off:], src)
	case Longs:
		copy(d[off:], src)
	default:
		panic(fmt.Sprintf("index: unsupported array %T", dst))
	}
}

// exportArray widens a[from:to] into dst.
func exportArray(a Array, from, to int, dst []int64) {
	switch s := a.(type) {
	case Bytes:
		widenInto(dst, s[from:to])
	case Shorts:
		widenInto(dst, s[from:to])
	case Ints:
		widenInto(dst, s[from:to])
	case Longs:
		copy(dst, s[from:to])
	default:
		for i := from; i < to; i++ {
			dst[i-from] = a.Get(i)
		}
	}
}

// copyArray copies src[from:to] into dst at off. dst must be at least as
// wide as the values it receives.
func copyArray(dst Array, off int, src Array, from, to int) {
	if dst.ValueType() == src.ValueType() {
		switch d := dst.(type) {
		case Bytes:
			copy(d[off:], src.(Bytes)[from:to])
			return
		case Shorts:
			copy(d[off:], src.(Shorts)[from:to])
			return
		case Ints:
			copy(d[off:], src.(Ints)[from:to])
			return
		case Longs:
			copy(d[off:], src.(Longs)[from:to])
			return
		}
	}
	for i := from; i < to; i++ {
		dst.Set(off+i-from, src.Get(i))
	}
}

func ascending(a Array, from, to int) bool {
	switch s := a.(type) {
	case Bytes:
		return isAscending(s[from:to])
	case Shorts:
		return isAscending(s[from:to])
	case Ints:
		return isAscending(s[from:to])
	case Longs:
		return isAscending(s[from:to])
	}
	for i := from + 1; i < to; i++ {
		if a.Get(i) < a.Get(i-1) {
			return false
		}
	}
	return true
}

func sortArray(a Array, from, to int) {
	switch s := a.(type) {
	case Bytes:
		slices.Sort(s[from:to])
	case Shorts:
		slices.Sort(s[from:to])
	case Ints:
		slices.Sort(s[from:to])
	case Longs:
		slices.Sort(s[from:to])
	}
}
