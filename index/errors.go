package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for non-positive sizes, empty inputs, nil
	// required arguments and malformed windows.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOverflow is returned when a value or capacity exceeds what the chosen
	// value type can represent.
	ErrOverflow = errors.New("overflow")

	// ErrUnsortedInput is returned when a single value breaks ascending order.
	ErrUnsortedInput = errors.New("unsorted index input")

	// ErrUnsortedSet is returned when a whole set breaks ascending order, either
	// at its boundary to previously accepted input or internally.
	ErrUnsortedSet = errors.New("unsorted index set")

	// ErrOutOfBounds is returned when a position or range lies outside the
	// populated region of a set.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrIllegalState is returned when an object is used outside its lifecycle.
	ErrIllegalState = errors.New("illegal state")
)

var (
	// ErrCapacityExceeded is returned by a full Buffer. It matches ErrOverflow.
	ErrCapacityExceeded = fmt.Errorf("%w: capacity exceeded", ErrOverflow)

	// ErrEmpty is returned when data is read from a Buffer that holds no values.
	// It matches both ErrIllegalState and ErrOutOfBounds.
	ErrEmpty = fmt.Errorf("%w: %w: buffer is empty", ErrIllegalState, ErrOutOfBounds)
)

// BoundsError describes a failed position or range check.
type BoundsError struct {
	Op    string
	Index int64
	Size  int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: position %d out of bounds for size %d", e.Op, e.Index, e.Size)
}

// Is reports whether target is ErrOutOfBounds.
func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// OverflowError describes a value that does not fit a value type.
type OverflowError struct {
	Value int64
	Type  ValueType
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("value %d exceeds max %d of %s", e.Value, e.Type.MaxValue(), e.Type)
}

// Is reports whether target is ErrOverflow.
func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

func outOfBounds(op string, idx, size int) error {
	return &BoundsError{Op: op, Index: int64(idx), Size: int64(size)}
}

// checkPosition panics with a *BoundsError when i is outside [0, size).
// Accessors follow slice semantics: a bad position is a programming error.
func checkPosition(i, size int) {
	if i < 0 || i >= size {
		panic(outOfBounds("IndexAt", i, size))
	}
}

// checkRange validates an inclusive [from, to] range against size.
func checkRange(op string, from, to, size int) error {
	if from < 0 || from >= size {
		return outOfBounds(op, from, size)
	}
	if to < from || to >= size {
		return outOfBounds(op, to, size)
	}
	return nil
}

// checkExport validates an export of the exclusive range [begin, end) into
// dst starting at off.
func checkExport(begin, end, size int, dst []int64, off int) error {
	if begin < 0 || begin > size {
		return outOfBounds("Export", begin, size)
	}
	if end < begin || end > size {
		return outOfBounds("Export", end, size)
	}
	if off < 0 || off+(end-begin) > len(dst) {
		return fmt.Errorf("%w: export of %d values at offset %d into %d slots",
			ErrOutOfBounds, end-begin, off, len(dst))
	}
	return nil
}
