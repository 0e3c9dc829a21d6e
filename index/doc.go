// Package index represents collections of 64-bit positional indices into a
// corpus.
//
// # Value types
//
// Indices are stored in the narrowest of four signed widths (ValueType):
// Byte, Short, Integer and Long. Arrays of each width implement Array.
//
// # Sets
//
// Set is the read-only contract shared by a small, closed family of variants:
//
//   - ArraySet: a window of a width-typed array
//   - SpanSet and SingletonSet: contiguous ranges without storage
//   - FilteredSet and DelegatingSpanSet: views over another set
//   - SynchronizedSet: a lock-guarded view, paired with GuardedBuffer
//   - VirtualSet: indices computed by a function
//
// A single set holds at most MaxSetSize indices. Larger address spaces are
// expressed as slices of sets.
//
// # Buffer
//
// Buffer is the only mutable variant. It has a fixed capacity, tracks
// sortedness as values are appended and hands out immutable views through
// Snapshot and Externalize.
//
// # Errors
//
// Constructors and bulk operations return errors matching ErrInvalidInput,
// ErrOverflow, ErrUnsortedInput, ErrUnsortedSet, ErrOutOfBounds or
// ErrIllegalState. IndexAt follows slice semantics and panics with a
// *BoundsError.
package index
