// Package collect turns streams of indices into chunked index sets.
//
// Builders are single-threaded accumulators. They accept single indices or
// whole sets through Add and AddSet and hand out finished chunks through
// Build. Each call to Build returns only what was accepted since the
// previous call, so the concatenation of all returned chunks equals the
// accepted input.
//
// # Sorted builders
//
// LimitedSorted and UnlimitedSorted require strictly ascending input across
// all calls. A value that is not greater than its predecessor fails with
// index.ErrUnsortedInput; a set that breaks the order at its boundary or
// internally fails with index.ErrUnsortedSet. Input is never reordered and
// never deduplicated.
//
// # Unsorted builders
//
// LimitedUnsortedLong, LimitedUnsortedInt and LimitedUnsortedShort accept
// indices in any order and drop duplicates. They emit ascending chunks.
//
// BucketBuilder partitions large unsorted input into fixed numeric buckets
// whose offsets are sorted lazily.
package collect
