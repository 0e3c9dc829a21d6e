// Package testutil provides testing utilities for index sets.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for index streams.
//
// # Index Generation
//
//	rng := testutil.NewRNG(seed)
//	sorted := rng.AscendingIndices(1000, 0, 8) // strictly ascending
//	random := rng.RandomIndices(1000, 1<<20)   // unsorted, duplicates
//	want := testutil.SortedUnique(random)
package testutil
