// Package icarus pages through large index spaces held as sequences of
// compact index sets.
//
// The building blocks live in subpackages:
//
//   - index: the Set contract, its variants and the mutable Buffer
//   - collect: builders turning raw index streams into chunked sets
//   - paging: fixed-size pages over an ordered sequence of sets
//
// This package adds a Pager on top of paging.IndexBuffer: a byte-bounded
// page cache with load deduplication, rate-limited prefetching, structured
// logging and metrics.
//
// # Quick Start
//
//	b, _ := collect.NewUnlimitedSorted(index.Integer, 4096)
//	for _, v := range hits {
//	    if err := b.Add(v); err != nil {
//	        return err
//	    }
//	}
//	chunks, _ := b.Build()
//
//	p, _ := icarus.Open(chunks, 1024,
//	    icarus.WithCacheBytes(32<<20),
//	    icarus.WithLogger(icarus.NewJSONLogger(slog.LevelInfo)),
//	)
//	defer p.Close()
//
//	page, _ := p.Page(ctx, 0)
//	for v := range page.All() {
//	    fmt.Println(v)
//	}
//
// # Errors
//
// Failures are reported with sentinel errors from package index
// (ErrInvalidInput, ErrOverflow, ErrUnsortedInput, ErrUnsortedSet,
// ErrOutOfBounds, ErrIllegalState), matched with errors.Is. Page load
// failures are wrapped in *PageError.
package icarus
