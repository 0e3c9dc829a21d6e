package icarus

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/index"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/cache"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/internal/resource"
	"github.com/ICARUS-tooling/icarus2-modeling-framework-sub015/paging"
)

// Pager serves the pages of a paging.IndexBuffer through a byte-bounded
// LRU cache. Concurrent requests for the same missing page share a single
// materialization.
//
// A Pager is safe for concurrent use.
type Pager struct {
	buf     *paging.IndexBuffer
	cache   *cache.LRU[int, index.Set] // nil if caching is disabled
	rc      *resource.Controller
	loads   singleflight.Group
	logger  *Logger
	metrics MetricsCollector
	closed  atomic.Bool
}

// CacheStats is a snapshot of the page cache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Pages     int
	Bytes     int64
}

// NewPager creates a Pager over buf.
func NewPager(buf *paging.IndexBuffer, optFns ...Option) (*Pager, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil page buffer", index.ErrInvalidInput)
	}
	o := applyOptions(optFns)

	p := &Pager{
		buf: buf,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxLoadWorkers:   int64(o.prefetchWorkers),
			LoadsPerSecond:   o.loadRate,
		}),
		logger:  o.logger.WithPageSize(buf.PageSize()),
		metrics: o.metricsCollector,
	}
	if o.cacheBytes > 0 {
		c, err := cache.NewLRU(o.cacheBytes, pageBytes, p.rc, p.evicted)
		if err != nil {
			return nil, err
		}
		p.cache = c
	}
	return p, nil
}

// Open creates a Pager over segments split into pages of pageSize indices.
func Open(segments []index.Set, pageSize int, optFns ...Option) (*Pager, error) {
	buf, err := paging.New(segments, pageSize)
	if err != nil {
		return nil, err
	}
	return NewPager(buf, optFns...)
}

// pageBytes is the storage a materialized page occupies.
func pageBytes(s index.Set) int64 {
	return int64(s.Size()) * int64(s.ValueType().BytesPerValue())
}

func (p *Pager) evicted(page int, s index.Set) {
	p.metrics.RecordEviction()
	p.logger.LogEviction(page, pageBytes(s))
}

// Size returns the total number of indices.
func (p *Pager) Size() int64 { return p.buf.Size() }

// PageSize returns the number of indices per page.
func (p *Pager) PageSize() int { return p.buf.PageSize() }

// PageCount returns the number of pages.
func (p *Pager) PageCount() int { return p.buf.PageCount() }

// Page returns page i, from the cache if possible.
func (p *Pager) Page(ctx context.Context, i int) (index.Set, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.cache != nil {
		if s, ok := p.cache.Get(i); ok {
			p.metrics.RecordCacheHit()
			return s, nil
		}
	}
	p.metrics.RecordCacheMiss()
	return p.load(ctx, i)
}

// IndexAt returns the index at position pos of the concatenated segments.
func (p *Pager) IndexAt(ctx context.Context, pos int64) (int64, error) {
	if pos < 0 || pos >= p.buf.Size() {
		return index.UnsetIndex, &index.BoundsError{Op: "IndexAt", Index: pos, Size: p.buf.Size()}
	}
	pageSize := int64(p.buf.PageSize())
	s, err := p.Page(ctx, int(pos/pageSize))
	if err != nil {
		return index.UnsetIndex, err
	}
	return s.IndexAt(int(pos % pageSize)), nil
}

func (p *Pager) load(ctx context.Context, i int) (index.Set, error) {
	v, err, _ := p.loads.Do(strconv.Itoa(i), func() (any, error) {
		start := time.Now()
		s, err := p.buf.CreatePage(i)
		elapsed := time.Since(start)

		size := 0
		if err == nil {
			size = s.Size()
		}
		p.metrics.RecordPageLoad(size, elapsed, err)
		p.logger.LogPageLoad(ctx, i, size, elapsed, err)
		if err != nil {
			return nil, &PageError{Page: i, cause: err}
		}
		if p.cache != nil && !p.closed.Load() {
			p.cache.Add(i, s)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(index.Set), nil
}

// Prefetch loads pages into the cache. At most the configured number of
// workers load at once and the configured load rate applies. The first
// failure cancels the remaining loads and is returned. Without a cache
// Prefetch does nothing.
func (p *Pager) Prefetch(ctx context.Context, pages ...int) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.cache == nil || len(pages) == 0 {
		return nil
	}

	var loaded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.rc.MaxLoadWorkers())
	seen := make(map[int]struct{}, len(pages))
	for _, i := range pages {
		if _, dup := seen[i]; dup || p.cache.Contains(i) {
			continue
		}
		seen[i] = struct{}{}
		g.Go(func() error {
			if err := p.rc.AcquireLoad(gctx); err != nil {
				return err
			}
			defer p.rc.ReleaseLoad()

			if p.cache.Contains(i) {
				return nil
			}
			p.metrics.RecordCacheMiss()
			if _, err := p.load(gctx, i); err != nil {
				return err
			}
			loaded.Add(1)
			return nil
		})
	}
	err := g.Wait()
	p.logger.LogPrefetch(ctx, len(pages), int(loaded.Load()), err)
	return err
}

// CacheStats returns the current cache counters. All counters are zero
// when caching is disabled.
func (p *Pager) CacheStats() CacheStats {
	if p.cache == nil {
		return CacheStats{}
	}
	s := p.cache.Stats()
	return CacheStats{
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		Pages:     s.Entries,
		Bytes:     s.Bytes,
	}
}

// MemoryUsage returns the bytes held by cached pages.
func (p *Pager) MemoryUsage() int64 { return p.rc.MemoryUsage() }

// MemoryLimit returns the memory limit for cached pages in bytes, or 0 if
// only the cache size bounds them.
func (p *Pager) MemoryLimit() int64 { return p.rc.MemoryLimit() }

// Release drops the given pages from the cache and returns how many were
// cached. Released pages are loaded again on their next access.
func (p *Pager) Release(pages ...int) int {
	if p.cache == nil {
		return 0
	}
	n := 0
	for _, i := range pages {
		if p.cache.Remove(i) {
			n++
		}
	}
	return n
}

// Close drops all cached pages. Further calls fail with ErrClosed. Pages
// handed out before Close stay valid.
func (p *Pager) Close() error {
	if p == nil || p.closed.Swap(true) {
		return nil
	}
	if p.cache != nil {
		p.cache.Purge()
	}
	p.logger.Debug("pager closed")
	return nil
}
