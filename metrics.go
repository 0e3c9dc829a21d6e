package icarus

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pager metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPageLoad is called after each page materialization.
	// size is the number of indices on the page, err is nil if successful.
	RecordPageLoad(size int, duration time.Duration, err error)

	// RecordCacheHit is called when a page is served from the cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a page has to be materialized.
	RecordCacheMiss()

	// RecordEviction is called when a page is dropped to make room.
	RecordEviction()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPageLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit()                          {}
func (NoopMetricsCollector) RecordCacheMiss()                         {}
func (NoopMetricsCollector) RecordEviction()                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PageLoads      atomic.Int64
	PageLoadErrors atomic.Int64
	LoadedIndices  atomic.Int64
	LoadTotalNanos atomic.Int64
	CacheHits      atomic.Int64
	CacheMisses    atomic.Int64
	Evictions      atomic.Int64
}

// RecordPageLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPageLoad(size int, duration time.Duration, err error) {
	b.PageLoads.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PageLoadErrors.Add(1)
		return
	}
	b.LoadedIndices.Add(int64(size))
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() { b.CacheHits.Add(1) }

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() { b.CacheMisses.Add(1) }

// RecordEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEviction() { b.Evictions.Add(1) }

// Snapshot returns a copy of current metrics.
func (b *BasicMetricsCollector) Snapshot() BasicMetricsStats {
	return BasicMetricsStats{
		PageLoads:      b.PageLoads.Load(),
		PageLoadErrors: b.PageLoadErrors.Load(),
		LoadedIndices:  b.LoadedIndices.Load(),
		LoadAvgNanos:   b.avgLoadNanos(),
		CacheHits:      b.CacheHits.Load(),
		CacheMisses:    b.CacheMisses.Load(),
		Evictions:      b.Evictions.Load(),
	}
}

func (b *BasicMetricsCollector) avgLoadNanos() int64 {
	count := b.PageLoads.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PageLoads      int64
	PageLoadErrors int64
	LoadedIndices  int64
	LoadAvgNanos   int64
	CacheHits      int64
	CacheMisses    int64
	Evictions      int64
}
