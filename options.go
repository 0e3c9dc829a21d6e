package icarus

import (
	"log/slog"
)

const (
	// DefaultCacheBytes is the page cache budget used when none is given.
	DefaultCacheBytes = 64 << 20

	// DefaultPrefetchWorkers is the number of concurrent loads per Prefetch.
	DefaultPrefetchWorkers = 4
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	cacheBytes       int64
	memoryLimit      int64
	prefetchWorkers  int
	loadRate         int
}

// Option configures a Pager.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring page
// loads. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &icarus.BasicMetricsCollector{}
//	p, _ := icarus.NewPager(buf, icarus.WithMetricsCollector(metrics))
//	// ... use p ...
//	stats := metrics.Snapshot()
//	fmt.Printf("Loads: %d, Avg latency: %dns\n", stats.PageLoads, stats.LoadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for page loads.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := icarus.NewJSONLogger(slog.LevelInfo)
//	p, _ := icarus.NewPager(buf, icarus.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCacheBytes sets the byte budget of the page cache. A page occupies
// its size times the width of its value type. Zero or less disables
// caching; every Page call then materializes the page again.
func WithCacheBytes(n int64) Option {
	return func(o *options) {
		o.cacheBytes = n
	}
}

// WithMemoryLimit caps the bytes held by cached pages independently of
// the cache budget. Pages that do not fit are served but not cached.
// Zero means unlimited.
func WithMemoryLimit(n int64) Option {
	return func(o *options) {
		o.memoryLimit = n
	}
}

// WithPrefetchWorkers sets the number of pages loaded concurrently by
// Prefetch. Values below one are raised to one.
func WithPrefetchWorkers(n int) Option {
	return func(o *options) {
		o.prefetchWorkers = max(n, 1)
	}
}

// WithLoadRate limits Prefetch to perSecond page loads per second.
// Zero means unlimited. Page is never rate limited.
func WithLoadRate(perSecond int) Option {
	return func(o *options) {
		o.loadRate = perSecond
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		cacheBytes:       DefaultCacheBytes,
		prefetchWorkers:  DefaultPrefetchWorkers,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
