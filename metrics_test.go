package icarus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	assert.Zero(t, m.Snapshot().LoadAvgNanos)

	m.RecordPageLoad(100, 10*time.Nanosecond, nil)
	m.RecordPageLoad(50, 30*time.Nanosecond, nil)
	m.RecordPageLoad(0, 20*time.Nanosecond, errors.New("boom"))
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCacheMiss()
	m.RecordEviction()

	assert.Equal(t, BasicMetricsStats{
		PageLoads:      3,
		PageLoadErrors: 1,
		LoadedIndices:  150,
		LoadAvgNanos:   20,
		CacheHits:      1,
		CacheMisses:    2,
		Evictions:      1,
	}, m.Snapshot())
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordPageLoad(1, time.Second, nil)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordEviction()
}

func TestApplyOptions(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, int64(DefaultCacheBytes), o.cacheBytes)
	assert.Equal(t, DefaultPrefetchWorkers, o.prefetchWorkers)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)

	o = applyOptions([]Option{
		nil,
		WithCacheBytes(-1),
		WithMemoryLimit(1 << 20),
		WithPrefetchWorkers(0),
		WithLoadRate(50),
		WithMetricsCollector(nil),
		WithLogger(nil),
	})
	assert.Equal(t, int64(-1), o.cacheBytes)
	assert.Equal(t, int64(1<<20), o.memoryLimit)
	assert.Equal(t, 1, o.prefetchWorkers)
	assert.Equal(t, 50, o.loadRate)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
}
