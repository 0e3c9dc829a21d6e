package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for materialized pages.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxLoadWorkers is the maximum number of concurrent background page
	// loads. If 0, defaults to 1.
	MaxLoadWorkers int64

	// LoadsPerSecond limits the rate of background page loads.
	// If 0, unlimited.
	LoadsPerSecond int
}

// Controller manages shared resources of a pager (memory, load slots, load
// rate).
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	loadSem *semaphore.Weighted

	loadLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxLoadWorkers <= 0 {
		cfg.MaxLoadWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxLoadWorkers),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.LoadsPerSecond > 0 {
		c.loadLimiter = rate.NewLimiter(rate.Limit(cfg.LoadsPerSecond), cfg.LoadsPerSecond)
	}
	return c
}

// AcquireMemory reserves bytes without blocking.
// Returns ErrMemoryLimitExceeded if the limit would be exceeded.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// MaxLoadWorkers returns the number of load slots.
func (c *Controller) MaxLoadWorkers() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxLoadWorkers)
}

// AcquireLoad waits for a free load slot and then for the load rate to
// admit one more load. The slot must be returned with ReleaseLoad.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.loadSem.Acquire(ctx, 1); err != nil {
		return err
	}
	if c.loadLimiter != nil {
		if err := c.loadLimiter.Wait(ctx); err != nil {
			c.loadSem.Release(1)
			return err
		}
	}
	return nil
}

// ReleaseLoad releases a load slot.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.loadSem.Release(1)
}
