// Package resource bounds what a pager may spend on materialized pages.
//
// A Controller governs three resources:
//
//   - Memory: bytes held by cached pages (non-blocking, fail-fast)
//   - Load slots: concurrent background page loads (semaphore)
//   - Load rate: background page loads per second (token bucket)
//
// Memory reservations never block. AcquireMemory returns
// ErrMemoryLimitExceeded at once and the caller decides whether to evict,
// retry or skip:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	    MaxLoadWorkers:   4,
//	    LoadsPerSecond:   1000,
//	})
//
//	if err := rc.AcquireLoad(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseLoad()
//
// All methods are safe for concurrent use. A nil *Controller is valid and
// imposes no limits.
package resource
