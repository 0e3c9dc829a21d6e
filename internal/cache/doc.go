// Package cache provides a byte-bounded LRU cache for materialized pages.
//
// Eviction order comes from simplelru; this package adds a byte budget on
// top of it, measured by a caller-supplied size function, and mirrors every
// cached byte into an optional resource.Controller so several caches can
// share one memory limit.
package cache
