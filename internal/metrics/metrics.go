package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Store
	StoreKeys            MetricKey = "store_keys"
	StoreWritesTotal     MetricKey = "store_writes_total"
	StoreOverwritesTotal MetricKey = "store_overwrites_total"
	StoreReadsTotal      MetricKey = "store_reads_total"
	StoreMissesTotal     MetricKey = "store_misses_total"
	StoreExpiredTotal    MetricKey = "store_expired_total"
	StoreEvictionsTotal  MetricKey = "store_evictions_total"

	// Sweeper
	SweepRunsTotal        MetricKey = "sweep_runs_total"
	SweepKeysRemovedTotal MetricKey = "sweep_keys_removed_total"
)

// Registry stores all metrics.
//
// A nil *Registry is valid: every update is discarded and Snapshot
// returns an empty map. This lets the store run without metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	if r == nil {
		return
	}

	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	val := delta
	r.counters[key] = &val
}

// Get returns the current value of a single metric, 0 if never set.
func (r *Registry) Get(key MetricKey) int64 {
	if r == nil {
		return 0
	}

	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}

// Snapshot returns a copy of every counter, safe to mutate.
func (r *Registry) Snapshot() map[string]int64 {
	if r == nil {
		return map[string]int64{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for key, ptr := range r.counters {
		out[string(key)] = atomic.LoadInt64(ptr)
	}
	return out
}
