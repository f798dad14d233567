package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_IncAndAdd(t *testing.T) {
	r := NewRegistry()

	r.Inc(StoreWritesTotal)
	r.Add(StoreWritesTotal, 2)

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap[string(StoreWritesTotal)])
	assert.Equal(t, int64(3), r.Get(StoreWritesTotal))
}

func TestRegistry_NegativeDeltaOnFirstAdd(t *testing.T) {
	r := NewRegistry()

	r.Add(StoreKeys, -1)

	assert.Equal(t, int64(-1), r.Get(StoreKeys))
}

func TestRegistry_MultipleMetrics(t *testing.T) {
	r := NewRegistry()

	r.Inc(StoreReadsTotal)
	r.Inc(StoreMissesTotal)
	r.Add(SweepKeysRemovedTotal, 5)

	snap := r.Snapshot()

	assert.Equal(t, int64(1), snap[string(StoreReadsTotal)])
	assert.Equal(t, int64(1), snap[string(StoreMissesTotal)])
	assert.Equal(t, int64(5), snap[string(SweepKeysRemovedTotal)])
}

func TestRegistry_ConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	wg := sync.WaitGroup{}

	workers := 50
	increments := 100

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				r.Inc(StoreWritesTotal)
			}
		}()
	}

	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, int64(workers*increments), snap[string(StoreWritesTotal)])
}

func TestRegistry_SnapshotIsDeepCopy(t *testing.T) {
	r := NewRegistry()

	r.Inc(StoreKeys)
	snap1 := r.Snapshot()

	// Mutate snapshot
	snap1[string(StoreKeys)] = 999

	snap2 := r.Snapshot()

	assert.Equal(t, int64(1), snap2[string(StoreKeys)],
		"internal state should not be affected by snapshot mutation")
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.Inc(StoreWritesTotal)
		r.Add(StoreKeys, 3)
	})
	assert.Equal(t, int64(0), r.Get(StoreKeys))
	assert.Empty(t, r.Snapshot())
}

func TestRegistry_UnknownMetricHandledGracefully(t *testing.T) {
	r := NewRegistry()

	r.Inc("unknown_metric")

	snap := r.Snapshot()
	assert.Equal(t, int64(1), snap["unknown_metric"])
}
