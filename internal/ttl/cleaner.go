package ttl

import (
	"context"
	"time"

	"ttlstore/internal/logs"
	"ttlstore/internal/metrics"
)

// Store defines the minimal contract required by the TTL cleaner.
// It must remove lapsed keys through the same path a lazy read uses.
type Store interface {
	RemoveExpired() int
}

// Cleaner periodically removes expired keys from the store so that keys
// written once and never read again do not hold memory forever.
type Cleaner struct {
	store    Store
	interval time.Duration
	logger   *logs.Logger
	metrics  *metrics.Registry
}

// NewCleaner creates a new instance of TTL Cleaner.
// An interval <= 0 disables sweeping; lazy expiration on read still works.
func NewCleaner(
	store Store,
	interval time.Duration,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Cleaner {
	return &Cleaner{
		store:    store,
		interval: interval,
		logger:   logger.Named("ttl"),
		metrics:  metricsRegistry,
	}
}

// Enabled reports whether Start will sweep at all.
func (c *Cleaner) Enabled() bool {
	return c.interval > 0
}

// Start runs the cleanup loop until the context is cancelled.
// It blocks and should typically be run in a separate goroutine.
func (c *Cleaner) Start(ctx context.Context) {
	if !c.Enabled() {
		c.logger.Debug("ttl cleaner disabled")
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debugf("ttl cleaner started, interval %s", c.interval)
	for {
		select {
		case <-ticker.C:
			c.runOnce()
		case <-ctx.Done():
			c.logger.Debug("ttl cleaner stopped")
			return
		}
	}
}

// runOnce performs a single cleanup cycle.
func (c *Cleaner) runOnce() int {
	removed := c.store.RemoveExpired()

	c.metrics.Inc(metrics.SweepRunsTotal)
	if removed > 0 {
		c.metrics.Add(metrics.SweepKeysRemovedTotal, int64(removed))
		c.logger.Infof("ttl cleaner removed %d expired keys", removed)
	}
	return removed
}
