// Command ttlstore runs a short scripted session against an embedded
// expiring store and prints a health report. It shows how a process
// wires the store, its sweeper, logging and metrics together.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ttlstore/internal/config"
	"ttlstore/internal/health"
	"ttlstore/internal/logs"
	"ttlstore/internal/metrics"
	"ttlstore/internal/store"
	"ttlstore/internal/ttl"
)

func main() {
	// Cancelled on SIGINT/SIGTERM; owns the sweeper goroutine.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Logger
	logger := logs.NewLogger(cfg.Log.BufferSize, cfg.Log.Level)
	logger.SetOutput(os.Stderr)

	// Metrics
	metricsRegistry := metrics.NewRegistry()

	// Store
	kv := store.NewStore(store.Config{Capacity: cfg.Store.Capacity}, metricsRegistry)

	// TTL cleaner
	cleaner := ttl.NewCleaner(kv, cfg.Sweep.Interval, logger, metricsRegistry)
	go cleaner.Start(ctx)

	logger.Infof("store ready: capacity=%d sweep=%s", cfg.Store.Capacity, cfg.Sweep.Interval)

	if err := runSession(ctx, kv, logger.Named("session")); err != nil {
		logger.Warnf("session interrupted: %v", err)
	}

	report := health.NewAnalyzer(metricsRegistry, logger).Analyze()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Health  health.Report    `json:"health"`
		Metrics map[string]int64 `json:"metrics"`
	}{report, metricsRegistry.Snapshot()}); err != nil {
		log.Fatal(err)
	}
}

// runSession exercises every store operation once.
func runSession(ctx context.Context, kv *store.Store, logger *logs.Logger) error {
	existed := kv.Write("greeting", "hello")
	logger.Infof("write greeting: existed=%t", existed)

	existed = kv.Write("greeting", "hello again")
	logger.Infof("overwrite greeting: existed=%t", existed)

	if v, ok := kv.Read("greeting"); ok {
		logger.Infof("read greeting = %q", v)
	}

	kv.WriteWithTTL("session", "token-1", 1)
	if remaining, ok := kv.TTL("session"); ok {
		logger.Infof("session expires in %s", remaining.Round(time.Millisecond))
	}

	kv.WriteFor("flash", "gone-soon", 200*time.Millisecond)

	kv.Evict("greeting")
	if _, ok := kv.Read("greeting"); !ok {
		logger.Info("greeting evicted")
	}

	// Outlive both TTLs; the sweeper (if enabled) may reclaim them first.
	wait := time.NewTimer(1500 * time.Millisecond)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wait.C:
	}

	logger.Infof("entries held before reads: %d", kv.Len())
	for _, key := range []string{"session", "flash"} {
		if _, ok := kv.Read(key); !ok {
			logger.Infof("read %s: expired", key)
		}
	}
	logger.Infof("entries held after reads: %d", kv.Len())
	return nil
}
