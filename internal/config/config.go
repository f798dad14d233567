package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"ttlstore/internal/logs"
)

// ErrInvalidConfig is wrapped by every validation and parse failure.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables read by FromEnv.
const (
	EnvCapacity      = "TTLSTORE_CAPACITY"
	EnvSweepInterval = "TTLSTORE_SWEEP_INTERVAL"
	EnvLogBuffer     = "TTLSTORE_LOG_BUFFER"
	EnvLogLevel      = "TTLSTORE_LOG_LEVEL"
)

// StorePolicy sizes the store.
type StorePolicy struct {
	Capacity int // expected key count, pre-sizing hint only
}

// SweepPolicy controls the background expiry sweeper.
type SweepPolicy struct {
	Interval time.Duration // 0 disables sweeping
}

// LogPolicy controls the in-memory logger.
type LogPolicy struct {
	BufferSize int
	Level      logs.Level
}

type Config struct {
	Store StorePolicy
	Sweep SweepPolicy
	Log   LogPolicy
}

func Default() Config {
	return Config{
		Store: StorePolicy{
			Capacity: 1024,
		},
		Sweep: SweepPolicy{
			Interval: 5 * time.Second,
		},
		Log: LogPolicy{
			BufferSize: 1000,
			Level:      logs.INFO,
		},
	}
}

// FromEnv starts from Default and overrides every field whose variable
// is set. lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvCapacity, v, err)
		}
		cfg.Store.Capacity = n
	}

	if v, ok := lookup(EnvSweepInterval); ok {
		d, err := parseInterval(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSweepInterval, v, err)
		}
		cfg.Sweep.Interval = d
	}

	if v, ok := lookup(EnvLogBuffer); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvLogBuffer, v, err)
		}
		cfg.Log.BufferSize = n
	}

	if v, ok := lookup(EnvLogLevel); ok {
		lvl, err := logs.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvLogLevel, err)
		}
		cfg.Log.Level = lvl
	}

	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.Store.Capacity < 0 {
		return fmt.Errorf("%w: store capacity must be >= 0, got %d", ErrInvalidConfig, c.Store.Capacity)
	}
	if c.Sweep.Interval < 0 {
		return fmt.Errorf("%w: sweep interval must be >= 0, got %s", ErrInvalidConfig, c.Sweep.Interval)
	}
	if c.Log.BufferSize < 1 {
		return fmt.Errorf("%w: log buffer size must be >= 1, got %d", ErrInvalidConfig, c.Log.BufferSize)
	}
	if _, err := logs.ParseLevel(string(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// parseInterval accepts a Go duration ("250ms", "5s") or a bare number
// of seconds ("0" disables the sweeper).
func parseInterval(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
