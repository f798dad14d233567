package store

import (
	"math"
	"sync"
	"time"

	"ttlstore/internal/metrics"
)

// maxTTLSeconds is the largest whole-second TTL representable as a
// time.Duration. Longer TTLs are clamped to it.
const maxTTLSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Config controls store construction.
//
// Capacity pre-sizes both tables for the expected number of keys. It is
// a performance hint only; values <= 0 mean "no pre-sizing".
type Config struct {
	Capacity int
}

// Store is a concurrency-safe in-memory key–value store with lazy TTL
// expiration.
//
// Design principles:
//   - One RWMutex guards both the value table and the expiry index
//   - Reads take the read lock and only upgrade to remove a lapsed key
//   - A plain Write clears any TTL left on the key
//   - Evict forgets the key in both tables
//
// Expiry instants come from time.Now, which carries a monotonic reading.
// The clock is sampled inside the critical section, so a read ordered
// after a write never sees an instant earlier than the writer's.
type Store struct {
	mu      sync.RWMutex
	values  valueTable
	expiry  expiryIndex
	metrics *metrics.Registry
}

// NewStore initializes and returns a new Store. A nil registry disables
// metrics.
func NewStore(cfg Config, metricsRegistry *metrics.Registry) *Store {
	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		values:  newValueTable(capacity),
		expiry:  newExpiryIndex(capacity),
		metrics: metricsRegistry,
	}
}

// Write inserts or replaces key without a TTL.
//
// Any expiry recorded by an earlier TTL write is cleared, so the new
// value lives until evicted. Returns true if a live value was replaced.
func (s *Store) Write(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed := s.writeLocked(key, value, time.Now())
	s.expiry.remove(key)
	return existed
}

// WriteWithTTL inserts or replaces key so that it expires ttlSeconds
// from now. Returns true if a live value was replaced.
func (s *Store) WriteWithTTL(key, value string, ttlSeconds uint64) bool {
	if ttlSeconds > maxTTLSeconds {
		return s.WriteFor(key, value, time.Duration(math.MaxInt64))
	}
	return s.WriteFor(key, value, time.Duration(ttlSeconds)*time.Second)
}

// WriteFor is WriteWithTTL with a time.Duration.
//
// A ttl <= 0 produces an expiry instant of now: the key is written but
// already expired for every subsequent read.
func (s *Store) WriteFor(key, value string, ttl time.Duration) bool {
	if ttl < 0 {
		ttl = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	existed := s.writeLocked(key, value, now)
	s.expiry.set(key, now.Add(ttl))
	return existed
}

// Read returns the value for key.
//
// Behavior:
//   - Returns (value, true) if the key exists and is not expired
//   - If the key is expired, it is removed from both tables and
//     reported as missing
func (s *Store) Read(key string) (string, bool) {
	s.metrics.Inc(metrics.StoreReadsTotal)

	s.mu.RLock()
	now := time.Now()
	if at, ok := s.expiry.peek(key); ok && isLapsed(at, now) {
		s.mu.RUnlock()
		s.expire(key, now)
		s.metrics.Inc(metrics.StoreMissesTotal)
		return "", false
	}
	value, ok := s.values.read(key)
	s.mu.RUnlock()

	if !ok {
		s.metrics.Inc(metrics.StoreMissesTotal)
	}
	return value, ok
}

// Evict removes key from the store. Evicting a missing key is a no-op.
func (s *Store) Evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(key) {
		s.metrics.Inc(metrics.StoreEvictionsTotal)
	}
}

// TTL reports the remaining lifetime of key. The boolean is false when
// the key is missing, already expired, or has no TTL.
func (s *Store) TTL(key string) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	at, ok := s.expiry.peek(key)
	if !ok || isLapsed(at, now) {
		return 0, false
	}
	return at.Sub(now), true
}

// Len returns the number of stored entries.
//
// Note: Len includes entries that have expired but have not been read
// or swept yet.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.len()
}

// RemoveExpired removes every lapsed key from the store and returns how
// many were removed.
//
// This is O(n) over the keys that carry a TTL and backs the background
// sweeper.
func (s *Store) RemoveExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, key := range s.expiry.lapsed(now) {
		if s.removeLocked(key) {
			removed++
		}
	}

	if removed > 0 {
		s.metrics.Add(metrics.StoreExpiredTotal, int64(removed))
	}
	return removed
}

// expire is the write-locked half of Read's expiry path. The record is
// re-checked because a writer may have refreshed the key between locks.
func (s *Store) expire(key string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reclaimLocked(key, now) {
		s.metrics.Inc(metrics.StoreExpiredTotal)
	}
}

// writeLocked stores value and reports whether a live value was replaced.
// A lapsed entry still sitting in the tables counts as absent.
func (s *Store) writeLocked(key, value string, now time.Time) bool {
	if s.reclaimLocked(key, now) {
		s.metrics.Inc(metrics.StoreExpiredTotal)
	}

	existed := s.values.write(key, value)
	s.metrics.Inc(metrics.StoreWritesTotal)
	if existed {
		s.metrics.Inc(metrics.StoreOverwritesTotal)
	} else {
		s.metrics.Inc(metrics.StoreKeys)
	}
	return existed
}

// reclaimLocked removes key if its expiry has lapsed at now.
func (s *Store) reclaimLocked(key string, now time.Time) bool {
	at, ok := s.expiry.peek(key)
	if !ok || !isLapsed(at, now) {
		return false
	}
	return s.removeLocked(key)
}

// removeLocked deletes key from both tables and reports whether a value
// was present.
func (s *Store) removeLocked(key string) bool {
	s.expiry.remove(key)
	if !s.values.remove(key) {
		return false
	}
	s.metrics.Add(metrics.StoreKeys, -1)
	return true
}
