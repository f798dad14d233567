package store

import "time"

// valueTable holds the authoritative current value per key.
// It has no lock of its own: the owning Store guards it.
type valueTable map[string]string

func newValueTable(capacity int) valueTable {
	return make(valueTable, capacity)
}

// write inserts or replaces the value for key and reports whether a
// value was already present.
func (t valueTable) write(key, value string) bool {
	_, existed := t[key]
	t[key] = value
	return existed
}

// read looks up key without any notion of expiry.
func (t valueTable) read(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

func (t valueTable) remove(key string) bool {
	if _, ok := t[key]; !ok {
		return false
	}
	delete(t, key)
	return true
}

func (t valueTable) len() int {
	return len(t)
}

// expiryIndex maps a key to the instant after which it is expired.
// A key missing from the index never expires.
//
// Instants are produced by time.Now().Add(ttl), so they carry a
// monotonic clock reading and comparisons ignore wall-clock jumps.
type expiryIndex map[string]time.Time

func newExpiryIndex(capacity int) expiryIndex {
	return make(expiryIndex, capacity)
}

func (x expiryIndex) set(key string, at time.Time) {
	x[key] = at
}

func (x expiryIndex) peek(key string) (time.Time, bool) {
	at, ok := x[key]
	return at, ok
}

func (x expiryIndex) remove(key string) {
	delete(x, key)
}

// lapsed returns every key whose instant is at or before now.
func (x expiryIndex) lapsed(now time.Time) []string {
	var keys []string
	for key, at := range x {
		if isLapsed(at, now) {
			keys = append(keys, key)
		}
	}
	return keys
}

// isLapsed is the single "is this key dead" predicate shared by reads,
// writes and the sweeper: a key is expired once now >= its instant.
func isLapsed(at, now time.Time) bool {
	return !now.Before(at)
}
