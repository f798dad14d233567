package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueTable(t *testing.T) {
	table := newValueTable(4)

	assert.False(t, table.write("k", "v1"))
	assert.True(t, table.write("k", "v2"))

	v, ok := table.read("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, table.len())

	assert.True(t, table.remove("k"))
	assert.False(t, table.remove("k"))

	_, ok = table.read("k")
	assert.False(t, ok)
}

func TestExpiryIndex(t *testing.T) {
	index := newExpiryIndex(0)
	now := time.Now()

	_, ok := index.peek("k")
	assert.False(t, ok)

	index.set("k", now.Add(time.Hour))
	index.set("k", now.Add(time.Minute))

	at, ok := index.peek("k")
	assert.True(t, ok)
	assert.Equal(t, now.Add(time.Minute), at)

	index.set("past", now.Add(-time.Second))
	index.set("exact", now)

	assert.ElementsMatch(t, []string{"past", "exact"}, index.lapsed(now))

	index.remove("past")
	index.remove("missing")
	assert.Equal(t, []string{"exact"}, index.lapsed(now))
}

func TestIsLapsed(t *testing.T) {
	now := time.Now()

	assert.True(t, isLapsed(now, now), "expiry instant itself is expired")
	assert.True(t, isLapsed(now.Add(-time.Nanosecond), now))
	assert.False(t, isLapsed(now.Add(time.Nanosecond), now))
}
