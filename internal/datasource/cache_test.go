package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache(4, time.Minute)
	assert.Nil(t, c.Get("/crimedata"))

	c.Put("/crimedata", []byte("[]"))
	assert.Equal(t, []byte("[]"), c.Get("/crimedata"))

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2, time.Minute)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Get("a") // b is now least recently used
	c.Put("c", []byte("3"))

	assert.NotNil(t, c.Get("a"))
	assert.Nil(t, c.Get("b"))
	assert.NotNil(t, c.Get("c"))
	assert.Equal(t, 2, c.Stats().Entries)
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(2, time.Minute)
	c.now = func() time.Time { return now }

	c.Put("a", []byte("1"))
	now = now.Add(30 * time.Second)
	assert.NotNil(t, c.Get("a"))

	now = now.Add(31 * time.Second)
	assert.Nil(t, c.Get("a"))
	assert.Zero(t, c.Stats().Entries)
}

func TestCache_UpdateInPlace(t *testing.T) {
	c := NewCache(2, 0)
	c.Put("a", []byte("1"))
	c.Put("a", []byte("2"))
	assert.Equal(t, []byte("2"), c.Get("a"))
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache(2, time.Minute)
	c.Put("a", []byte("1"))
	c.Invalidate("a")
	c.Invalidate("missing")
	assert.Nil(t, c.Get("a"))
}

func TestCache_MinimumCapacity(t *testing.T) {
	c := NewCache(0, time.Minute)
	c.Put("a", []byte("1"))
	assert.Equal(t, 1, c.Stats().MaxEntries)
	assert.NotNil(t, c.Get("a"))
}
