package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
)

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Minute)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)

	// Non-positive TTL never stores.
	c.Set("b", 2, 0)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCachePurge(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Purge()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCatalogCacheInvalidate(t *testing.T) {
	c := NewCatalogCache()

	course := &coursedomain.Course{Title: "Welding Fundamentals"}
	c.SetCourse("welding-fundamentals", course)

	got, ok := c.GetCourse("welding-fundamentals")
	assert.True(t, ok)
	assert.Equal(t, course, got)

	// Nil values are ignored rather than cached.
	c.SetCourse("nil-course", nil)
	_, ok = c.GetCourse("nil-course")
	assert.False(t, ok)

	c.Invalidate()
	_, ok = c.GetCourse("welding-fundamentals")
	assert.False(t, ok)
}
