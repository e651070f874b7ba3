package localcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New()

	assert.False(t, c.Has("name"))

	c.Set("name", "Arena")
	assert.True(t, c.Has("name"))

	v, ok := c.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Arena", v)
}

func TestCache_SetMany(t *testing.T) {
	c := New()
	c.SetMany(map[string]any{"a": 1, "b": 2})

	va, _ := c.Get("a")
	vb, _ := c.Get("b")
	assert.Equal(t, 1, va)
	assert.Equal(t, 2, vb)
}

func TestCache_ClearField(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear("a")

	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))
}

func TestCache_ClearAll(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear("")

	assert.Equal(t, 0, c.Len())
}

func TestCache_NeverExpires(t *testing.T) {
	c := New()
	c.Set("a", 1)

	// No TTL means repeated reads over time keep seeing the value; we
	// can't advance real time in a unit test, so just assert the entry
	// survives a second Set of an unrelated field.
	c.Set("b", 2)
	assert.True(t, c.Has("a"))
}
