package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests control entry expiry deterministically.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newTestCache(maxSize int, ttl time.Duration) (*ContentCache, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	c := New(maxSize, ttl)
	c.now = clock.now
	return c, clock
}

func TestCache_GetSet(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("a", []byte("alpha"))
	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, []byte("alpha"), got)

	assert.Equal(t, int64(1), c.Hits())
	assert.Equal(t, int64(1), c.Misses())
}

func TestCache_TTLExpiry(t *testing.T) {
	c, clock := newTestCache(4, time.Minute)
	c.Set("a", []byte("alpha"))

	clock.advance(59 * time.Second)
	_, found := c.Get("a")
	assert.True(t, found)

	clock.advance(2 * time.Second)
	_, found = c.Get("a")
	assert.False(t, found, "entry should expire after TTL")
	assert.Equal(t, 0, c.Len())
}

func TestCache_ReadDoesNotExtendTTL(t *testing.T) {
	c, clock := newTestCache(4, time.Minute)
	c.Set("a", []byte("alpha"))

	// Repeated reads right before expiry must not refresh the deadline.
	clock.advance(50 * time.Second)
	_, found := c.Get("a")
	require.True(t, found)

	clock.advance(11 * time.Second)
	_, found = c.Get("a")
	assert.False(t, found)
}

func TestCache_EvictsNearestExpiry(t *testing.T) {
	c, clock := newTestCache(3, time.Minute)

	c.Set("first", []byte("1"))
	clock.advance(time.Second)
	c.Set("second", []byte("2"))
	clock.advance(time.Second)
	c.Set("third", []byte("3"))
	clock.advance(time.Second)

	// Inserting maxSize+1-th distinct key evicts exactly one entry: the
	// one with the earliest expiry ("first").
	c.Set("fourth", []byte("4"))

	assert.Equal(t, int64(1), c.Evictions())
	assert.Equal(t, 3, c.Len())
	_, found := c.Get("first")
	assert.False(t, found)
	for _, key := range []string{"second", "third", "fourth"} {
		_, found := c.Get(key)
		assert.True(t, found, "key %s should survive eviction", key)
	}
}

func TestCache_UpdateExistingDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Set("a", []byte("updated"))
	assert.Equal(t, int64(0), c.Evictions())

	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, []byte("updated"), got)
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprintf("key%d", i), []byte("v"))
	}

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, found := c.Get("key0")
	assert.False(t, found)
}

func TestFileReader_ReadThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.md")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	c, _ := newTestCache(4, time.Minute)
	reader := NewFileReader(c)

	got, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Within the TTL the stale content is served from cache.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	got, err = reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestFileReader_MissingFile(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	reader := NewFileReader(c)

	_, err := reader.ReadFile(filepath.Join(t.TempDir(), "absent.md"))
	assert.Error(t, err)
}
