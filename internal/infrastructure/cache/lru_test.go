package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2, 0)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a")
	require.True(t, ok)
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b was least recently used")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewLRU[string, string](4, time.Minute).WithClock(clock.Now)

	c.Set("https://img/a.png", "png")
	clock.Advance(30 * time.Second)
	v, ok := c.Get("https://img/a.png")
	require.True(t, ok)
	assert.Equal(t, "png", v)

	clock.Advance(31 * time.Second)
	_, ok = c.Get("https://img/a.png")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRU_SetRenewsExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewLRU[string, int](4, time.Minute).WithClock(clock.Now)

	c.Set("k", 1)
	clock.Advance(50 * time.Second)
	c.Set("k", 2)
	clock.Advance(50 * time.Second)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRU_Purge(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewLRU[int, int](10, time.Minute).WithClock(clock.Now)

	c.Set(1, 1)
	c.Set(2, 2)
	clock.Advance(2 * time.Minute)
	c.Set(3, 3)

	assert.Equal(t, 2, c.Purge())
	assert.Equal(t, 1, c.Len())
	v, ok := c.Remove(3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = c.Remove(42)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRU_OnEvict(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	var evicted []string
	c := NewLRU[string, int](2, time.Minute).WithClock(clock.Now).OnEvict(func(k string, _ int) {
		evicted = append(evicted, k)
	})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	assert.Equal(t, []string{"a"}, evicted)

	_, _ = c.Remove("b")
	assert.Equal(t, []string{"a"}, evicted, "Remove is not an eviction")

	clock.Advance(2 * time.Minute)
	_, ok := c.Get("c")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, evicted)

	c.Set("d", 4)
	c.Set("e", 5)
	c.Clear()
	assert.Equal(t, []string{"a", "c", "d", "e"}, evicted)
	assert.Zero(t, c.Len())
}

func TestLRU_ZeroCapacity(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[string, int](64, time.Hour)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g*200 + i) % 100)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
