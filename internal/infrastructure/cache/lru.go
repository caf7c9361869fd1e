// Package cache provides a bounded LRU cache whose entries expire.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a thread-safe LRU cache with a fixed capacity and an optional
// time to live. Both Get and Set mark an entry as recently used; an
// expired entry is dropped on the Get that finds it.
type LRU[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(K, V)

	mu    sync.Mutex
	items map[K]*list.Element
	order *list.List // front = most recent
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// NewLRU creates a cache holding at most capacity entries. A
// non-positive capacity is treated as 1; a non-positive ttl never expires.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// WithClock replaces the time source. Used by tests.
func (c *LRU[K, V]) WithClock(now func() time.Time) *LRU[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// OnEvict registers fn to run for every entry the cache drops on its own:
// capacity evictions, expiry and Clear. Remove does not call it. fn runs
// without the cache lock held.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) *LRU[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
	return c
}

func (c *LRU[K, V]) notify(evicted []*entry[K, V]) {
	c.mu.Lock()
	fn := c.onEvict
	c.mu.Unlock()
	if fn == nil {
		return
	}
	for _, e := range evicted {
		fn(e.key, e.value)
	}
}

func (c *LRU[K, V]) expired(e *entry[K, V]) bool {
	return c.ttl > 0 && !c.now().Before(e.expires)
}

// Get returns the live value stored for key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	var zero V
	elem, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	e := elem.Value.(*entry[K, V])
	if c.expired(e) {
		c.order.Remove(elem)
		delete(c.items, key)
		c.mu.Unlock()
		c.notify([]*entry[K, V]{e})
		return zero, false
	}
	c.order.MoveToFront(elem)
	c.mu.Unlock()
	return e.value, true
}

// Set stores value for key, evicting the least recently used entry when
// the cache is full. Setting an existing key renews its expiry.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	expires := c.now().Add(c.ttl)
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.expires = expires
		c.mu.Unlock()
		return
	}

	var evicted []*entry[K, V]
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			e := oldest.Value.(*entry[K, V])
			c.order.Remove(oldest)
			delete(c.items, e.key)
			evicted = append(evicted, e)
		}
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expires: expires})
	c.mu.Unlock()
	c.notify(evicted)
}

// Remove deletes key and returns the value it held, expired or not.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	return elem.Value.(*entry[K, V]).value, true
}

// Purge drops every expired entry and returns how many were removed.
func (c *LRU[K, V]) Purge() int {
	c.mu.Lock()
	var evicted []*entry[K, V]
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if e := elem.Value.(*entry[K, V]); c.expired(e) {
			c.order.Remove(elem)
			delete(c.items, e.key)
			evicted = append(evicted, e)
		}
		elem = prev
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		evicted = append(evicted, elem.Value.(*entry[K, V]))
	}
	c.items = make(map[K]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.notify(evicted)
}

// Len returns the number of stored entries, expired ones included.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
