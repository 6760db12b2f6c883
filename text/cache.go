package text

import (
	"container/list"
	"sync"
)

// Cache is a least-recently-used map holding at most Cap entries.
// Entries leaving the cache are passed to the OnEvict callback so the owner
// can release what they hold, such as glyph textures or font faces.
//
// Cache is safe for concurrent use. The zero value is not usable.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	limit   int
	order   *list.List // front is most recent
	items   map[K]*list.Element
	onEvict func(K, V)
}

type item[K comparable, V any] struct {
	key K
	val V
}

// NewCache returns a cache holding at most limit entries.
// A limit of zero or less disables eviction.
func NewCache[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		limit: limit,
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

// OnEvict sets the release callback. It runs for entries dropped by the
// size limit, Remove, RemoveFunc, Clear and for values replaced by Set.
// fn is called with the lock held and must not use the cache.
func (c *Cache[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Cap returns the entry limit.
func (c *Cache[K, V]) Cap() int { return c.limit }

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*item[K, V]).val, true
	}
	var zero V
	return zero, false
}

// Set stores value under key, releasing any previous value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		it := el.Value.(*item[K, V])
		c.release(it)
		it.val = value
		c.order.MoveToFront(el)
		return
	}
	c.insert(key, value)
}

// GetOrCreate returns the value for key, calling create on a miss.
// create runs under the lock, so concurrent misses build one value.
// A failed create stores nothing.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*item[K, V]).val, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.insert(key, v)
	return v, nil
}

// Remove drops key and reports whether it was cached.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// RemoveFunc drops every entry whose key satisfies match and returns how
// many were dropped.
func (c *Cache[K, V]) RemoveFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if match(el.Value.(*item[K, V]).key) {
			c.drop(el)
			n++
		}
		el = next
	}
	return n
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.order.Front(); el != nil; el = el.Next() {
		c.release(el.Value.(*item[K, V]))
	}
	c.order.Init()
	clear(c.items)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache[K, V]) insert(key K, value V) {
	c.items[key] = c.order.PushFront(&item[K, V]{key: key, val: value})
	for c.limit > 0 && c.order.Len() > c.limit {
		c.drop(c.order.Back())
	}
}

func (c *Cache[K, V]) drop(el *list.Element) {
	it := c.order.Remove(el).(*item[K, V])
	delete(c.items, it.key)
	c.release(it)
}

func (c *Cache[K, V]) release(it *item[K, V]) {
	if c.onEvict != nil {
		c.onEvict(it.key, it.val)
	}
}
