package cache

import (
	"sync"
	"time"
)

type basicCacheEntry[T any] struct {
	data      T
	valid     bool
	expiresAt time.Time
}

// basicCache is a mutex-protected map cache used in tests. Expiry is
// evaluated lazily on access against an injectable clock.
type basicCache[T any] struct {
	cache     map[string]basicCacheEntry[T]
	cacheLock sync.Mutex
	nowFunc   func() time.Time
}

func (c *basicCache[T]) getOrClaim(key string) hitResult[T] {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	oldValue, ok := c.cache[key]
	if ok && oldValue.valid && !oldValue.expiresAt.IsZero() && !c.nowFunc().Before(oldValue.expiresAt) {
		ok = false
	}
	if ok {
		return hitResult[T]{
			data:    oldValue.data,
			valid:   oldValue.valid,
			claimed: false,
		}
	}

	c.cache[key] = basicCacheEntry[T]{valid: false}
	return hitResult[T]{
		valid:   false,
		claimed: true,
	}
}

func (c *basicCache[T]) set(key string, data T, ttl time.Duration) {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	c.cache[key] = basicCacheEntry[T]{data: data, valid: true, expiresAt: c.nowFunc().Add(ttl)}
}

func (c *basicCache[T]) delete(key string) {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	delete(c.cache, key)
}

func (c *basicCache[T]) deleteAll() {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	clear(c.cache)
}

func (c *basicCache[T]) wait() {
}

func NewBasicCache[T any](nowFunc func() time.Time) *basicCache[T] {
	return &basicCache[T]{
		cache:   make(map[string]basicCacheEntry[T]),
		nowFunc: nowFunc,
	}
}
