package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type ttlCacheEntry[T any] struct {
	data  T
	valid bool
}

type ttlCache[T any] struct {
	cache *ttlcache.Cache[string, ttlCacheEntry[T]]
}

func (c *ttlCache[T]) getOrClaim(key string) hitResult[T] {
	// Claimed entries never expire on their own; the claimer either sets a
	// real entry or deletes the claim
	invalid := ttlCacheEntry[T]{valid: false}
	item, existed := c.cache.GetOrSet(key, invalid, ttlcache.WithTTL[string, ttlCacheEntry[T]](ttlcache.NoTTL))

	return hitResult[T]{
		data:    item.Value().data,
		valid:   item.Value().valid,
		claimed: !existed,
	}
}

func (c *ttlCache[T]) set(key string, data T, ttl time.Duration) {
	c.cache.Set(key, ttlCacheEntry[T]{data: data, valid: true}, ttl)
}

func (c *ttlCache[T]) delete(key string) {
	c.cache.Delete(key)
}

func (c *ttlCache[T]) deleteAll() {
	c.cache.DeleteAll()
}

func (c *ttlCache[T]) wait() {
	time.Sleep(50 * time.Millisecond)
}

func NewTTLCache[T any]() Cache[T] {
	ttlCacheImpl := ttlcache.New[string, ttlCacheEntry[T]](
		ttlcache.WithDisableTouchOnHit[string, ttlCacheEntry[T]](),
	)
	go ttlCacheImpl.Start()
	return &ttlCache[T]{cache: ttlCacheImpl}
}
