package cache

import "time"

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache is a keyed cache with per-entry time-to-live. Entries are claimed
// before they are produced so that only one refresh per key is in flight at a
// time; other callers wait for the claimed entry to become valid.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T, ttl time.Duration)
	delete(key string)
	deleteAll()
	wait()
}
