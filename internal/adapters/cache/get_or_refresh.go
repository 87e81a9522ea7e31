package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hverdal/marketpulse/internal/logging"
)

// GetOrRefresh returns the cached data for key, refreshing it with the given
// TTL when the entry is missing or expired. Returns data, refreshed, error.
//
// Only one refresh per key is in flight at a time: the first caller claims
// the slot and runs refresh, concurrent callers wait for the claimed entry to
// become valid.
func GetOrRefresh[T any](ctx context.Context, cache Cache[T], key string, ttl time.Duration, refresh func() (T, error)) (T, bool, error) {
	// Clean up the cache if we claim an entry, but don't set it
	// This allows other callers to try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logging.FromContext(ctx).InfoContext(ctx, "Resolving topic", "cache", "miss")

			data, err := refresh()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to refresh cache entry: %w", err)
			}

			cache.set(key, data, ttl)
			set = true

			return data, true, nil
		}

		if result.valid {
			// Cache hit
			logging.FromContext(ctx).InfoContext(ctx, "Resolving topic", "cache", "hit")
			return result.data, false, nil
		}

		logging.FromContext(ctx).InfoContext(ctx, "Waiting for in-flight refresh")
		cache.wait()
	}
}

// InvalidateAll clears every entry, forcing the next GetOrRefresh per key to
// perform a live refresh.
func InvalidateAll[T any](cache Cache[T]) {
	cache.deleteAll()
}
