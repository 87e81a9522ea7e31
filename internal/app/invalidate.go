package app

import (
	"context"

	"github.com/hverdal/marketpulse/internal/adapters/cache"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/logging"
)

// InvalidateAllTopics drops every cached topic record. The next request per
// topic triggers a fresh refresh. In-flight refreshes are unaffected.
type InvalidateAllTopics func(ctx context.Context)

func BuildInvalidateAllTopics(topicCache cache.Cache[domain.TopicRecord]) InvalidateAllTopics {
	return func(ctx context.Context) {
		cache.InvalidateAll(topicCache)
		logging.FromContext(ctx).InfoContext(ctx, "Invalidated all cached topics")
	}
}
