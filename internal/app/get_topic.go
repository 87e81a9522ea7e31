package app

import (
	"context"
	"fmt"

	"github.com/hverdal/marketpulse/internal/adapters/cache"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
	"github.com/hverdal/marketpulse/internal/domain"
	e "github.com/hverdal/marketpulse/internal/errors"
	"github.com/hverdal/marketpulse/internal/logging"
)

type GetTopic func(ctx context.Context, topicKey string) (domain.TopicRecord, error)

func BuildGetTopicWithCache(topicCache cache.Cache[domain.TopicRecord], provider topicprovider.TopicProvider) GetTopic {
	return func(ctx context.Context, topicKey string) (domain.TopicRecord, error) {
		topic, found := topicprovider.TopicByKey(topicKey)
		if !found {
			logging.FromContext(ctx).Error("Request for unknown topic", "topic", topicKey)
			return domain.TopicRecord{}, fmt.Errorf("%w: %s", e.UnknownTopicError, topicKey)
		}

		record, refreshed, err := cache.GetOrRefresh(ctx, topicCache, topic.Key, topic.TTL, func() (domain.TopicRecord, error) {
			return provider.RefreshTopic(ctx, topic), nil
		})
		if err != nil {
			// NOTE: RefreshTopic never fails, so this only triggers on future
			// provider implementations that do
			return domain.TopicRecord{}, fmt.Errorf("failed to cache.GetOrRefresh topic: %w", err)
		}

		if refreshed {
			logging.FromContext(ctx).InfoContext(ctx, "Refreshed topic", "topic", topic.Key)
		}

		return record, nil
	}
}
