package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/hverdal/marketpulse/internal/adapters/cache"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/domain"
	e "github.com/hverdal/marketpulse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTopicProvider struct {
	t *testing.T

	refreshCount   int
	recordForTopic func(topic topicprovider.Topic) domain.TopicRecord
}

func (m *mockTopicProvider) RefreshTopic(ctx context.Context, topic topicprovider.Topic) domain.TopicRecord {
	m.t.Helper()
	m.refreshCount++
	return m.recordForTopic(topic)
}

func staticRecord(topicKey string, producedAt time.Time) domain.TopicRecord {
	topic, found := topicprovider.TopicByKey(topicKey)
	if !found {
		panic("unknown topic in test: " + topicKey)
	}
	return domain.TopicRecord{
		Topic:      topicKey,
		Record:     domain.Complete(nil, topic.Schema),
		ProducedAt: producedAt,
	}
}

func TestBuildGetTopicWithCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown topic is rejected", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		provider := &mockTopicProvider{t: t}
		getTopic := app.BuildGetTopicWithCache(cache.NewBasicCache[domain.TopicRecord](func() time.Time { return now }), provider)

		_, err := getTopic(ctx, "competitor_analysis")
		require.ErrorIs(t, err, e.UnknownTopicError)
		assert.Equal(t, 0, provider.refreshCount)
	})

	t.Run("repeated requests within the ttl refresh once", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		provider := &mockTopicProvider{
			t: t,
			recordForTopic: func(topic topicprovider.Topic) domain.TopicRecord {
				return staticRecord(topic.Key, now)
			},
		}
		getTopic := app.BuildGetTopicWithCache(cache.NewBasicCache[domain.TopicRecord](func() time.Time { return now }), provider)

		first, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)
		second, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)

		assert.Equal(t, 1, provider.refreshCount)
		assert.Equal(t, first, second)

		prevalence, ok := first.Record.Float("male_obesity.prevalence")
		require.True(t, ok)
		assert.Equal(t, 12.8, prevalence)
	})

	t.Run("expired entry is refreshed", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		provider := &mockTopicProvider{
			t: t,
			recordForTopic: func(topic topicprovider.Topic) domain.TopicRecord {
				return staticRecord(topic.Key, now)
			},
		}
		getTopic := app.BuildGetTopicWithCache(cache.NewBasicCache[domain.TopicRecord](func() time.Time { return now }), provider)

		first, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)

		// Past the 60 minute ttl
		now = now.Add(61 * time.Minute)

		second, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)

		assert.Equal(t, 2, provider.refreshCount)
		assert.True(t, second.ProducedAt.After(first.ProducedAt))
		assert.Equal(t, first.ProducedAt.Add(61*time.Minute), second.ProducedAt)
	})

	t.Run("topics expire independently", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		provider := &mockTopicProvider{
			t: t,
			recordForTopic: func(topic topicprovider.Topic) domain.TopicRecord {
				return staticRecord(topic.Key, now)
			},
		}
		getTopic := app.BuildGetTopicWithCache(cache.NewBasicCache[domain.TopicRecord](func() time.Time { return now }), provider)

		_, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)
		_, err = getTopic(ctx, topicprovider.ComorbidityAnalysisKey)
		require.NoError(t, err)
		assert.Equal(t, 2, provider.refreshCount)

		// 90 minutes: past the 60 minute gender ttl, within the 120 minute comorbidity ttl
		now = now.Add(90 * time.Minute)

		_, err = getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)
		_, err = getTopic(ctx, topicprovider.ComorbidityAnalysisKey)
		require.NoError(t, err)
		assert.Equal(t, 3, provider.refreshCount)
	})

	t.Run("invalidate all forces refresh of every topic", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		provider := &mockTopicProvider{
			t: t,
			recordForTopic: func(topic topicprovider.Topic) domain.TopicRecord {
				return staticRecord(topic.Key, now)
			},
		}
		topicCache := cache.NewBasicCache[domain.TopicRecord](func() time.Time { return now })
		getTopic := app.BuildGetTopicWithCache(topicCache, provider)
		invalidateAll := app.BuildInvalidateAllTopics(topicCache)

		_, err := getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)
		_, err = getTopic(ctx, topicprovider.TreatmentPatternsKey)
		require.NoError(t, err)
		assert.Equal(t, 2, provider.refreshCount)

		invalidateAll(ctx)

		_, err = getTopic(ctx, topicprovider.GenderBasedAnalysisKey)
		require.NoError(t, err)
		_, err = getTopic(ctx, topicprovider.TreatmentPatternsKey)
		require.NoError(t, err)
		assert.Equal(t, 4, provider.refreshCount)
	})
}
