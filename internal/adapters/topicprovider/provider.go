package topicprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/hverdal/marketpulse/internal/adapters/sourcefetcher"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/extraction"
	"github.com/hverdal/marketpulse/internal/logging"
	"github.com/hverdal/marketpulse/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeLive     = "live"
	outcomeFallback = "fallback"
	outcomeStatic   = "static"
)

// TopicProvider produces a fresh record for a topic. RefreshTopic never
// fails: upstream errors degrade the record to its baseline values instead
// of propagating.
type TopicProvider interface {
	RefreshTopic(ctx context.Context, topic Topic) domain.TopicRecord
}

type liveTopicProvider struct {
	fetcher sourcefetcher.SourceFetcher
	nowFunc func() time.Time

	metrics liveTopicProviderMetricsCollection
}

func NewLiveTopicProvider(fetcher sourcefetcher.SourceFetcher, nowFunc func() time.Time) (TopicProvider, error) {
	meter := otel.Meter("topicprovider/live_provider")
	metrics, err := setupLiveTopicProviderMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &liveTopicProvider{
		fetcher: fetcher,
		nowFunc: nowFunc,

		metrics: metrics,
	}, nil
}

func (p *liveTopicProvider) RefreshTopic(ctx context.Context, topic Topic) domain.TopicRecord {
	partial, outcome := p.extractLive(ctx, topic)

	p.metrics.refreshCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic.Key),
		attribute.String("outcome", outcome),
	))

	return domain.TopicRecord{
		Topic:      topic.Key,
		Record:     domain.Complete(partial, topic.Schema),
		ProducedAt: p.nowFunc(),
	}
}

func (p *liveTopicProvider) extractLive(ctx context.Context, topic Topic) (domain.PartialRecord, string) {
	logger := logging.FromContext(ctx)

	if len(topic.Patterns) == 0 {
		return nil, outcomeStatic
	}

	url := topic.Sources[topic.PrimarySource]

	result, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.WarnContext(ctx, "live refresh falling back to baseline", "topic", topic.Key, "error", err.Error())
		reporting.Report(ctx, fmt.Errorf("live refresh failed: %w", err), map[string]string{
			"topic": topic.Key,
			"url":   url,
		})
		return nil, outcomeFallback
	}

	partial := extraction.Extract(extraction.Text(result.Body), topic.Patterns)
	if len(partial) == 0 {
		logger.WarnContext(ctx, "no fields extracted from live source", "topic", topic.Key, "url", url)
		return nil, outcomeFallback
	}

	logger.InfoContext(ctx, "live refresh extracted fields",
		"topic", topic.Key,
		"extracted", len(partial),
		"fromBaseline", len(domain.MissingFields(partial, topic.Schema)),
	)
	return partial, outcomeLive
}

type liveTopicProviderMetricsCollection struct {
	refreshCount metric.Int64Counter
}

func setupLiveTopicProviderMetrics(meter metric.Meter) (liveTopicProviderMetricsCollection, error) {
	refreshCount, err := meter.Int64Counter(
		"topicprovider/live_provider/refresh_count",
		metric.WithDescription("Topic refreshes by outcome"),
	)
	if err != nil {
		return liveTopicProviderMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return liveTopicProviderMetricsCollection{
		refreshCount: refreshCount,
	}, nil
}
