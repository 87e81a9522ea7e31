package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hverdal/marketpulse/internal/adapters/snapshotrepository"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/export"
	"github.com/hverdal/marketpulse/internal/logging"
)

type CreateSnapshot func(ctx context.Context) (export.Snapshot, error)

// BuildCreateSnapshot assembles a snapshot from every topic, serving from the
// cache where valid and refreshing where not. The snapshot is persisted, but
// a storage failure does not fail the operation: the assembled snapshot is
// still returned for download.
func BuildCreateSnapshot(
	getTopic GetTopic,
	repo snapshotrepository.SnapshotRepository,
	nowFunc func() time.Time,
) CreateSnapshot {
	return func(ctx context.Context) (export.Snapshot, error) {
		logger := logging.FromContext(ctx)

		topics := make(map[string]domain.Record)
		sources := make(map[string][]string)
		for _, topic := range topicprovider.AllTopics() {
			record, err := getTopic(ctx, topic.Key)
			if err != nil {
				// NOTE: GetTopic implementations handle their own error reporting
				return export.Snapshot{}, fmt.Errorf("failed to resolve topic for snapshot: %w", err)
			}
			topics[topic.Key] = record.Record
			sources[topic.Key] = topic.SourceIdentifiers()
		}

		snapshot := export.Snapshot{
			ID:        uuid.New().String(),
			CreatedAt: nowFunc().UTC(),
			Topics:    topics,
			Sources:   sources,
		}

		// Ignore cancellations from the request context and try to store the data anyway
		// Take a maximum of 1 second to not block the request for too long
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 1*time.Second)
		defer cancel()
		err := repo.Store(storeCtx, snapshot)
		if err != nil {
			logger.Error("failed to store snapshot", "error", err.Error())

			// NOTE: We still return the snapshot to fulfill the request even though storing failed
		}

		return snapshot, nil
	}
}
