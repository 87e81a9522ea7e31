package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hverdal/marketpulse/internal/adapters/snapshotrepository"
	e "github.com/hverdal/marketpulse/internal/errors"
	"github.com/hverdal/marketpulse/internal/export"
)

type GetLatestSnapshot func(ctx context.Context) (export.Snapshot, error)

func BuildGetLatestSnapshot(repo snapshotrepository.SnapshotRepository) GetLatestSnapshot {
	return func(ctx context.Context) (export.Snapshot, error) {
		snapshot, err := repo.GetLatest(ctx)
		if errors.Is(err, snapshotrepository.ErrSnapshotNotFound) {
			return export.Snapshot{}, fmt.Errorf("%w: no snapshots stored", e.SnapshotNotFoundError)
		}
		if err != nil {
			return export.Snapshot{}, fmt.Errorf("failed to get latest snapshot: %w", err)
		}
		return snapshot, nil
	}
}

type GetSnapshotByID func(ctx context.Context, id string) (export.Snapshot, error)

func BuildGetSnapshotByID(repo snapshotrepository.SnapshotRepository) GetSnapshotByID {
	return func(ctx context.Context, id string) (export.Snapshot, error) {
		_, err := uuid.Parse(id)
		if err != nil {
			return export.Snapshot{}, fmt.Errorf("%w: invalid snapshot id", e.APIClientError)
		}

		snapshot, err := repo.GetByID(ctx, id)
		if errors.Is(err, snapshotrepository.ErrSnapshotNotFound) {
			return export.Snapshot{}, fmt.Errorf("%w: %s", e.SnapshotNotFoundError, id)
		}
		if err != nil {
			return export.Snapshot{}, fmt.Errorf("failed to get snapshot by id: %w", err)
		}
		return snapshot, nil
	}
}
