package snapshotrepository

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/hverdal/marketpulse/internal/adapters/database"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/export"
)

func newPostgresSnapshotRepository(t *testing.T, db *sqlx.DB, schema string) SnapshotRepository {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schema)))

	migrator := database.NewDatabaseMigrator(db, logger)

	err := migrator.Migrate(t.Context(), schema)
	require.NoError(t, err)

	return NewPostgresSnapshotRepository(db, schema)
}

func newSnapshot(t *testing.T, createdAt time.Time) export.Snapshot {
	t.Helper()

	return export.Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: createdAt,
		Topics: map[string]domain.Record{
			"gender_based_analysis": {
				"male_obesity": domain.Record{
					"prevalence": 12.8,
					"age_distribution": map[string]float64{
						"18-30": 8.5,
						"31-45": 16.2,
					},
				},
			},
		},
		Sources: map[string][]string{
			"gender_based_analysis": {"icmr_gender_study", "lancet_gender_diabetes", "who_gender_data"},
		},
	}
}

func TestPostgresSnapshotRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	ctx := t.Context()
	db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
	require.NoError(t, err)

	now := time.Date(2026, time.May, 14, 9, 30, 0, 0, time.UTC)

	t.Run("GetByID returns the stored snapshot", func(t *testing.T) {
		t.Parallel()
		repo := newPostgresSnapshotRepository(t, db, "snapshot_get_by_id")

		snapshot := newSnapshot(t, now)
		err := repo.Store(ctx, snapshot)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, snapshot.ID)
		require.NoError(t, err)
		require.Equal(t, snapshot, stored)
	})

	t.Run("GetByID with unknown id", func(t *testing.T) {
		t.Parallel()
		repo := newPostgresSnapshotRepository(t, db, "snapshot_get_by_id_unknown")

		snapshot := newSnapshot(t, now)
		err := repo.Store(ctx, snapshot)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, uuid.New().String())
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("GetLatest returns the most recently created snapshot", func(t *testing.T) {
		t.Parallel()
		repo := newPostgresSnapshotRepository(t, db, "snapshot_get_latest")

		newest := newSnapshot(t, now.Add(2*time.Hour))
		oldest := newSnapshot(t, now)
		middle := newSnapshot(t, now.Add(1*time.Hour))

		// Insertion order must not matter, only created_at
		for _, snapshot := range []export.Snapshot{newest, oldest, middle} {
			err := repo.Store(ctx, snapshot)
			require.NoError(t, err)
		}

		latest, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		require.Equal(t, newest, latest)
	})

	t.Run("GetLatest with no stored snapshots", func(t *testing.T) {
		t.Parallel()
		repo := newPostgresSnapshotRepository(t, db, "snapshot_get_latest_empty")

		_, err := repo.GetLatest(ctx)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("unsupported data format version fails", func(t *testing.T) {
		t.Parallel()
		SCHEMA_NAME := "snapshot_old_format_version"
		repo := newPostgresSnapshotRepository(t, db, SCHEMA_NAME)

		snapshot := newSnapshot(t, now)
		data, err := export.SerializeSnapshot(snapshot)
		require.NoError(t, err)

		txx, err := db.Beginx()
		require.NoError(t, err)
		defer txx.Rollback()

		_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(SCHEMA_NAME)))
		require.NoError(t, err)

		_, err = txx.ExecContext(
			ctx,
			`INSERT INTO snapshots
			(id, data_format_version, created_at, snapshot_data)
			VALUES ($1, $2, $3, $4)`,
			snapshot.ID,
			-10,
			snapshot.CreatedAt,
			data,
		)
		require.NoError(t, err)
		err = txx.Commit()
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, snapshot.ID)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported data format version")
	})
}
