package snapshotrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hverdal/marketpulse/internal/export"
	"github.com/hverdal/marketpulse/internal/logging"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const DATA_FORMAT_VERSION = 1

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists point-in-time exports of the topic cache.
type SnapshotRepository interface {
	Store(ctx context.Context, snapshot export.Snapshot) error
	GetLatest(ctx context.Context) (export.Snapshot, error)
	GetByID(ctx context.Context, id string) (export.Snapshot, error)
}

type postgresSnapshotRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresSnapshotRepository(db *sqlx.DB, schema string) SnapshotRepository {
	return &postgresSnapshotRepository{db: db, schema: schema}
}

type dbSnapshot struct {
	ID                string    `db:"id"`
	DataFormatVersion int       `db:"data_format_version"`
	CreatedAt         time.Time `db:"created_at"`
	SnapshotData      []byte    `db:"snapshot_data"`
}

func (r *postgresSnapshotRepository) Store(ctx context.Context, snapshot export.Snapshot) error {
	data, err := export.SerializeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("Store: failed to serialize snapshot: %w", err)
	}

	txx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Store: failed to start transaction: %w", err)
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(r.schema)))
	if err != nil {
		return fmt.Errorf("Store: failed to set search path: %w", err)
	}

	_, err = txx.ExecContext(
		ctx,
		`INSERT INTO snapshots
		(id, data_format_version, created_at, snapshot_data)
		VALUES ($1, $2, $3, $4)`,
		snapshot.ID,
		DATA_FORMAT_VERSION,
		snapshot.CreatedAt,
		data,
	)
	if err != nil {
		return fmt.Errorf("Store: failed to insert snapshot: %w", err)
	}

	err = txx.Commit()
	if err != nil {
		return fmt.Errorf("Store: failed to commit transaction: %w", err)
	}

	logging.FromContext(ctx).Info("Stored snapshot", "dataFormatVersion", DATA_FORMAT_VERSION)

	return nil
}

func (r *postgresSnapshotRepository) GetLatest(ctx context.Context) (export.Snapshot, error) {
	return r.getOne(
		ctx,
		"SELECT id, data_format_version, created_at, snapshot_data FROM snapshots ORDER BY created_at DESC LIMIT 1",
	)
}

func (r *postgresSnapshotRepository) GetByID(ctx context.Context, id string) (export.Snapshot, error) {
	return r.getOne(
		ctx,
		"SELECT id, data_format_version, created_at, snapshot_data FROM snapshots WHERE id = $1",
		id,
	)
}

func (r *postgresSnapshotRepository) getOne(ctx context.Context, query string, args ...any) (export.Snapshot, error) {
	txx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("getOne: failed to start transaction: %w", err)
	}
	defer txx.Rollback()

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(r.schema)))
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("getOne: failed to set search path: %w", err)
	}

	var row dbSnapshot
	err = txx.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return export.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("getOne: failed to query snapshot: %w", err)
	}

	if row.DataFormatVersion != DATA_FORMAT_VERSION {
		return export.Snapshot{}, fmt.Errorf("getOne: unsupported data format version: %d", row.DataFormatVersion)
	}

	snapshot, err := export.ParseSnapshot(row.SnapshotData)
	if err != nil {
		return export.Snapshot{}, fmt.Errorf("getOne: failed to parse snapshot data: %w", err)
	}

	return snapshot, nil
}
