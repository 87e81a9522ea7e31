package ports

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/export"
	"github.com/hverdal/marketpulse/internal/logging"
	"github.com/hverdal/marketpulse/internal/reporting"
)

func MakeCreateSnapshotHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	createSnapshot app.CreateSnapshot,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("create-snapshot"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(1, 30),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snapshot, err := createSnapshot(ctx)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to create snapshot", "error", err)
			writeErrorResponse(w, err)
			return
		}

		writeSnapshotResponse(ctx, w, snapshot, http.StatusCreated)
	}

	return middleware(handler)
}

func MakeGetLatestSnapshotHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	getLatestSnapshot app.GetLatestSnapshot,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get-latest-snapshot"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(4, 240),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snapshot, err := getLatestSnapshot(ctx)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to get latest snapshot", "error", err)
			writeErrorResponse(w, err)
			return
		}

		writeSnapshotResponse(ctx, w, snapshot, http.StatusOK)
	}

	return middleware(handler)
}

func MakeGetSnapshotByIDHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	getSnapshotByID app.GetSnapshotByID,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get-snapshot-by-id"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(4, 240),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snapshotID := r.PathValue("id")

		ctx = logging.AddMetaToContext(ctx, slog.String("snapshotID", snapshotID))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"snapshotID": snapshotID,
		})

		snapshot, err := getSnapshotByID(ctx, snapshotID)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to get snapshot", "error", err)
			writeErrorResponse(w, err)
			return
		}

		writeSnapshotResponse(ctx, w, snapshot, http.StatusOK)
	}

	return middleware(handler)
}

func writeSnapshotResponse(ctx context.Context, w http.ResponseWriter, snapshot export.Snapshot, statusCode int) {
	responseData, err := export.SerializeSnapshot(snapshot)
	if err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "Failed to serialize snapshot", "error", err)
		reporting.Report(ctx, fmt.Errorf("failed to serialize snapshot: %w", err))

		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(responseData)
}
