package ports

import (
	"log/slog"
	"net/http"

	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/logging"
)

// Cache invalidation is an operator action triggered from the dashboard. The
// tight rate limit guards against a stuck refresh button hammering the
// upstream sources.
func MakeInvalidateCacheHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	invalidateAll app.InvalidateAllTopics,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("invalidate-cache"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(1, 10),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		invalidateAll(ctx)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}

	return middleware(handler)
}
