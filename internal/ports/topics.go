package ports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/logging"
	"github.com/hverdal/marketpulse/internal/ratelimiting"
	"github.com/hverdal/marketpulse/internal/reporting"
)

type topicResponse struct {
	Success    bool          `json:"success"`
	Topic      string        `json:"topic"`
	ProducedAt time.Time     `json:"produced_at"`
	Data       domain.Record `json:"data"`
}

func makeOnLimitExceeded(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		statusCode := http.StatusTooManyRequests

		logging.FromContext(ctx).InfoContext(ctx, "Rate limit exceeded", "statusCode", statusCode, "key", rateLimiter.KeyFor(r))

		http.Error(w, "Rate limit exceeded", statusCode)
	}
}

func newIPRateLimitMiddleware(refillPerSecond ratelimiting.RefillPerSecond, burstSize ratelimiting.BurstSize) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(refillPerSecond, burstSize)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)
	return NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter))
}

func MakeGetTopicHandler(
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	getTopic app.GetTopic,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get-topic"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		newIPRateLimitMiddleware(8, 480),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		topicKey := r.PathValue("topic")

		ctx = logging.AddMetaToContext(ctx, slog.String("topic", topicKey))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"topic": topicKey,
		})

		record, err := getTopic(ctx, topicKey)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to get topic", "error", err)
			writeErrorResponse(w, err)
			return
		}

		responseData, err := json.Marshal(topicResponse{
			Success:    true,
			Topic:      record.Topic,
			ProducedAt: record.ProducedAt.UTC(),
			Data:       record.Record,
		})
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Failed to marshal topic response", "error", err)
			reporting.Report(ctx, fmt.Errorf("failed to marshal topic response: %w", err))

			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(responseData)
	}

	return middleware(handler)
}
