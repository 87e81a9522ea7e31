package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hverdal/marketpulse/internal/adapters/cache"
	"github.com/hverdal/marketpulse/internal/adapters/database"
	"github.com/hverdal/marketpulse/internal/adapters/snapshotrepository"
	"github.com/hverdal/marketpulse/internal/adapters/sourcefetcher"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
	"github.com/hverdal/marketpulse/internal/app"
	"github.com/hverdal/marketpulse/internal/config"
	"github.com/hverdal/marketpulse/internal/domain"
	"github.com/hverdal/marketpulse/internal/ports"
	"github.com/hverdal/marketpulse/internal/reporting"
	"github.com/hverdal/marketpulse/internal/telemetry"

	// Bundle fallback root certificates for distroless deploys
	_ "golang.org/x/crypto/x509roots/fallback"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "marketpulse-analytics.in"

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if !config.IsDevelopment() {
		otelShutdown, err := telemetry.SetupOTelSDK(ctx, "marketpulse")
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer otelShutdown(context.Background())
	}

	topicCache := cache.NewTTLCache[domain.TopicRecord]()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	fetcher := sourcefetcher.New(httpClient)

	provider, err := topicprovider.NewLiveTopicProvider(fetcher, time.Now)
	if err != nil {
		fail("Failed to initialize topic provider", "error", err.Error())
	}
	logger.Info("Initialized topic provider")

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	logger.Info("Initializing database connection")
	db, err := database.NewConfiguredPostgresDatabase(config)
	if err != nil {
		fail("Failed to initialize database connection", "error", err.Error())
	}
	logger.Info("Initialized database connection")

	repositorySchemaName := database.GetSchemaName(!config.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	snapshotRepo := snapshotrepository.NewPostgresSnapshotRepository(db, repositorySchemaName)
	logger.Info("Initialized SnapshotRepository")

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}
	corsMiddleware := ports.BuildCORSMiddleware(allowedOrigins)

	getTopic := app.BuildGetTopicWithCache(topicCache, provider)
	invalidateAllTopics := app.BuildInvalidateAllTopics(topicCache)
	createSnapshot := app.BuildCreateSnapshot(getTopic, snapshotRepo, time.Now)
	getLatestSnapshot := app.BuildGetLatestSnapshot(snapshotRepo)
	getSnapshotByID := app.BuildGetSnapshotByID(snapshotRepo)
	getMarketRankings := app.BuildGetMarketRankings(getTopic)

	http.HandleFunc(
		"OPTIONS /v1/topics/{topic}",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/topics/{topic}",
		corsMiddleware(ports.MakeGetTopicHandler(
			logger.With("port", "gettopic"),
			sentryMiddleware,
			getTopic,
		)),
	)

	http.HandleFunc(
		"OPTIONS /v1/cache/invalidate",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"POST /v1/cache/invalidate",
		corsMiddleware(ports.MakeInvalidateCacheHandler(
			logger.With("port", "invalidatecache"),
			sentryMiddleware,
			invalidateAllTopics,
		)),
	)

	http.HandleFunc(
		"OPTIONS /v1/snapshots",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"POST /v1/snapshots",
		corsMiddleware(ports.MakeCreateSnapshotHandler(
			logger.With("port", "createsnapshot"),
			sentryMiddleware,
			createSnapshot,
		)),
	)

	http.HandleFunc(
		"OPTIONS /v1/snapshots/latest",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/snapshots/latest",
		corsMiddleware(ports.MakeGetLatestSnapshotHandler(
			logger.With("port", "getlatestsnapshot"),
			sentryMiddleware,
			getLatestSnapshot,
		)),
	)

	http.HandleFunc(
		"OPTIONS /v1/snapshots/{id}",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/snapshots/{id}",
		corsMiddleware(ports.MakeGetSnapshotByIDHandler(
			logger.With("port", "getsnapshotbyid"),
			sentryMiddleware,
			getSnapshotByID,
		)),
	)

	http.HandleFunc(
		"OPTIONS /v1/rankings",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/rankings",
		corsMiddleware(ports.MakeGetRankingsHandler(
			logger.With("port", "getrankings"),
			sentryMiddleware,
			getMarketRankings,
		)),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
