package main

import (
	"context"
	"database/sql"
	"errors"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"corpusapi/docs"
	"corpusapi/internal/config"
	"corpusapi/internal/database"
	"corpusapi/internal/database/migration"
	handlers "corpusapi/internal/http/handler"
	"corpusapi/internal/http/middleware"
	"corpusapi/internal/logging"
	"corpusapi/internal/otel"
	"corpusapi/internal/repository"
	"corpusapi/internal/repository/postgres"
	"corpusapi/internal/repository/sqlite"
	"corpusapi/internal/service"
	"corpusapi/internal/storage"
)

// @title Corpus API
// @version 1.0
// @description Content-addressed text document store with similarity comparison.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, dbLocation(cfg.Database)); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	repo, err := newDocumentRepository(cfg.Database, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build document repository")
	}

	// The archive is optional: an unset MINIO_ENDPOINT disables it.
	var archive storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		archive = storage.NewBreaker(objStore, storage.DefaultBreakerConfig())
		log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("content archive enabled")
	}

	corpusSvc := service.NewCorpusService(repo, archive)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Driver),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		AppName:               "corpusapi",
		BodyLimit:             cfg.BodyLimitBytes,
		ErrorHandler:          handlers.ErrorHandler(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component("http")))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:      db,
		Archive: archive,
		Corpus:  corpusSvc,
		Metrics: reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("db_driver", cfg.Database.Driver).Msg("server listening")
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	tctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error().Err(err).Msg("tracing shutdown")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close")
	}
	log.Info().Msg("server stopped")
}

// newDocumentRepository picks the store matching the configured driver.
func newDocumentRepository(c config.DatabaseConfig, db *sql.DB) (repository.DocumentRepository, error) {
	timeout := time.Duration(c.QueryTimeoutSec) * time.Second
	switch c.Driver {
	case database.DriverPostgres:
		return postgres.NewDocumentPostgres(db).WithQueryTimeout(timeout), nil
	case database.DriverSQLite:
		return sqlite.NewDocumentSQLite(db).WithQueryTimeout(timeout), nil
	default:
		return nil, errors.New("unsupported database driver: " + c.Driver)
	}
}

// dbLocation names the database in logs without exposing credentials.
func dbLocation(c config.DatabaseConfig) string {
	if c.Driver == database.DriverSQLite {
		return c.SQLitePath
	}
	return c.Host
}
