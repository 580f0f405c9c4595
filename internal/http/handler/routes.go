package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"corpusapi/internal/service"
	"corpusapi/internal/storage"
)

// Deps are the collaborators the routes need.
type Deps struct {
	DB *sql.DB
	// Archive is nil when archiving is disabled.
	Archive storage.Storage
	Corpus  service.CorpusService
	// Metrics is served at /metrics; nil disables the endpoint.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/", Welcome())
	app.Get("/health", HealthCheck(d.DB, d.Archive))
	app.Get("/healthz", LivenessProbe())

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	app.Get("/files", ListFiles(d.Corpus))
	app.Get("/files/:fp/exists", FileExists(d.Corpus))
	app.Get("/files/:fp1/compare/:fp2", CompareFiles(d.Corpus))
	app.Get("/files/:fp", DownloadFile(d.Corpus))
	app.Post("/files/:fp", UploadFile(d.Corpus))
}
