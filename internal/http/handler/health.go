package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"corpusapi/internal/logging"
	"corpusapi/internal/storage"
)

// Greeting is the body of GET /.
const Greeting = "Welcome to RESTful Corpus Platform"

const healthTimeout = 2 * time.Second

// Welcome answers the root path with a plain greeting.
func Welcome() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(Greeting)
	}
}

// HealthCheck pings the database and, when configured, the content archive.
// archive may be nil.
func HealthCheck(db *sql.DB, archive storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("health: database unreachable")
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}

		archiveStatus := "disabled"
		if archive != nil {
			if err := archive.Ping(ctx); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("health: archive unreachable")
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
			archiveStatus = "up"
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"database": "up",
			"archive":  archiveStatus,
		})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
