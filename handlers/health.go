package handlers

import (
	"github.com/edupanel/campus-api/database"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports process and store health
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable", "UNHEALTHY")
		}
		return response.SuccessWithMessage(c, "ok", fiber.Map{"status": "healthy"})
	}
}
