package handlers

import (
	"errors"
	"log"

	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// RespondError translates a service failure into the JSON error envelope.
// Typed failures keep their message; anything unexpected is logged and
// collapsed to a generic 500 so store errors never reach the client.
func RespondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrBadRequest):
		return response.BadRequest(c, err.Error())
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "")
	}
}
