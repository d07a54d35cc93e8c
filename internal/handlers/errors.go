package handlers

import (
	"errors"
	"log/slog"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError writes the error body. Request errors carry their own message.
func respondError(c *fiber.Ctx, err error, message string) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.respond(c)
	}

	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(message, "path", c.Path(), "request_id", c.Locals("requestid"), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}
	slog.Debug(message, "path", c.Path(), "status", status, "error", err)
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
