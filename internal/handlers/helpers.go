package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// internalError logs the real failure and returns an opaque 500.
func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error("internal error",
		"action", action,
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
