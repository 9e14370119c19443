package api

import (
	"account-service/internal/service"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// respondError is the single place where service failures become HTTP
// statuses. Unclassified failures are logged and answered with a stable
// message; the underlying error is only echoed back in development.
func respondError(c *fiber.Ctx, err error, operation string, devMode bool) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, service.ErrPreferencesNotSet):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No preferences found"})
	}

	attrs := []any{slog.String("operation", operation), slog.String("error", err.Error())}
	if userID, idErr := GetUserIDFromClaims(c); idErr == nil {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	slog.ErrorContext(c.UserContext(), "Request failed", attrs...)

	body := fiber.Map{"error": "Error " + operation}
	if devMode {
		body["details"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// ErrorHandler answers anything a handler returned instead of writing a
// response itself, including recovered panics.
func ErrorHandler(devMode bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if errors.As(err, &e) {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}

		slog.ErrorContext(c.UserContext(), "Unhandled error", slog.String("path", c.Path()), slog.String("error", err.Error()))

		body := fiber.Map{"error": "Internal server error"}
		if devMode {
			body["details"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
