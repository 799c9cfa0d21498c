package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "adclad/internal/shared/errors"
)

// Success is the message returned by write operations
const Success = "Success"

// Body is the envelope every successful handler answers with
type Body struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 envelope
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{Message: message, Data: data})
}

// Error maps err to its HTTP status and writes {"error": ...}.
// Errors that are not AppErrors never leak their text.
func Error(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{"error": appErr.Message, "type": appErr.Type}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(apperrors.HTTPStatus(err)).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
	})
}

// InvalidBody answers a malformed request payload
func InvalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
