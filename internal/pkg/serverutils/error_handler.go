package serverutils

import (
	"errors"

	"mcq-writer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the fiber error handler. Known *fiber.Error
// codes pass through, everything else becomes a 500 and gets logged.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("http", "Unhandled request error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(err.Error()))
	}
}
