package serverutils

import (
	"errors"

	"legal-assistant-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the domain error taxonomy onto HTTP statuses.
// NotFound and ownership violations stay distinct so clients can recover;
// backend outages surface as 5xx without being folded into not-found.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		errType := "internal_error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			errType = "request_error"
		case errors.Is(err, apperr.ErrSessionNotFound):
			status = fiber.StatusNotFound
			errType = "session_not_found"
		case errors.Is(err, apperr.ErrOwnershipViolation):
			status = fiber.StatusForbidden
			errType = "ownership_violation"
		case errors.Is(err, apperr.ErrStoreUnavailable):
			status = fiber.StatusServiceUnavailable
			errType = "store_unavailable"
		case errors.Is(err, apperr.ErrRetrievalUnavailable):
			status = fiber.StatusServiceUnavailable
			errType = "retrieval_unavailable"
		case errors.Is(err, apperr.ErrLLMUnavailable):
			status = fiber.StatusBadGateway
			errType = "llm_unavailable"
		}

		return ctx.Status(status).JSON(fiber.Map{
			"error":   errType,
			"message": err.Error(),
		})
	}
}
