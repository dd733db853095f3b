package serverutils

import (
	"errors"

	"research-assistant-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates typed errors bubbling out of handlers
// into consistent JSON envelopes
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Error()))
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusRequestEntityTooLarge).
				JSON(ErrorResponse(fiber.StatusRequestEntityTooLarge, limitErr.Error()))
		}

		var typeErr *dto.UnsupportedFileTypeError
		if errors.As(err, &typeErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, typeErr.Error()))
		}

		var notFoundErr *dto.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse(fiber.StatusNotFound, notFoundErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
