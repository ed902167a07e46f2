package handler

import (
	"errors"

	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, notFoundMessage, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// activeUserID prefers the authenticated user over the user_id query.
func activeUserID(c fiber.Ctx) string {
	if id := middleware.UserIDFromContext(c); id != "" {
		return id
	}
	return c.Query("user_id")
}
