package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/model"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// handleError maps the service error taxonomy to HTTP statuses. This is
// the only place a service error turns into a status code.
func handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "invalid token"})
	case errors.Is(err, model.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Detail: "unauthorized"})
	case errors.Is(err, model.ErrIncorrectPassword):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Detail: "incorrect email or password"})
	case errors.Is(err, model.ErrAccountNotVerified):
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{Detail: "account not verified"})
	case errors.Is(err, model.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{Detail: "account is inactive"})
	case errors.Is(err, model.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{Detail: "forbidden"})
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Detail: "record not found"})
	case errors.Is(err, model.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Detail: "email already taken"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "internal server error"})
	}
}
