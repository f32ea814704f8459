package handlers

import (
	"errors"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps a domain error to its HTTP status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes the mapped status code with a JSON error body.
func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// callerFromCtx builds the request principal from the values the auth
// middleware stored in Locals.
func callerFromCtx(c *fiber.Ctx) services.Caller {
	caller := services.Caller{}
	if v, ok := c.Locals("user_id").(string); ok {
		caller.UserID = v
	}
	if v, ok := c.Locals("username").(string); ok {
		caller.Username = v
	}
	if v, ok := c.Locals("role").(services.Role); ok {
		caller.Role = v
	}
	return caller
}
