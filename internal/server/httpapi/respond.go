package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/common"
	"github.com/dmitrijs2005/campusmarket/internal/server/services"
)

// envelope is the wire shape of every response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: message})
}

// fail maps a service error to a status code and user-facing message.
// Internal details never reach the wire.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return respondError(c, fiber.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrWrongPassword):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorForbidden):
		return respondError(c, fiber.StatusForbidden, "You do not have permission to modify this item")
	case errors.Is(err, common.ErrorNotFound):
		return respondError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorEmailTaken):
		return respondError(c, fiber.StatusConflict, "Email is already registered")
	default:
		s.logger.Error(c.Context(), "request failed", "path", c.Path(), "error", err)
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
