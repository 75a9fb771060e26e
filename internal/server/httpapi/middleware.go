package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/common"
	"github.com/dmitrijs2005/campusmarket/internal/server/auth"
)

const userIDKey = "userID"

// requireAuth extracts and verifies the bearer token, storing the user id in
// the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(common.AuthHeaderName)
	if header == "" {
		return respondError(c, fiber.StatusUnauthorized, "Authorization required")
	}

	token, ok := strings.CutPrefix(header, common.AuthScheme+" ")
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid authorization header")
	}

	userID, err := auth.GetUserIDFromToken(token, []byte(s.config.SecretKey))
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// requestLogger logs one structured line per request after it completes.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		s.logger.Info(c.Context(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)

		return err
	}
}
