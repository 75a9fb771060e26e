package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/server/models"
)

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		College  string `json:"college"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.College == "" {
		return respondError(c, fiber.StatusBadRequest, "Name, email, password, and college are required")
	}

	user, token, err := s.users.Register(c.Context(), req.Name, req.Email, req.Password, req.College)
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusCreated, authPayload{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, token, err := s.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusOK, authPayload{User: user, Token: token})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this only
// acknowledges; the client discards its copy.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: "Logged out"})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusOK, authPayload{User: user})
}

// UpdateProfile handles PATCH /api/auth/profile. Absent fields stay
// untouched.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name    *string `json:"name"`
		College *string `json:"college"`
		Avatar  *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name != nil && *req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "Name cannot be empty")
	}

	user, err := s.users.UpdateProfile(c.Context(), currentUserID(c), req.Name, req.College, req.Avatar)
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusOK, authPayload{User: user})
}

// ChangePassword handles POST /api/auth/change-password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return respondError(c, fiber.StatusBadRequest, "Current and new passwords are required")
	}

	if err := s.users.ChangePassword(c.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: "Password changed"})
}
