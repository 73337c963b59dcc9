package auth

import (
	"errors"

	"atlas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// LoginRequest body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /api/login — fixed credential pair, static non-expiring token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, ErrCredentialsRequired.Error())
	}

	token, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrCredentialsRequired) {
			return response.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return response.Error(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
	}
	return c.JSON(fiber.Map{"message": "Login successful", "token": token})
}
