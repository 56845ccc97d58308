package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/services"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Register(req.Login, req.Email, req.Password)
	if err != nil {
		// Duplicate email/login and shape failures map to 400 with the
		// domain message; anything else stays opaque.
		var vErr *validation.Error
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrLoginTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: vErr.Error(),
			})
		}
		return internalError(c, "register user", err)
	}

	return c.JSON(dto.RegisterResponse{
		Message: "User created successfully",
		UserID:  user.ID,
		Login:   user.Login,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials",
			})
		}
		return internalError(c, "login failed", err)
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Login:       user.Login,
		IsAdmin:     user.IsAdmin,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.CurrentUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(dto.MeResponse{
		ID:      user.ID,
		Login:   user.Login,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
}
