package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/noguchitomoya/Google-meet/internal/middleware"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/services"
)

type AuthHandler struct {
	service authApplicationService
}

type authApplicationService interface {
	Login(ctx context.Context, employeeNumber, password string) (*services.LoginResult, error)
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	EmployeeNumber string `json:"employeeNumber"`
	Password       string `json:"password"`
}

type userResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employeeNumber"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:             user.ID.String(),
		EmployeeNumber: user.EmployeeNumber,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.service.Login(c.Context(), req.EmployeeNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "employeeNumber and password are required"})
		case errors.Is(err, services.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to login"})
		}
	}

	return c.JSON(fiber.Map{
		"user":        newUserResponse(result.User),
		"accessToken": result.AccessToken,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}
