package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/middleware"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/services"
)

type StudentHandler struct {
	service studentApplicationService
}

type studentApplicationService interface {
	Search(ctx context.Context, coachID uuid.UUID, query string) ([]models.Student, error)
	Create(ctx context.Context, coachID uuid.UUID, input services.CreateStudentInput) (*models.Student, error)
}

func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

type createStudentRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Note  *string `json:"note"`
}

func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	coach, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	students, err := h.service.Search(c.Context(), coach.ID, c.Query("query"))
	if err != nil {
		return mapStudentError(c, err)
	}

	return c.JSON(fiber.Map{"students": students})
}

func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	coach, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	student, err := h.service.Create(c.Context(), coach.ID, services.CreateStudentInput{
		Name:  req.Name,
		Email: req.Email,
		Note:  req.Note,
	})
	if err != nil {
		return mapStudentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"student": student})
}

func mapStudentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "name (max 120), a valid email (max 190) and note (max 500) are required"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already registered"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process student request"})
	}
}
