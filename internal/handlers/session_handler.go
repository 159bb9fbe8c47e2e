package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/middleware"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/services"
)

type SessionHandler struct {
	service sessionApplicationService
}

type sessionApplicationService interface {
	CreateSession(ctx context.Context, coach *models.User, input services.CreateSessionInput) (*services.BookingResult, error)
	ListSessions(ctx context.Context, coachID uuid.UUID) ([]models.Session, error)
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type createSessionRequest struct {
	StudentID string  `json:"studentId"`
	StartAt   string  `json:"startAt"`
	EndAt     string  `json:"endAt"`
	Title     *string `json:"title"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	coach, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	studentID, err := uuid.Parse(strings.TrimSpace(req.StudentID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "studentId must be a valid UUID"})
	}
	startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartAt))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startAt must be a valid RFC3339 timestamp"})
	}
	endAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndAt))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "endAt must be a valid RFC3339 timestamp"})
	}
	if !startAt.Before(endAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "endAt must be after startAt"})
	}

	result, err := h.service.CreateSession(c.Context(), coach, services.CreateSessionInput{
		StudentID: studentID,
		StartAt:   startAt,
		EndAt:     endAt,
		Title:     req.Title,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session":     result.Session,
		"emailStatus": result.Email.Status,
	})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	coach, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessions, err := h.service.ListSessions(c.Context(), coach.ID)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrServer):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
