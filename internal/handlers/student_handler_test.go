package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/services"
)

type stubStudentService struct {
	searchResult    []models.Student
	searchErr       error
	createResult    *models.Student
	createErr       error
	lastCoachID     uuid.UUID
	lastQuery       string
	lastCreateInput services.CreateStudentInput
}

func (s *stubStudentService) Search(_ context.Context, coachID uuid.UUID, query string) ([]models.Student, error) {
	s.lastCoachID = coachID
	s.lastQuery = query
	return s.searchResult, s.searchErr
}

func (s *stubStudentService) Create(_ context.Context, coachID uuid.UUID, input services.CreateStudentInput) (*models.Student, error) {
	s.lastCoachID = coachID
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func TestListStudentsPassesQuery(t *testing.T) {
	coach := testCoach()
	service := &stubStudentService{
		searchResult: []models.Student{{ID: uuid.New(), Name: "Aoi", Email: "aoi@example.com"}},
	}
	handler := &StudentHandler{service: service}

	app := fiber.New()
	app.Use(withCoach(coach))
	app.Get("/api/v1/students", handler.ListStudents)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students?query=ao", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastQuery != "ao" || service.lastCoachID != coach.ID {
		t.Fatalf("unexpected search call: coach=%s query=%q", service.lastCoachID, service.lastQuery)
	}

	var body struct {
		Students []models.Student `json:"students"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Students) != 1 || body.Students[0].Name != "Aoi" {
		t.Fatalf("unexpected students %+v", body.Students)
	}
}

func TestCreateStudent(t *testing.T) {
	coach := testCoach()
	service := &stubStudentService{createResult: &models.Student{ID: uuid.New(), Name: "Aoi"}}
	handler := &StudentHandler{service: service}

	app := fiber.New()
	app.Use(withCoach(coach))
	app.Post("/api/v1/students", handler.CreateStudent)

	resp := postJSON(t, app, "/api/v1/students", `{"name":"Aoi","email":"aoi@example.com","note":"new"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCreateInput.Email != "aoi@example.com" {
		t.Fatalf("expected email to be passed through, got %q", service.lastCreateInput.Email)
	}
	if service.lastCreateInput.Note == nil || *service.lastCreateInput.Note != "new" {
		t.Fatalf("expected note to be passed through, got %v", service.lastCreateInput.Note)
	}
}

func TestCreateStudentMapsErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid", err: services.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "duplicate email", err: services.ErrConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &StudentHandler{service: &stubStudentService{createErr: tt.err}}
			app := fiber.New()
			app.Use(withCoach(testCoach()))
			app.Post("/api/v1/students", handler.CreateStudent)

			resp := postJSON(t, app, "/api/v1/students", `{"name":"Aoi","email":"aoi@example.com"}`)
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}
