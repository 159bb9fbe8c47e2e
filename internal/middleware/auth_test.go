package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/models"
)

type stubAuthenticator struct {
	user      *models.User
	err       error
	lastToken string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	s.lastToken = token
	return s.user, s.err
}

func newProtectedApp(auth Authenticator) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(auth), func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(user.EmployeeNumber)
	})
	return app
}

func TestAuthRequiredStoresUser(t *testing.T) {
	auth := &stubAuthenticator{user: &models.User{ID: uuid.New(), EmployeeNumber: "E0001", Role: models.RoleCoach}}
	app := newProtectedApp(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if auth.lastToken != "abc.def.ghi" {
		t.Fatalf("expected token to be passed through, got %q", auth.lastToken)
	}
}

func TestAuthRequiredRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		auth   *stubAuthenticator
	}{
		{name: "missing header", header: "", auth: &stubAuthenticator{}},
		{name: "wrong scheme", header: "Basic abc", auth: &stubAuthenticator{}},
		{name: "rejected token", header: "Bearer abc", auth: &stubAuthenticator{err: errors.New("invalid")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(tt.auth)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.StatusCode)
			}
		})
	}
}
