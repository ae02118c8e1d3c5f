package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type stubLoader map[string]*models.Session

func (s stubLoader) LoadSession(_ context.Context, token string) (*models.Session, error) {
	if session, ok := s[token]; ok {
		return session, nil
	}
	return nil, models.ErrUnauthorized
}

func newTestApp() *fiber.App {
	loader := stubLoader{
		"customer-token": {UserID: "u1", Role: models.RoleCustomer},
		"admin-token":    {UserID: "u2", Role: models.RoleAdmin},
	}
	app := fiber.New()
	app.Get("/me", AuthMiddleware(loader), func(c *fiber.Ctx) error {
		return c.SendString(SessionFrom(c).UserID)
	})
	app.Get("/admin", AuthMiddleware(loader), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/maybe", OptionalAuth(loader), func(c *fiber.Ctx) error {
		if SessionFrom(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(SessionFrom(c).UserID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", fiber.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", fiber.StatusUnauthorized},
		{"unknown token", "/me", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "/me", "Bearer customer-token", fiber.StatusOK},
		{"customer on admin route", "/admin", "Bearer customer-token", fiber.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer admin-token", fiber.StatusNoContent},
		{"optional without token", "/maybe", "", fiber.StatusOK},
		{"optional with bad token", "/maybe", "Bearer nope", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
