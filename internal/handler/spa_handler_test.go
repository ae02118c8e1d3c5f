package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type tokenLoader map[string]*models.Session

func (l tokenLoader) LoadSession(_ context.Context, token string) (*models.Session, error) {
	if s, ok := l[token]; ok {
		return s, nil
	}
	return nil, models.ErrUnauthorized
}

func TestNavigate(t *testing.T) {
	loader := tokenLoader{
		"customer": {UserID: "u1", Role: models.RoleCustomer},
		"admin":    {UserID: "u2", Role: models.RoleAdmin},
	}
	spa := NewSPAHandler(t.TempDir())
	app := fiber.New()
	app.Get("/api/navigation", middleware.OptionalAuth(loader), spa.Navigate)

	tests := []struct {
		path     string
		token    string
		allowed  bool
		redirect string
	}{
		{"/gallery", "", true, ""},
		{"/my-albums", "", false, "/login"},
		{"/my-albums", "customer", true, ""},
		{"/admin/users", "customer", false, "/dashboard"},
		{"/admin/users", "admin", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.token, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/navigation?path="+tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			var body struct {
				Data Navigation `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Data.Allowed != tt.allowed || body.Data.Redirect != tt.redirect {
				t.Fatalf("navigation = %+v, want allowed=%v redirect=%q", body.Data, tt.allowed, tt.redirect)
			}
		})
	}
}

func TestIndexRejectsUnknownAPIPaths(t *testing.T) {
	spa := NewSPAHandler(t.TempDir())
	app := fiber.New()
	app.Get("*", spa.Index)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nope", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
