package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func TestRouterAccessLevels(t *testing.T) {
	cfg := &config.Config{CORSOrigins: "*", StaticDir: t.TempDir()}
	app := NewFiberApp(cfg, zap.NewNop(), testSessions, &Handlers{
		SPA:    NewSPAHandler(cfg.StaticDir),
		Health: NewHealthHandler(nil, prometheus.NewRegistry()),
	})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"unknown api path", "GET", "/api/nope", "", fiber.StatusNotFound},
		{"unknown api path with other method", "POST", "/api/nope", "", fiber.StatusNotFound},
		{"profile without token", "GET", "/api/me", "", fiber.StatusUnauthorized},
		{"bookings without token", "GET", "/api/bookings", "", fiber.StatusUnauthorized},
		{"albums without token", "GET", "/api/albums/a1", "", fiber.StatusUnauthorized},
		{"admin without token", "GET", "/api/admin/users", "", fiber.StatusUnauthorized},
		{"admin as customer", "GET", "/api/admin/users", "customer", fiber.StatusForbidden},
		{"navigation without token", "GET", "/api/navigation?path=/dashboard", "", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
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
