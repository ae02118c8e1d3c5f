package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func decode(t *testing.T, app *fiber.App, method, path string) (int, models.Response) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body models.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, body
}

func TestFailMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", models.NewValidationError("title", "Please fill in all required fields"), fiber.StatusBadRequest, "Please fill in all required fields"},
		{"not confirmed", service.ErrNotConfirmed, fiber.StatusBadRequest, "Confirmation required"},
		{"bad credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},
		{"forbidden", models.ErrUnauthorized, fiber.StatusForbidden, "You do not have access to this resource"},
		{"not found", fmt.Errorf("open album: %w", models.ErrNotFound), fiber.StatusNotFound, "Not found"},
		{"precondition", models.NewPreconditionError("This appointment is already cancelled"), fiber.StatusConflict, "This appointment is already cancelled"},
		{"remote", &models.RemoteError{Op: "update album", Message: "Failed to save album", Err: errors.New("conn reset")}, fiber.StatusBadGateway, "Failed to save album"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return fail(c, zap.NewNop(), tt.err, nil)
			})
			status, body := decode(t, app, "GET", "/")
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			if body.Success || body.Error != tt.message {
				t.Fatalf("body = %+v, want error %q", body, tt.message)
			}
		})
	}
}

func TestFailCarriesNotifications(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		notes := service.NewNotificationLog()
		notes.Error("Failed to delete photos")
		return fail(c, zap.NewNop(), models.NewRemoteError("delete photos", errors.New("timeout")), notes)
	})
	_, body := decode(t, app, "GET", "/")
	if len(body.Notifications) != 1 || body.Notifications[0].Level != models.NotifyError {
		t.Fatalf("notifications = %+v", body.Notifications)
	}
}

func TestErrorHandlerHidesServerErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/broken", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusInternalServerError, "pq: password authentication failed") })

	status, body := decode(t, app, "GET", "/missing")
	if status != fiber.StatusNotFound || body.Error != "Not Found" {
		t.Fatalf("missing: %d %+v", status, body)
	}
	status, body = decode(t, app, "GET", "/broken")
	if status != fiber.StatusInternalServerError || body.Error != "Something went wrong. Please try again." {
		t.Fatalf("broken: %d %+v", status, body)
	}
}
