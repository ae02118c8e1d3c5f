package middleware

import (
	"context"
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// SessionLoader resolves a bearer token to the caller's session.
type SessionLoader interface {
	LoadSession(ctx context.Context, token string) (*models.Session, error)
}

func AuthMiddleware(loader SessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		session, err := loader.LoadSession(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// OptionalAuth attaches a session when a valid bearer token is present and
// lets every request through.
func OptionalAuth(loader SessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			if session, err := loader.LoadSession(c.UserContext(), token); err == nil {
				c.Locals(sessionKey, session)
			}
		}
		return c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
		}
		if session.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// SessionFrom returns the session stored by the auth middleware, or nil.
func SessionFrom(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionKey).(*models.Session)
	return session
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
