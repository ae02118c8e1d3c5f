package handler

import (
	"path/filepath"
	"strings"

	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// SPAHandler serves the browser client and answers route guard checks for
// it.
type SPAHandler struct {
	staticDir string
}

func NewSPAHandler(staticDir string) *SPAHandler {
	return &SPAHandler{staticDir: staticDir}
}

type Navigation struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Navigate reports whether the caller may open the client route ?path=
// and where to go instead when not.
func (h *SPAHandler) Navigate(c *fiber.Ctx) error {
	path := c.Query("path", "/")
	redirect, ok := middleware.Guard(path, middleware.SessionFrom(c))
	return c.JSON(models.SuccessResponse(Navigation{
		Path:     path,
		Allowed:  ok,
		Redirect: redirect,
	}, ""))
}

// Index serves index.html for every client route. Unknown API paths get
// 404.
func (h *SPAHandler) Index(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return fiber.ErrNotFound
	}
	return c.SendFile(filepath.Join(h.staticDir, "index.html"))
}
