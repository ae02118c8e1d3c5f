package handler

import (
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type PackageHandler struct {
	packageService *service.PackageService
}

func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
	}
}

func (h *PackageHandler) GetActivePackages(c *fiber.Ctx) error {
	packages := h.packageService.ListActive(c.UserContext())
	return c.JSON(models.SuccessResponse(packages, "Packages retrieved successfully"))
}
