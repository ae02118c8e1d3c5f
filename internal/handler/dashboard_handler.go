package handler

import (
	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Customer(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.dashboardService.Customer(c.UserContext(), middleware.SessionFrom(c)), ""))
}

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.dashboardService.Admin(c.UserContext()), ""))
}
