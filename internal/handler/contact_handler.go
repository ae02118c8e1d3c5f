package handler

import (
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *service.ContactService
	validator      *utils.Validator
	log            *zap.Logger
}

func NewContactHandler(contactService *service.ContactService, validator *utils.Validator, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator,
		log:            log,
	}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	if _, err := h.contactService.Submit(c.UserContext(), req, c.IP(), notes); err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusCreated, nil, "", notes)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.contactService.List(c.UserContext()), ""))
}
