package handler

import (
	"time"

	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookingService     *service.BookingService
	appointmentService *service.AppointmentService
	packageService     *service.PackageService
	validator          *utils.Validator
	log                *zap.Logger
}

func NewBookingHandler(
	bookingService *service.BookingService,
	appointmentService *service.AppointmentService,
	packageService *service.PackageService,
	validator *utils.Validator,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingService:     bookingService,
		appointmentService: appointmentService,
		packageService:     packageService,
		validator:          validator,
		log:                log,
	}
}

// ListMyBookings returns the caller's appointments split into upcoming
// and past.
func (h *BookingHandler) ListMyBookings(c *fiber.Ctx) error {
	list := h.appointmentService.ListForUser(c.UserContext(), middleware.SessionFrom(c))
	return c.JSON(models.SuccessResponse(service.Partition(list, time.Now()), ""))
}

// CreateBooking runs the whole booking flow for one submitted form.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req models.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	pkg, err := h.packageService.GetActive(c.UserContext(), req.PackageID)
	if err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	wizard := h.bookingService.NewWizard(middleware.SessionFrom(c), notes)
	wizard.SelectPackage(*pkg)
	wizard.SetDetails(req.BookingDetails)
	if err := wizard.Continue(); err != nil {
		return fail(c, h.log, err, notes)
	}
	res, err := wizard.Submit(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, notes)
	}

	resp := models.SuccessResponse(res.Appointment, "").
		WithNotifications(notes.Items()).
		WithRedirect(res.NavigateTo)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	var req models.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notes := service.NewNotificationLog()
	err := h.appointmentService.CancelAppointment(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), service.Confirmed(req.Confirm), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, nil, "", notes)
}

// ListAppointments is the back office list with ?status= and ?q=.
func (h *BookingHandler) ListAppointments(c *fiber.Ctx) error {
	status := models.AppointmentStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return fail(c, h.log, models.NewValidationError("status", "Unknown appointment status"), nil)
	}
	list := h.appointmentService.ListAll(c.UserContext(), status, c.Query("q"))
	return c.JSON(models.SuccessResponse(list, ""))
}

func (h *BookingHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	var req models.AppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notes := service.NewNotificationLog()
	appt, err := h.appointmentService.UpdateStatus(c.UserContext(), c.Params("id"), req, notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, appt, "", notes)
}
