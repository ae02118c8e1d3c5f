package handler

import (
	"errors"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var ve *models.ValidationError
	var pe *models.PreconditionError
	var re *models.RemoteError
	switch {
	case errors.As(err, &ve), errors.Is(err, service.ErrNotConfirmed), errors.Is(err, service.ErrInvalidResetToken):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &pe):
		return fiber.StatusConflict
	case errors.As(err, &re):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotConfirmed):
		return "Confirmation required"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, service.ErrInvalidResetToken):
		return "Invalid or expired token"
	}
	return models.UserMessage(err)
}

// fail writes the error envelope together with any notifications raised
// before the failure. Gateway and unknown errors are logged with the
// request id.
func fail(c *fiber.Ctx, log *zap.Logger, err error, notes *service.NotificationLog) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	resp := models.ErrorResponse(errorMessage(err))
	if notes != nil {
		resp = resp.WithNotifications(notes.Items())
	}
	return c.Status(status).JSON(resp)
}

func success(c *fiber.Ctx, status int, data interface{}, message string, notes *service.NotificationLog) error {
	resp := models.SuccessResponse(data, message)
	if notes != nil {
		resp = resp.WithNotifications(notes.Items())
	}
	return c.Status(status).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
}

// ErrorHandler converts errors that escape a handler into the response
// envelope without leaking internal details.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				msg = "Something went wrong. Please try again."
				log.Error("server error", zap.String("request_id", requestID(c)), zap.Error(err))
			}
			return c.Status(fe.Code).JSON(models.ErrorResponse(msg))
		}
		return fail(c, log, err, nil)
	}
}
