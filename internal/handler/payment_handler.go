package handler

import (
	"github.com/brightframe/studio-backend/internal/controller"
	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentController *controller.PaymentController
	log               *zap.Logger
}

func NewPaymentHandler(paymentController *controller.PaymentController, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentController: paymentController,
		log:               log,
	}
}

// CreateCheckoutSession starts a Stripe checkout for one of the caller's
// appointments.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	session, err := h.paymentController.CreateCheckoutSession(c.UserContext(), middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(models.SuccessResponse(session, "").WithRedirect(session.URL))
}

func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	if err := h.paymentController.HandleStripeWebhook(c.UserContext(), payload, signature); err != nil {
		h.log.Warn("stripe webhook rejected",
			zap.Int("payload_bytes", len(payload)),
			zap.Error(err))
		return fail(c, h.log, err, nil)
	}

	return c.SendStatus(fiber.StatusOK)
}
