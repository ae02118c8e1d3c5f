package controller

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/payment"
)

type PaymentController struct {
	paymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (c *PaymentController) CreateCheckoutSession(ctx context.Context, session *models.Session, appointmentID string) (*payment.CheckoutSession, error) {
	return c.paymentService.CreateCheckoutSession(ctx, session, appointmentID)
}

func (c *PaymentController) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	return c.paymentService.HandleWebhook(ctx, payload, signature)
}
