package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"github.com/brightframe/studio-backend/pkg/payment"
	"go.uber.org/zap"
)

var ErrPaymentsDisabled = models.NewPreconditionError("Online payment is not available")

// PaymentGateway is the part of the Stripe client the service uses.
type PaymentGateway interface {
	Enabled() bool
	CreateCheckoutSession(req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error)
}

type PaymentService struct {
	gateway      PaymentGateway
	appointments repository.AppointmentStore
	metrics      metrics.Recorder
	siteURL      string
	log          *zap.Logger
}

func NewPaymentService(gateway PaymentGateway, appointments repository.AppointmentStore, rec metrics.Recorder, cfg *config.Config, log *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway:      gateway,
		appointments: appointments,
		metrics:      rec,
		siteURL:      strings.TrimRight(cfg.PublicSiteURL, "/"),
		log:          log.Named("payments"),
	}
}

// CreateCheckoutSession starts a Stripe checkout for one of the session
// user's unpaid appointments and records the Stripe session id on it.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, session *models.Session, appointmentID string) (*payment.CheckoutSession, error) {
	if !s.gateway.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, remote("Failed to start payment", "get appointment", err)
	}
	if appt.UserID != session.UserID {
		return nil, models.ErrNotFound
	}
	switch {
	case appt.Status == models.StatusCancelled:
		return nil, models.NewPreconditionError("This appointment is cancelled")
	case appt.PaymentStatus == models.PaymentPaid:
		return nil, models.NewPreconditionError("This appointment is already paid")
	case appt.Package == nil:
		return nil, remote("Failed to start payment", "get appointment", fmt.Errorf("appointment %s has no package", appt.ID))
	}

	checkout, err := s.gateway.CreateCheckoutSession(payment.CheckoutRequest{
		CustomerEmail: session.Email,
		ProductName:   appt.Package.Name,
		Description:   fmt.Sprintf("%s on %s at %s", appt.Package.Name, appt.Date, appt.Time),
		Amount:        appt.Package.Price,
		SuccessURL:    s.siteURL + "/my-bookings?payment=success",
		CancelURL:     s.siteURL + "/my-bookings?payment=cancelled",
		Metadata: map[string]string{
			"appointment_id": appt.ID,
			"user_id":        session.UserID,
		},
	})
	if err != nil {
		return nil, remote("Failed to start payment", "create checkout session", err)
	}

	if err := s.appointments.Update(ctx, appt.ID, map[string]interface{}{
		"stripe_session_id": checkout.ID,
	}); err != nil {
		return nil, remote("Failed to start payment", "update appointment", err)
	}
	s.log.Info("checkout session created",
		zap.String("appointment_id", appt.ID),
		zap.String("session_id", checkout.ID))

	return checkout, nil
}

// HandleWebhook verifies a Stripe event and marks the matching appointment
// paid when its checkout completes. Other event types are ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return models.NewValidationError("", err.Error())
	}
	if event.Type != payment.EventCheckoutCompleted {
		s.log.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
	if !event.Paid {
		s.log.Info("checkout completed without payment", zap.String("session_id", event.SessionID))
		return nil
	}

	appt, err := s.appointments.GetByStripeSession(ctx, event.SessionID)
	if errors.Is(err, models.ErrNotFound) {
		if id := event.Metadata["appointment_id"]; id != "" {
			appt, err = s.appointments.GetByID(ctx, id)
		}
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.log.Warn("webhook for unknown appointment", zap.String("session_id", event.SessionID))
			return nil
		}
		return remote("", "get appointment", err)
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil
	}

	if err := s.appointments.Update(ctx, appt.ID, map[string]interface{}{
		"payment_status":    models.PaymentPaid,
		"stripe_session_id": event.SessionID,
	}); err != nil {
		return remote("", "update appointment", err)
	}
	s.metrics.PaymentCompleted()
	s.log.Info("appointment paid", zap.String("appointment_id", appt.ID))
	return nil
}
