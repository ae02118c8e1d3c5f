package service

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/captcha"
	"github.com/brightframe/studio-backend/pkg/email"
	"github.com/brightframe/studio-backend/pkg/utils"
	"go.uber.org/zap"
)

// ContactForwarder copies contact messages to the studio inbox.
type ContactForwarder interface {
	ForwardContactMessage(m email.ContactEmail) error
}

type ContactService struct {
	messages  repository.ContactStore
	captcha   captcha.Verifier
	forwarder ContactForwarder
	sanitizer *utils.Sanitizer
	log       *zap.Logger
}

func NewContactService(messages repository.ContactStore, verifier captcha.Verifier, forwarder ContactForwarder, sanitizer *utils.Sanitizer, log *zap.Logger) *ContactService {
	return &ContactService{
		messages:  messages,
		captcha:   verifier,
		forwarder: forwarder,
		sanitizer: sanitizer,
		log:       log.Named("contact"),
	}
}

// Submit checks the captcha, stores the message with status "new" and
// forwards a copy by email. A failed forward is logged only.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest, remoteIP string, n Notifier) (*models.ContactMessage, error) {
	ok, err := s.captcha.Verify(ctx, req.CaptchaToken, remoteIP)
	if err != nil {
		s.log.Warn("captcha verification failed", zap.Error(err))
	}
	if !ok {
		return nil, fail(n, models.NewValidationError("captcha_token", "Please complete the captcha"))
	}

	msg := &models.ContactMessage{
		Name:    s.sanitizer.Text(req.Name),
		Email:   req.Email,
		Phone:   s.sanitizer.Text(req.Phone),
		Subject: s.sanitizer.Text(req.Subject),
		Message: s.sanitizer.Text(req.Message),
		Status:  "new",
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, fail(n, models.NewValidationError("", "Please fill in all required fields"))
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fail(n, remote("There was an error sending your message. Please try again.", "create contact message", err))
	}

	if err := s.forwarder.ForwardContactMessage(email.ContactEmail{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
	}); err != nil {
		s.log.Warn("contact forward failed", zap.String("message_id", msg.ID), zap.Error(err))
	}

	n.Success("Your message has been sent successfully. We'll get back to you soon.")
	return msg, nil
}

// List returns stored messages, newest first. Fetch failures yield an
// empty list.
func (s *ContactService) List(ctx context.Context) []models.ContactMessage {
	list, err := s.messages.List(ctx)
	if err != nil {
		s.log.Warn("failed to load contact messages", zap.Error(err))
		return []models.ContactMessage{}
	}
	return list
}
