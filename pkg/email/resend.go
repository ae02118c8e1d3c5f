package email

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer delivers one message.
type Mailer interface {
	Send(req *resend.SendEmailRequest) error
}

type resendMailer struct {
	client *resend.Client
}

func (m resendMailer) Send(req *resend.SendEmailRequest) error {
	_, err := m.client.Emails.Send(req)
	return err
}

type EmailService struct {
	mailer      Mailer
	from        string
	fromName    string
	siteURL     string
	studioInbox string
	templates   *template.Template
	logger      *zap.Logger
}

// NewEmailService returns a service that sends through Resend. Without an
// API key mail is logged and dropped.
func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	var mailer Mailer
	if cfg.Email.ResendAPIKey != "" {
		mailer = resendMailer{client: resend.NewClient(cfg.Email.ResendAPIKey)}
	}
	return NewEmailServiceWithMailer(mailer, cfg, logger)
}

func NewEmailServiceWithMailer(mailer Mailer, cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		mailer:      mailer,
		from:        cfg.Email.FromAddress,
		fromName:    cfg.Email.FromName,
		siteURL:     cfg.PublicSiteURL,
		studioInbox: cfg.Email.StudioInbox,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:      logger.Named("email"),
	}
}

func (s *EmailService) SendPasswordResetEmail(email, resetToken string) error {
	return s.send(email, "Reset your password", "reset-password.html", map[string]interface{}{
		"ResetLink": s.siteURL + "/reset-password?token=" + resetToken,
		"Email":     email,
	}, "")
}

type BookingEmail struct {
	To          string
	FullName    string
	PackageName string
	Date        string
	Time        string
	Location    string
}

func (s *EmailService) SendBookingReceived(b BookingEmail) error {
	return s.send(b.To, "We received your booking", "booking-received.html", map[string]interface{}{
		"FullName":     b.FullName,
		"PackageName":  b.PackageName,
		"Date":         b.Date,
		"Time":         b.Time,
		"Location":     b.Location,
		"BookingsLink": s.siteURL + "/my-bookings",
	}, "")
}

type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ForwardContactMessage sends a copy of a contact form message to the
// studio inbox, with Reply-To set to the sender.
func (s *EmailService) ForwardContactMessage(m ContactEmail) error {
	if s.studioInbox == "" {
		return nil
	}
	subject := "New contact message"
	if m.Subject != "" {
		subject += ": " + m.Subject
	}
	return s.send(s.studioInbox, subject, "contact-message.html", map[string]interface{}{
		"Name":    m.Name,
		"Email":   m.Email,
		"Phone":   m.Phone,
		"Subject": m.Subject,
		"Message": m.Message,
	}, m.Email)
}

func (s *EmailService) send(to, subject, templateName string, data map[string]interface{}, replyTo string) error {
	data["Year"] = time.Now().Year()
	data["StudioName"] = s.fromName

	html, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error("template failed", zap.String("template", templateName), zap.Error(err))
		return err
	}

	if s.mailer == nil {
		s.logger.Info("email disabled, dropping message", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	req := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if replyTo != "" {
		req.ReplyTo = replyTo
	}

	if err := s.mailer.Send(req); err != nil {
		s.logger.Error("send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	s.logger.Info("sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
