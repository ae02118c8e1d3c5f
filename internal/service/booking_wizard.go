package service

import (
	"context"
	"strings"
	"time"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/email"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"go.uber.org/zap"
)

const DefaultServiceType = "portrait"

type BookingStep int

const (
	StepSelectPackage BookingStep = iota + 1
	StepScheduleDetails
	StepConfirm
	StepSubmitted
)

func (s BookingStep) String() string {
	switch s {
	case StepSelectPackage:
		return "select_package"
	case StepScheduleDetails:
		return "schedule_details"
	case StepConfirm:
		return "confirm"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// BookingMailer sends the booking confirmation to the customer.
type BookingMailer interface {
	SendBookingReceived(b email.BookingEmail) error
}

type BookingResult struct {
	Appointment models.Appointment `json:"appointment"`
	NavigateTo  string             `json:"navigate_to"`
}

type BookingService struct {
	appointments repository.AppointmentStore
	mailer       BookingMailer
	metrics      metrics.Recorder
	log          *zap.Logger
}

func NewBookingService(appointments repository.AppointmentStore, mailer BookingMailer, rec metrics.Recorder, log *zap.Logger) *BookingService {
	return &BookingService{
		appointments: appointments,
		mailer:       mailer,
		metrics:      rec,
		log:          log.Named("booking"),
	}
}

// NewWizard starts a booking flow for the session user at the package
// selection step.
func (s *BookingService) NewWizard(session *models.Session, n Notifier) *BookingWizard {
	return &BookingWizard{
		svc:      s,
		session:  session,
		notifier: WithLogging(n, s.log, zap.String("user_id", session.UserID)),
		step:     StepSelectPackage,
		details:  models.BookingDetails{ServiceType: DefaultServiceType},
	}
}

// BookingWizard is the three step booking flow: package, schedule details,
// confirmation. Going back never clears entered data.
type BookingWizard struct {
	svc      *BookingService
	session  *models.Session
	notifier Notifier

	step    BookingStep
	pkg     *models.Package
	details models.BookingDetails
}

func (w *BookingWizard) Step() BookingStep             { return w.step }
func (w *BookingWizard) Details() models.BookingDetails { return w.details }

func (w *BookingWizard) Package() (models.Package, bool) {
	if w.pkg == nil {
		return models.Package{}, false
	}
	return *w.pkg, true
}

// SelectPackage records the package and moves to the schedule step.
func (w *BookingWizard) SelectPackage(pkg models.Package) {
	if w.step == StepSubmitted {
		return
	}
	p := pkg
	w.pkg = &p
	w.step = StepScheduleDetails
}

func (w *BookingWizard) SetDetails(d models.BookingDetails) {
	if w.step == StepSubmitted {
		return
	}
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.Location = strings.TrimSpace(d.Location)
	if d.ServiceType == "" {
		d.ServiceType = DefaultServiceType
	}
	w.details = d
}

// Continue moves from the schedule step to confirmation once date, time
// and location are filled in. On a validation error the step does not
// change.
func (w *BookingWizard) Continue() error {
	switch w.step {
	case StepSelectPackage:
		return fail(w.notifier, models.NewValidationError("package_id", "Please select a package"))
	case StepScheduleDetails:
	default:
		return nil
	}
	d := w.details
	if d.Date == "" || d.Time == "" || d.Location == "" {
		return fail(w.notifier, models.NewValidationError("", "Please fill in all required fields"))
	}
	if _, err := time.Parse(models.DateLayout, d.Date); err != nil {
		return fail(w.notifier, models.NewValidationError("date", "Please choose a valid date"))
	}
	w.step = StepConfirm
	return nil
}

func (w *BookingWizard) Back() {
	switch w.step {
	case StepConfirm:
		w.step = StepScheduleDetails
	case StepScheduleDetails:
		w.step = StepSelectPackage
	}
}

// Submit creates the appointment as pending and unpaid. On failure the
// wizard stays on the confirmation step.
func (w *BookingWizard) Submit(ctx context.Context) (*BookingResult, error) {
	if w.step != StepConfirm {
		return nil, fail(w.notifier, models.NewPreconditionError("Please review your booking before submitting"))
	}

	appt := &models.Appointment{
		UserID:        w.session.UserID,
		PackageID:     w.pkg.ID,
		Date:          w.details.Date,
		Time:          w.details.Time,
		Location:      w.details.Location,
		Notes:         w.details.Notes,
		ServiceType:   w.details.ServiceType,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentUnpaid,
	}
	if err := w.svc.appointments.Create(ctx, appt); err != nil {
		return nil, fail(w.notifier, remote("Failed to submit booking request", "create appointment", err))
	}

	w.step = StepSubmitted
	w.svc.metrics.BookingCreated()
	w.notifier.Success("Booking request submitted successfully!")

	if w.svc.mailer != nil {
		err := w.svc.mailer.SendBookingReceived(email.BookingEmail{
			To:          w.session.Email,
			FullName:    w.session.FullName,
			PackageName: w.pkg.Name,
			Date:        appt.Date,
			Time:        appt.Time,
			Location:    appt.Location,
		})
		if err != nil {
			w.svc.log.Warn("booking email failed", zap.String("appointment_id", appt.ID), zap.Error(err))
		}
	}

	appt.Package = w.pkg
	return &BookingResult{Appointment: *appt, NavigateTo: "/my-bookings"}, nil
}
