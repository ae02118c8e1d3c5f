package service

import (
	"context"
	"errors"
	"time"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/listview"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"go.uber.org/zap"
)

type Partitioned struct {
	Upcoming  []models.Appointment `json:"upcoming"`
	Past      []models.Appointment `json:"past"`
	Cancelled []models.Appointment `json:"cancelled"`
}

// Partition sorts appointments into upcoming (on or after now and not
// cancelled), past (before now or completed) and cancelled. Dates are read
// as UTC midnight, so an appointment can be in more than one bucket and an
// unparsable date is neither upcoming nor past.
func Partition(appointments []models.Appointment, now time.Time) Partitioned {
	p := Partitioned{
		Upcoming:  []models.Appointment{},
		Past:      []models.Appointment{},
		Cancelled: []models.Appointment{},
	}
	for _, a := range appointments {
		day, err := a.Day()
		valid := err == nil
		if valid && !day.Before(now) && a.Status != models.StatusCancelled {
			p.Upcoming = append(p.Upcoming, a)
		}
		if (valid && day.Before(now)) || a.Status == models.StatusCompleted {
			p.Past = append(p.Past, a)
		}
		if a.Status == models.StatusCancelled {
			p.Cancelled = append(p.Cancelled, a)
		}
	}
	return p
}

type AppointmentService struct {
	appointments repository.AppointmentStore
	metrics      metrics.Recorder
	log          *zap.Logger
}

func NewAppointmentService(appointments repository.AppointmentStore, rec metrics.Recorder, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		metrics:      rec,
		log:          log.Named("appointments"),
	}
}

// ListForUser returns the session user's appointments by date. Fetch
// failures yield an empty list.
func (s *AppointmentService) ListForUser(ctx context.Context, session *models.Session) []models.Appointment {
	list, err := s.appointments.ListByUser(ctx, session.UserID)
	if err != nil {
		s.log.Warn("failed to load appointments", zap.String("user_id", session.UserID), zap.Error(err))
		return []models.Appointment{}
	}
	return list
}

// CancelAppointment cancels one of the session user's appointments after
// confirmation. The update is scoped by appointment and user id.
func (s *AppointmentService) CancelAppointment(ctx context.Context, session *models.Session, id string, c Confirmer, n Notifier) error {
	n = WithLogging(n, s.log, zap.String("appointment_id", id), zap.String("user_id", session.UserID))

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fail(n, models.ErrNotFound)
		}
		return fail(n, remote("Failed to cancel appointment", "get appointment", err))
	}
	if appt.UserID != session.UserID {
		return fail(n, models.ErrNotFound)
	}
	if appt.Status == models.StatusCancelled {
		return fail(n, models.NewPreconditionError("This appointment is already cancelled"))
	}
	if !c.Confirm("Are you sure you want to cancel this appointment?") {
		return ErrNotConfirmed
	}

	rows, err := s.appointments.UpdateStatusForUser(ctx, id, session.UserID, models.StatusCancelled)
	if err != nil {
		return fail(n, remote("Failed to cancel appointment", "cancel appointment", err))
	}
	if rows == 0 {
		return fail(n, remote("Failed to cancel appointment", "cancel appointment", models.ErrNotFound))
	}

	s.metrics.BookingCancelled()
	n.Success("Appointment cancelled successfully")
	return nil
}

// ListAll returns appointments for the back office, optionally limited to
// one status and filtered by customer, package or location.
func (s *AppointmentService) ListAll(ctx context.Context, status models.AppointmentStatus, query string) []models.Appointment {
	list, err := s.appointments.List(ctx, status)
	if err != nil {
		s.log.Warn("failed to load appointments", zap.Error(err))
		return []models.Appointment{}
	}
	return listview.Filter(list, query, func(a models.Appointment) []string {
		fields := []string{a.Location, a.ServiceType, a.Date}
		if a.Profile != nil {
			fields = append(fields, a.Profile.FullName, a.Profile.Email)
		}
		if a.Package != nil {
			fields = append(fields, a.Package.Name)
		}
		return fields
	})
}

// UpdateStatus applies a back office status or payment change.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, req models.AppointmentStatusRequest, n Notifier) (*models.Appointment, error) {
	n = WithLogging(n, s.log, zap.String("appointment_id", id))

	fields := map[string]interface{}{}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fail(n, models.NewValidationError("status", "Unknown appointment status"))
		}
		fields["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		if !req.PaymentStatus.Valid() {
			return nil, fail(n, models.NewValidationError("payment_status", "Unknown payment status"))
		}
		fields["payment_status"] = req.PaymentStatus
	}
	if len(fields) == 0 {
		return nil, fail(n, models.NewValidationError("", "Nothing to update"))
	}

	if err := s.appointments.Update(ctx, id, fields); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fail(n, models.ErrNotFound)
		}
		return nil, fail(n, remote("Failed to update appointment", "update appointment", err))
	}
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fail(n, remote("Failed to update appointment", "get appointment", err))
	}
	n.Success("Appointment updated successfully")
	return appt, nil
}
