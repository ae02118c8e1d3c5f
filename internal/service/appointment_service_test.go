package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/brightframe/studio-backend/internal/models"
	"go.uber.org/zap"
)

func TestCancelAppointment(t *testing.T) {
	seed := func() *fakeAppointments {
		return newFakeAppointments(
			models.Appointment{ID: "mine", UserID: "u1", Date: "2030-06-01", Status: models.StatusPending},
			models.Appointment{ID: "theirs", UserID: "u2", Date: "2030-06-01", Status: models.StatusPending},
			models.Appointment{ID: "done", UserID: "u1", Date: "2030-06-01", Status: models.StatusCancelled},
		)
	}

	tests := []struct {
		name       string
		id         string
		confirm    bool
		zeroRows   bool
		check      func(error) bool
		wantStatus models.AppointmentStatus
	}{
		{"success", "mine", true, false, func(err error) bool { return err == nil }, models.StatusCancelled},
		{"declined", "mine", false, false, func(err error) bool { return errors.Is(err, ErrNotConfirmed) }, models.StatusPending},
		{"other user", "theirs", true, false, func(err error) bool { return errors.Is(err, models.ErrNotFound) }, models.StatusPending},
		{"already cancelled", "done", true, false, func(err error) bool {
			var pe *models.PreconditionError
			return errors.As(err, &pe)
		}, models.StatusCancelled},
		{"no row updated", "mine", true, true, func(err error) bool {
			var re *models.RemoteError
			return errors.As(err, &re)
		}, models.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := seed()
			appts.zeroRows = tt.zeroRows
			rec := &countingMetrics{}
			svc := NewAppointmentService(appts, rec, zap.NewNop())

			err := svc.CancelAppointment(context.Background(), customer, tt.id, Confirmed(tt.confirm), NewNotificationLog())
			if !tt.check(err) {
				t.Fatalf("CancelAppointment() error = %v", err)
			}
			got, _ := appts.GetByID(context.Background(), tt.id)
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestCancelAppointmentNotifies(t *testing.T) {
	appts := newFakeAppointments(models.Appointment{ID: "mine", UserID: "u1", Status: models.StatusConfirmed})
	rec := &countingMetrics{}
	svc := NewAppointmentService(appts, rec, zap.NewNop())
	log := NewNotificationLog()

	if err := svc.CancelAppointment(context.Background(), customer, "mine", Confirmed(true), log); err != nil {
		t.Fatal(err)
	}
	if got := messages(log, models.NotifySuccess); !reflect.DeepEqual(got, []string{"Appointment cancelled successfully"}) {
		t.Fatalf("success notifications = %v", got)
	}
	if rec.cancelled != 1 {
		t.Fatalf("cancelled metric = %d", rec.cancelled)
	}
}

func TestUpdateStatus(t *testing.T) {
	appts := newFakeAppointments(models.Appointment{ID: "a", UserID: "u1", Status: models.StatusPending, PaymentStatus: models.PaymentUnpaid})
	svc := NewAppointmentService(appts, &countingMetrics{}, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), "a", models.AppointmentStatusRequest{Status: "archived"}, NewNotificationLog())
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("unknown status error = %v", err)
	}

	got, err := svc.UpdateStatus(context.Background(), "a", models.AppointmentStatusRequest{
		Status:        models.StatusConfirmed,
		PaymentStatus: models.PaymentPaid,
	}, NewNotificationLog())
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusConfirmed || got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("appointment = %+v", got)
	}

	if _, err := svc.UpdateStatus(context.Background(), "missing", models.AppointmentStatusRequest{Status: models.StatusConfirmed}, NewNotificationLog()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing appointment error = %v", err)
	}
}

func TestListAllFiltersAppointments(t *testing.T) {
	appts := newFakeAppointments(
		models.Appointment{ID: "a", Location: "Central Park", Status: models.StatusPending, Date: "2030-01-01"},
		models.Appointment{ID: "b", Location: "Studio", Status: models.StatusConfirmed, Date: "2030-01-02",
			Profile: &models.Profile{FullName: "Jane Park"}},
		models.Appointment{ID: "c", Location: "Beach", Status: models.StatusPending, Date: "2030-01-03"},
	)
	svc := NewAppointmentService(appts, &countingMetrics{}, zap.NewNop())

	if got := svc.ListAll(context.Background(), "", "park"); len(got) != 2 {
		t.Fatalf("search = %d results, want 2", len(got))
	}
	if got := svc.ListAll(context.Background(), models.StatusPending, "park"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("status + search = %+v", got)
	}
}
