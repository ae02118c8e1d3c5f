// Package metrics exposes Prometheus counters for studio operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what the services report to.
type Recorder interface {
	PhotosUploaded(n int)
	PhotoUploadFailed(reason string)
	PhotosDeleted(n int)
	BookingCreated()
	BookingCancelled()
	PaymentCompleted()
}

type Metrics struct {
	photosUploaded    prometheus.Counter
	uploadFailures    *prometheus.CounterVec
	photosDeleted     prometheus.Counter
	bookingsCreated   prometheus.Counter
	bookingsCancelled prometheus.Counter
	paymentsCompleted prometheus.Counter
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		photosUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "photos_uploaded_total",
			Help:      "Photos stored successfully.",
		}),
		uploadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "photo_upload_failures_total",
			Help:      "Photos rejected or failed during upload, by reason.",
		}, []string{"reason"}),
		photosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "photos_deleted_total",
			Help:      "Photos deleted from albums.",
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "bookings_created_total",
			Help:      "Appointments submitted through the booking flow.",
		}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "bookings_cancelled_total",
			Help:      "Appointments cancelled by their owner.",
		}),
		paymentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "payments_completed_total",
			Help:      "Appointments marked paid by the payment webhook.",
		}),
	}
	reg.MustRegister(
		m.photosUploaded,
		m.uploadFailures,
		m.photosDeleted,
		m.bookingsCreated,
		m.bookingsCancelled,
		m.paymentsCompleted,
	)
	return m
}

func (m *Metrics) PhotosUploaded(n int)            { m.photosUploaded.Add(float64(n)) }
func (m *Metrics) PhotoUploadFailed(reason string) { m.uploadFailures.WithLabelValues(reason).Inc() }
func (m *Metrics) PhotosDeleted(n int)             { m.photosDeleted.Add(float64(n)) }
func (m *Metrics) BookingCreated()                 { m.bookingsCreated.Inc() }
func (m *Metrics) BookingCancelled()               { m.bookingsCancelled.Inc() }
func (m *Metrics) PaymentCompleted()               { m.paymentsCompleted.Inc() }

// Nop discards everything.
type Nop struct{}

func (Nop) PhotosUploaded(int)       {}
func (Nop) PhotoUploadFailed(string) {}
func (Nop) PhotosDeleted(int)        {}
func (Nop) BookingCreated()          {}
func (Nop) BookingCancelled()        {}
func (Nop) PaymentCompleted()        {}

var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = Nop{}
)
