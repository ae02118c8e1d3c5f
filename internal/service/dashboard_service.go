package service

import (
	"context"
	"time"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentAdminItems    = 5
	recentCustomerAlbum = 3
)

type CustomerDashboard struct {
	UpcomingCount int                  `json:"upcoming_count"`
	PaidCount     int                  `json:"paid_count"`
	TotalBookings int                  `json:"total_bookings"`
	NextBooking   *models.Appointment  `json:"next_booking,omitempty"`
	RecentAlbums  []models.Album       `json:"recent_albums"`
	Upcoming      []models.Appointment `json:"upcoming"`
}

type AdminStats struct {
	Users               int64 `json:"users"`
	Appointments        int64 `json:"appointments"`
	PendingAppointments int64 `json:"pending_appointments"`
	Albums              int64 `json:"albums"`
	Photos              int64 `json:"photos"`
}

type AdminDashboard struct {
	Stats              AdminStats           `json:"stats"`
	RecentAppointments []models.Appointment `json:"recent_appointments"`
	RecentAlbums       []models.Album       `json:"recent_albums"`
}

type DashboardService struct {
	profiles     repository.ProfileStore
	albums       repository.AlbumStore
	photos       repository.PhotoStore
	appointments repository.AppointmentStore
	log          *zap.Logger
	now          func() time.Time
}

func NewDashboardService(profiles repository.ProfileStore, albums repository.AlbumStore, photos repository.PhotoStore, appointments repository.AppointmentStore, log *zap.Logger) *DashboardService {
	return &DashboardService{
		profiles:     profiles,
		albums:       albums,
		photos:       photos,
		appointments: appointments,
		log:          log.Named("dashboard"),
		now:          time.Now,
	}
}

// Customer summarises the session user's bookings and albums. Fetch
// failures leave the affected part empty.
func (s *DashboardService) Customer(ctx context.Context, session *models.Session) CustomerDashboard {
	d := CustomerDashboard{
		RecentAlbums: []models.Album{},
		Upcoming:     []models.Appointment{},
	}

	appointments, err := s.appointments.ListByUser(ctx, session.UserID)
	if err != nil {
		s.log.Warn("failed to load appointments", zap.String("user_id", session.UserID), zap.Error(err))
	} else {
		p := Partition(appointments, s.now())
		d.Upcoming = p.Upcoming
		d.UpcomingCount = len(p.Upcoming)
		d.TotalBookings = len(appointments)
		for _, a := range appointments {
			if a.PaymentStatus == models.PaymentPaid {
				d.PaidCount++
			}
		}
		if len(p.Upcoming) > 0 {
			next := p.Upcoming[0]
			d.NextBooking = &next
		}
	}

	albums, err := s.albums.ListByUser(ctx, session.UserID)
	if err != nil {
		s.log.Warn("failed to load albums", zap.String("user_id", session.UserID), zap.Error(err))
	} else {
		if len(albums) > recentCustomerAlbum {
			albums = albums[:recentCustomerAlbum]
		}
		d.RecentAlbums = albums
	}
	return d
}

// Admin loads the back office counters and recent items concurrently.
// A failed query leaves its value at zero or empty.
func (s *DashboardService) Admin(ctx context.Context) AdminDashboard {
	d := AdminDashboard{
		RecentAppointments: []models.Appointment{},
		RecentAlbums:       []models.Album{},
	}

	var g errgroup.Group
	count := func(name string, dst *int64, fn func() (int64, error)) {
		g.Go(func() error {
			n, err := fn()
			if err != nil {
				s.log.Warn("dashboard count failed", zap.String("count", name), zap.Error(err))
				return nil
			}
			*dst = n
			return nil
		})
	}
	count("users", &d.Stats.Users, func() (int64, error) { return s.profiles.Count(ctx) })
	count("appointments", &d.Stats.Appointments, func() (int64, error) { return s.appointments.Count(ctx, "") })
	count("pending", &d.Stats.PendingAppointments, func() (int64, error) {
		return s.appointments.Count(ctx, models.StatusPending)
	})
	count("albums", &d.Stats.Albums, func() (int64, error) { return s.albums.Count(ctx) })
	count("photos", &d.Stats.Photos, func() (int64, error) { return s.photos.Count(ctx) })

	g.Go(func() error {
		recent, err := s.appointments.Recent(ctx, recentAdminItems)
		if err != nil {
			s.log.Warn("failed to load recent appointments", zap.Error(err))
			return nil
		}
		d.RecentAppointments = recent
		return nil
	})
	g.Go(func() error {
		recent, err := s.albums.Recent(ctx, recentAdminItems)
		if err != nil {
			s.log.Warn("failed to load recent albums", zap.Error(err))
			return nil
		}
		d.RecentAlbums = recent
		return nil
	})

	_ = g.Wait()
	return d
}
