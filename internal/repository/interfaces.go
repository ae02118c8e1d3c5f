// Package repository holds the persistence interfaces used by the services
// and their gorm implementations.
package repository

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/listview"
)

// ProfileStore persists user profiles.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, sort listview.SortState) ([]models.Profile, error)
	Count(ctx context.Context) (int64, error)
}

// AlbumStore persists albums. Update takes a column map so that nullable
// columns like cover_image can be cleared.
type AlbumStore interface {
	Create(ctx context.Context, album *models.Album) error
	GetByID(ctx context.Context, id string) (*models.Album, error)
	ListByUser(ctx context.Context, userID string) ([]models.Album, error)
	List(ctx context.Context, sort listview.SortState) ([]models.Album, error)
	Recent(ctx context.Context, limit int) ([]models.Album, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// PhotoStore persists photos. ListByAlbum orders by created_at ascending.
type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	ListByAlbum(ctx context.Context, albumID string) ([]models.Photo, error)
	UpdateCaption(ctx context.Context, id, caption string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	// DeleteMany removes the given photos of one album in a single statement.
	DeleteMany(ctx context.Context, albumID string, ids []string) error
	DeleteByAlbum(ctx context.Context, albumID string) error
	// MoveMany reassigns the given photos of fromAlbumID to toAlbumID.
	MoveMany(ctx context.Context, fromAlbumID, toAlbumID string, ids []string) error
	CountByAlbum(ctx context.Context, albumID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// AppointmentStore persists appointments.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByStripeSession(ctx context.Context, sessionID string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	List(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	Recent(ctx context.Context, limit int) ([]models.Appointment, error)
	// UpdateStatusForUser is scoped by both ids and returns the number of
	// rows changed.
	UpdateStatusForUser(ctx context.Context, id, userID string, status models.AppointmentStatus) (int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Count(ctx context.Context, status models.AppointmentStatus) (int64, error)
}

// PackageStore reads session packages.
type PackageStore interface {
	ListActive(ctx context.Context) ([]models.Package, error)
	GetByID(ctx context.Context, id string) (*models.Package, error)
}

// ContactStore persists contact form messages.
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

var (
	_ ProfileStore     = (*ProfileRepository)(nil)
	_ AlbumStore       = (*AlbumRepository)(nil)
	_ PhotoStore       = (*PhotoRepository)(nil)
	_ AppointmentStore = (*AppointmentRepository)(nil)
	_ PackageStore     = (*PackageRepository)(nil)
	_ ContactStore     = (*ContactRepository)(nil)
)
