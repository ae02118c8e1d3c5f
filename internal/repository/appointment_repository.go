package repository

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{
		db: db,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Preload("Package").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) GetByStripeSession(ctx context.Context, sessionID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Where("stripe_session_id = ?", sessionID).First(&appointment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&appointments).Error
	return appointments, err
}

// List returns every appointment, or only those with status when it is set.
func (r *AppointmentRepository) List(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	q := r.db.WithContext(ctx).Preload("Package").Preload("Profile")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("date DESC").Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) Recent(ctx context.Context, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Profile").
		Order("created_at DESC").
		Limit(limit).
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) UpdateStatusForUser(ctx context.Context, id, userID string, status models.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *AppointmentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) Count(ctx context.Context, status models.AppointmentStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}
