package repository

import (
	"context"
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/listview"
	"gorm.io/gorm"
)

var profileSortColumns = map[string]string{
	"full_name":  "full_name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	profile.Email = strings.ToLower(profile.Email)
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Model(profile).Updates(map[string]interface{}{
		"full_name": profile.FullName,
		"phone":     profile.Phone,
	}).Error
}

func (r *ProfileRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *ProfileRepository) List(ctx context.Context, sort listview.SortState) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Order(sort.OrderClause(profileSortColumns, "created_at DESC")).
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error
	return count, err
}
