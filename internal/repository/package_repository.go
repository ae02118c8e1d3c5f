package repository

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{
		db: db,
	}
}

func (r *PackageRepository) GetByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]models.Package, error) {
	var packages []models.Package
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&packages).Error
	return packages, err
}
