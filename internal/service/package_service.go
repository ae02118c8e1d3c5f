package service

import (
	"context"
	"errors"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"go.uber.org/zap"
)

type PackageService struct {
	packages repository.PackageStore
	log      *zap.Logger
}

func NewPackageService(packages repository.PackageStore, log *zap.Logger) *PackageService {
	return &PackageService{
		packages: packages,
		log:      log.Named("packages"),
	}
}

// ListActive returns the bookable packages by ascending price. Fetch
// failures yield an empty list.
func (s *PackageService) ListActive(ctx context.Context) []models.Package {
	packages, err := s.packages.ListActive(ctx)
	if err != nil {
		s.log.Warn("failed to load packages", zap.Error(err))
		return []models.Package{}
	}
	return packages
}

// GetActive returns a package that can still be booked.
func (s *PackageService) GetActive(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("package_id", "Please select a package")
		}
		return nil, remote("Failed to load packages", "get package", err)
	}
	if !pkg.IsActive {
		return nil, models.NewValidationError("package_id", "This package is no longer available")
	}
	return pkg, nil
}
