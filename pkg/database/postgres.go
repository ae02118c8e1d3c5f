package database

import (
	"fmt"
	"time"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultPackages are inserted on first start when no package with the
// same name exists.
var DefaultPackages = []models.Package{
	{
		Name:          "Mini Session",
		Description:   "A short session for headshots or a quick family update.",
		Price:         149,
		DurationHours: 1,
		Deliverables:  []string{"15 edited photos", "Online gallery", "Print release"},
		IsActive:      true,
	},
	{
		Name:          "Portrait Session",
		Description:   "Individual, couple or family portraits at the studio or on location.",
		Price:         299,
		DurationHours: 2,
		Deliverables:  []string{"40 edited photos", "Online gallery", "Print release", "2 outfit changes"},
		IsActive:      true,
	},
	{
		Name:          "Event Coverage",
		Description:   "Coverage for parties, corporate events and milestones.",
		Price:         799,
		DurationHours: 4,
		Deliverables:  []string{"200+ edited photos", "Online gallery", "Highlights slideshow"},
		IsActive:      true,
	},
	{
		Name:          "Wedding Day",
		Description:   "Full day wedding coverage from preparation to first dance.",
		Price:         2499,
		DurationHours: 8,
		Deliverables:  []string{"500+ edited photos", "Online gallery", "Second shooter", "Printed album"},
		IsActive:      true,
	},
}

func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database ready")
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Package{},
		&models.Album{},
		&models.Photo{},
		&models.Appointment{},
		&models.ContactMessage{},
	)
	if err != nil {
		return err
	}

	for _, pkg := range DefaultPackages {
		pkg := pkg
		var count int64
		if err := db.Model(&models.Package{}).Where("name = ?", pkg.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&pkg).Error; err != nil {
				return fmt.Errorf("failed to add package %q: %w", pkg.Name, err)
			}
		}
	}
	return nil
}
