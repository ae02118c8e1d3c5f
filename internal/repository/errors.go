package repository

import (
	"errors"

	"github.com/brightframe/studio-backend/internal/models"
	"gorm.io/gorm"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
