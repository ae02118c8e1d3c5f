package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	AlbumID      string    `json:"album_id" gorm:"type:uuid;not null;index"`
	URL          string    `json:"url" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Filename     string    `json:"filename" gorm:"not null"`
	StorageKey   string    `json:"-" gorm:"not null"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	Caption      string    `json:"caption"`
	IsFavorite   bool      `json:"is_favorite" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CaptionRequest struct {
	Caption string `json:"caption" validate:"max=500"`
}

type CoverRequest struct {
	PhotoID string `json:"photo_id" validate:"required"`
}

type MovePhotosRequest struct {
	PhotoIDs      []string `json:"photo_ids" validate:"required,min=1,dive,required"`
	TargetAlbumID string   `json:"target_album_id" validate:"required"`
}

type DeletePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" validate:"required,min=1,dive,required"`
	Confirm  bool     `json:"confirm"`
}
