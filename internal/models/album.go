package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Album is a client's photo collection. PhotoCount caches the number of
// photos rows for the album and CoverImage, when set, is the URL of one of
// them.
type Album struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CoverImage  *string   `json:"cover_image"`
	DownloadURL string    `json:"download_url"`
	PhotoCount  int       `json:"photo_count" gorm:"not null;default:0"`
	IsShared    bool      `json:"is_shared" gorm:"not null;default:false"`
	Owner       *Profile  `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// HasCover reports whether a cover URL is set.
func (a *Album) HasCover() bool {
	return a.CoverImage != nil && *a.CoverImage != ""
}

type AlbumInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	DownloadURL string `json:"download_url" validate:"omitempty,url"`
}

type AlbumDetail struct {
	Album        Album   `json:"album"`
	Photos       []Photo `json:"photos"`
	CoverPhotoID string  `json:"cover_photo_id,omitempty"`
	Page         int     `json:"page,omitempty"`
	TotalPages   int     `json:"total_pages,omitempty"`
	Total        int     `json:"total,omitempty"`
}
