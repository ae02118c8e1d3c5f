package repository

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/listview"
	"gorm.io/gorm"
)

var albumSortColumns = map[string]string{
	"title":       "albums.title",
	"photo_count": "albums.photo_count",
	"created_at":  "albums.created_at",
	"updated_at":  "albums.updated_at",
	"owner":       `"Owner"."full_name"`,
}

type AlbumRepository struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

func (r *AlbumRepository) Create(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&album).Error
	if err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

func (r *AlbumRepository) ListByUser(ctx context.Context, userID string) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&albums).Error
	return albums, err
}

func (r *AlbumRepository) List(ctx context.Context, sort listview.SortState) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.WithContext(ctx).
		Joins("Owner").
		Order(sort.OrderClause(albumSortColumns, "albums.created_at DESC")).
		Find(&albums).Error
	return albums, err
}

func (r *AlbumRepository) Recent(ctx context.Context, limit int) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Find(&albums).Error
	return albums, err
}

func (r *AlbumRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Album{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Album{}).Error
}

func (r *AlbumRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Album{}).Count(&count).Error
	return count, err
}
