package repository

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{
		db: db,
	}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoRepository) ListByAlbum(ctx context.Context, albumID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("created_at ASC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) UpdateCaption(ctx context.Context, id, caption string) error {
	return r.updateColumn(ctx, id, "caption", caption)
}

func (r *PhotoRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return r.updateColumn(ctx, id, "is_favorite", favorite)
}

func (r *PhotoRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Photo{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PhotoRepository) DeleteMany(ctx context.Context, albumID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("album_id = ? AND id IN ?", albumID, ids).
		Delete(&models.Photo{}).Error
}

func (r *PhotoRepository) DeleteByAlbum(ctx context.Context, albumID string) error {
	return r.db.WithContext(ctx).Where("album_id = ?", albumID).Delete(&models.Photo{}).Error
}

func (r *PhotoRepository) MoveMany(ctx context.Context, fromAlbumID, toAlbumID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("album_id = ? AND id IN ?", fromAlbumID, ids).
		Update("album_id", toAlbumID).Error
}

func (r *PhotoRepository) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).Where("album_id = ?", albumID).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).Count(&count).Error
	return count, err
}
