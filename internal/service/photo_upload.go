package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxPhotoSize = 10 << 20

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadFailure is a file of the batch that did not become a photo.
type UploadFailure struct {
	Filename string `json:"filename"`
	Message  string `json:"error"`
	Err      error  `json:"-"`
}

// UploadResult lists created photos in batch order and the files that
// failed.
type UploadResult struct {
	Succeeded []models.Photo  `json:"succeeded"`
	Failed    []UploadFailure `json:"failed"`
}

var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// storePhoto validates one file, writes it and its thumbnail to the blob
// store and inserts the photo row.
func (s *AlbumService) storePhoto(ctx context.Context, albumID string, f UploadFile) (*models.Photo, error) {
	if f.Size > MaxPhotoSize {
		return nil, models.NewValidationError("file", fmt.Sprintf("%s is larger than 10 MB", f.Filename))
	}

	src, err := f.Open()
	if err != nil {
		return nil, models.NewValidationError("file", fmt.Sprintf("%s could not be read", f.Filename))
	}
	data, err := io.ReadAll(io.LimitReader(src, MaxPhotoSize+1))
	src.Close()
	if err != nil {
		return nil, models.NewValidationError("file", fmt.Sprintf("%s could not be read", f.Filename))
	}
	if len(data) > MaxPhotoSize {
		return nil, models.NewValidationError("file", fmt.Sprintf("%s is larger than 10 MB", f.Filename))
	}

	contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !utils.IsSupportedImage(contentType) {
		return nil, models.NewValidationError("file", fmt.Sprintf("%s is not a JPEG, PNG, GIF or WebP image", f.Filename))
	}

	ext := filepath.Ext(f.Filename)
	if ext == "" {
		ext = extensionByType[contentType]
	}
	name := uuid.NewString() + ext
	key := fmt.Sprintf("albums/%s/%s", albumID, name)

	if err := s.blobs.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, remote("Failed to upload photos", "upload photo", err)
	}

	photo := &models.Photo{
		AlbumID:    albumID,
		URL:        s.blobs.PublicURL(key),
		Filename:   f.Filename,
		StorageKey: key,
		MimeType:   contentType,
		FileSize:   int64(len(data)),
	}
	photo.ThumbnailURL = s.storeThumbnail(ctx, albumID, name, data)

	if err := s.photos.Create(ctx, photo); err != nil {
		s.removeBlobs(ctx, *photo)
		return nil, remote("Failed to upload photos", "insert photo", err)
	}
	return photo, nil
}

func (s *AlbumService) storeThumbnail(ctx context.Context, albumID, name string, data []byte) string {
	if s.thumbs == nil {
		return ""
	}
	thumb, err := s.thumbs.Thumbnail(bytes.NewReader(data))
	if err != nil {
		s.log.Debug("no thumbnail", zap.String("album_id", albumID), zap.String("file", name), zap.Error(err))
		return ""
	}
	key := thumbnailKey(albumID, name)
	if err := s.blobs.Upload(ctx, key, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		s.log.Warn("thumbnail upload failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return s.blobs.PublicURL(key)
}

func thumbnailKey(albumID, name string) string {
	return fmt.Sprintf("albums/%s/thumbnails/%s.jpg", albumID, strings.TrimSuffix(name, filepath.Ext(name)))
}

// removeBlobs deletes the stored files of p. Failures are only logged.
func (s *AlbumService) removeBlobs(ctx context.Context, p models.Photo) {
	if p.StorageKey == "" {
		return
	}
	if err := s.blobs.Delete(ctx, p.StorageKey); err != nil {
		s.log.Warn("blob cleanup failed", zap.String("key", p.StorageKey), zap.Error(err))
	}
	if p.ThumbnailURL == "" {
		return
	}
	// Moved photos keep the keys of the album they were uploaded to.
	name := path.Base(p.StorageKey)
	key := path.Join(path.Dir(p.StorageKey), "thumbnails", strings.TrimSuffix(name, path.Ext(name))+".jpg")
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn("blob cleanup failed", zap.String("key", key), zap.Error(err))
	}
}
