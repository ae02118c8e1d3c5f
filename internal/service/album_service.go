package service

import (
	"context"
	"errors"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/imaging"
	"github.com/brightframe/studio-backend/pkg/listview"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"github.com/brightframe/studio-backend/pkg/qrcode"
	"github.com/brightframe/studio-backend/pkg/storage"
	"github.com/brightframe/studio-backend/pkg/utils"
	"go.uber.org/zap"
)

const shareQRSize = 512

type AlbumService struct {
	albums      repository.AlbumStore
	photos      repository.PhotoStore
	blobs       storage.BlobStore
	thumbs      imaging.Thumbnailer
	metrics     metrics.Recorder
	sanitizer   *utils.Sanitizer
	qr          *qrcode.QRService
	log         *zap.Logger
	concurrency int
}

func NewAlbumService(
	albums repository.AlbumStore,
	photos repository.PhotoStore,
	blobs storage.BlobStore,
	thumbs imaging.Thumbnailer,
	rec metrics.Recorder,
	sanitizer *utils.Sanitizer,
	qr *qrcode.QRService,
	cfg *config.Config,
	log *zap.Logger,
) *AlbumService {
	concurrency := cfg.UploadConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &AlbumService{
		albums:      albums,
		photos:      photos,
		blobs:       blobs,
		thumbs:      thumbs,
		metrics:     rec,
		sanitizer:   sanitizer,
		qr:          qr,
		log:         log.Named("albums"),
		concurrency: concurrency,
	}
}

// Open loads an album with its photos into a manager. NewAlbumID opens an
// empty draft. A failure to load the photos leaves the photo list empty.
func (s *AlbumService) Open(ctx context.Context, albumID string, n Notifier) (*AlbumManager, error) {
	m := &AlbumManager{
		svc:      s,
		notifier: WithLogging(n, s.log, zap.String("album_id", albumID)),
		log:      s.log.With(zap.String("album_id", albumID)),
		selected: map[string]struct{}{},
	}
	if albumID == NewAlbumID {
		m.state = AlbumStateNew
		return m, nil
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, remote("Failed to load album details", "get album", err)
	}
	photos, err := s.photos.ListByAlbum(ctx, albumID)
	if err != nil {
		s.log.Warn("failed to load photos", zap.String("album_id", albumID), zap.Error(err))
		photos = nil
	}

	m.state = AlbumStatePersisted
	m.album = *album
	m.photos = photos
	if album.HasCover() {
		for _, p := range photos {
			if p.URL == *album.CoverImage {
				m.coverPhotoID = p.ID
				break
			}
		}
	}
	return m, nil
}

// OpenOwned opens an album only if it belongs to the session user. Other
// users get models.ErrNotFound.
func (s *AlbumService) OpenOwned(ctx context.Context, session *models.Session, albumID string, n Notifier) (*AlbumManager, error) {
	if albumID == NewAlbumID {
		return nil, models.ErrNotFound
	}
	m, err := s.Open(ctx, albumID, n)
	if err != nil {
		return nil, err
	}
	if m.album.UserID != session.UserID {
		return nil, models.ErrNotFound
	}
	return m, nil
}

// OpenShared opens an album that has public sharing enabled.
func (s *AlbumService) OpenShared(ctx context.Context, albumID string) (*AlbumManager, error) {
	if albumID == NewAlbumID {
		return nil, models.ErrNotFound
	}
	m, err := s.Open(ctx, albumID, NewNotificationLog())
	if err != nil {
		return nil, err
	}
	if !m.album.IsShared {
		return nil, models.ErrNotFound
	}
	m.album.Owner = nil
	return m, nil
}

// ListForUser returns the session user's albums, newest first. Fetch
// failures yield an empty list.
func (s *AlbumService) ListForUser(ctx context.Context, session *models.Session) []models.Album {
	albums, err := s.albums.ListByUser(ctx, session.UserID)
	if err != nil {
		s.log.Warn("failed to list albums", zap.String("user_id", session.UserID), zap.Error(err))
		return []models.Album{}
	}
	return albums
}

// ListAll returns every album sorted by sort and filtered by query over
// title, owner name and owner email. Fetch failures yield an empty list.
func (s *AlbumService) ListAll(ctx context.Context, query string, sort listview.SortState) []models.Album {
	albums, err := s.albums.List(ctx, sort)
	if err != nil {
		s.log.Warn("failed to list albums", zap.Error(err))
		return []models.Album{}
	}
	return listview.Filter(albums, query, func(a models.Album) []string {
		fields := []string{a.Title}
		if a.Owner != nil {
			fields = append(fields, a.Owner.FullName, a.Owner.Email)
		}
		return fields
	})
}

// DeleteAlbum removes an album and its photos. Photo rows are deleted
// first since the database does not cascade; stored files are removed
// best effort.
func (s *AlbumService) DeleteAlbum(ctx context.Context, albumID string, c Confirmer, n Notifier) error {
	n = WithLogging(n, s.log, zap.String("album_id", albumID))
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fail(n, models.ErrNotFound)
		}
		return fail(n, remote("Failed to delete album", "get album", err))
	}
	if !c.Confirm("Are you sure you want to delete this album? This action cannot be undone.") {
		return ErrNotConfirmed
	}

	photos, err := s.photos.ListByAlbum(ctx, albumID)
	if err != nil {
		return fail(n, remote("Failed to delete album", "list photos", err))
	}
	if err := s.photos.DeleteByAlbum(ctx, albumID); err != nil {
		return fail(n, remote("Failed to delete album", "delete photos", err))
	}
	if err := s.albums.Delete(ctx, album.ID); err != nil {
		return fail(n, remote("Failed to delete album", "delete album", err))
	}
	for _, p := range photos {
		s.removeBlobs(ctx, p)
	}
	s.metrics.PhotosDeleted(len(photos))
	n.Success("Album deleted successfully")
	return nil
}

// ShareQRCode renders the public link of a shared album as a PNG.
func (s *AlbumService) ShareQRCode(m *AlbumManager) ([]byte, error) {
	if m.ShareLink() == "" {
		return nil, models.NewPreconditionError("Enable sharing to get a QR code for this album")
	}
	return s.qr.GenerateQRCode(sharedAlbumPath(m.album.ID), shareQRSize)
}
