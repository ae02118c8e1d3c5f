package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/listview"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NewAlbumID is the album id that opens an unsaved draft.
const NewAlbumID = "new"

const PhotosPerPage = 20

type AlbumState int

const (
	AlbumStateNew AlbumState = iota
	AlbumStatePersisted
)

func (s AlbumState) String() string {
	if s == AlbumStatePersisted {
		return "persisted"
	}
	return "new"
}

type SaveResult struct {
	Album      models.Album `json:"album"`
	Created    bool         `json:"created"`
	NavigateTo string       `json:"navigate_to,omitempty"`
}

// AlbumManager holds one album, its photos, the tracked cover photo and the
// photo selection for the lifetime of a page. It is not safe for concurrent
// use; callers serialize operations.
//
// Every mutating method reports its outcome through the notifier. When a
// database or blob store call fails the method returns a
// *models.RemoteError and the local state stays as it was.
type AlbumManager struct {
	svc      *AlbumService
	notifier Notifier
	log      *zap.Logger

	state        AlbumState
	album        models.Album
	photos       []models.Photo
	coverPhotoID string
	selected     map[string]struct{}
}

func (m *AlbumManager) State() AlbumState { return m.state }

// Album returns the album. The zero value is returned for a draft.
func (m *AlbumManager) Album() models.Album { return m.album }

func (m *AlbumManager) Photos() []models.Photo {
	out := make([]models.Photo, len(m.photos))
	copy(out, m.photos)
	return out
}

func (m *AlbumManager) CoverPhotoID() string { return m.coverPhotoID }

func (m *AlbumManager) Detail() models.AlbumDetail {
	return models.AlbumDetail{
		Album:        m.album,
		Photos:       m.Photos(),
		CoverPhotoID: m.coverPhotoID,
		Total:        len(m.photos),
	}
}

func (m *AlbumManager) findPhoto(id string) (int, bool) {
	for i := range m.photos {
		if m.photos[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (m *AlbumManager) requirePersisted() error {
	if m.state != AlbumStatePersisted {
		return models.NewPreconditionError("Please save the album before uploading photos")
	}
	return nil
}

// Save creates the album when the manager holds a draft and updates it
// otherwise. On update the cover is rewritten from the tracked cover photo
// if there is one.
func (m *AlbumManager) Save(ctx context.Context, in models.AlbumInput) (*SaveResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.UserID = strings.TrimSpace(in.UserID)
	if in.Title == "" || in.UserID == "" {
		return nil, fail(m.notifier, models.NewValidationError("", "Please fill in all required fields"))
	}
	in.Description = m.svc.sanitizer.Text(in.Description)

	if m.state == AlbumStateNew {
		album := &models.Album{
			Title:       in.Title,
			Description: in.Description,
			UserID:      in.UserID,
			DownloadURL: in.DownloadURL,
			PhotoCount:  0,
		}
		if err := m.svc.albums.Create(ctx, album); err != nil {
			return nil, fail(m.notifier, remote("Failed to save album", "create album", err))
		}
		m.state = AlbumStatePersisted
		m.album = *album
		m.photos = nil
		m.coverPhotoID = ""
		m.selected = map[string]struct{}{}
		m.notifier.Success("Album created successfully")
		return &SaveResult{
			Album:      m.album,
			Created:    true,
			NavigateTo: "/admin/albums/" + album.ID,
		}, nil
	}

	fields := map[string]interface{}{
		"title":        in.Title,
		"description":  in.Description,
		"user_id":      in.UserID,
		"download_url": in.DownloadURL,
	}
	var cover *string
	if i, ok := m.findPhoto(m.coverPhotoID); ok {
		url := m.photos[i].URL
		cover = &url
		fields["cover_image"] = url
	}
	if err := m.svc.albums.Update(ctx, m.album.ID, fields); err != nil {
		return nil, fail(m.notifier, remote("Failed to save album", "update album", err))
	}

	m.album.Title = in.Title
	m.album.Description = in.Description
	if m.album.UserID != in.UserID {
		m.album.Owner = nil
	}
	m.album.UserID = in.UserID
	m.album.DownloadURL = in.DownloadURL
	if cover != nil {
		m.album.CoverImage = cover
	}
	m.notifier.Success("Album updated successfully")
	return &SaveResult{Album: m.album}, nil
}

// UploadPhotos stores the files concurrently and inserts a photo row for
// each. Files that fail validation or storage are reported in the result
// and do not stop the rest of the batch; photos already stored stay.
// Afterwards photo_count is recomputed and, if the album had no cover
// before the batch, the first successful file by batch position becomes
// the cover.
func (m *AlbumManager) UploadPhotos(ctx context.Context, files []UploadFile) (*UploadResult, error) {
	if err := m.requirePersisted(); err != nil {
		return nil, fail(m.notifier, err)
	}
	result := &UploadResult{Succeeded: []models.Photo{}, Failed: []UploadFailure{}}
	if len(files) == 0 {
		return result, nil
	}

	hadCover := m.album.HasCover()
	albumID := m.album.ID

	created := make([]*models.Photo, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(m.svc.concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			created[i], errs[i] = m.svc.storePhoto(ctx, albumID, f)
			return nil
		})
	}
	_ = g.Wait()

	for i := range files {
		if errs[i] != nil {
			result.Failed = append(result.Failed, UploadFailure{
				Filename: files[i].Filename,
				Message:  models.UserMessage(errs[i]),
				Err:      errs[i],
			})
			m.svc.metrics.PhotoUploadFailed(failureReason(errs[i]))
			m.log.Warn("photo upload failed", zap.String("file", files[i].Filename), zap.Error(errs[i]))
			continue
		}
		result.Succeeded = append(result.Succeeded, *created[i])
	}

	if len(result.Succeeded) == 0 {
		m.notifier.Error("Failed to upload photos")
		return result, nil
	}

	// The rows exist now whatever happens below.
	m.photos = append(m.photos, result.Succeeded...)
	m.svc.metrics.PhotosUploaded(len(result.Succeeded))

	count, err := m.svc.photos.CountByAlbum(ctx, albumID)
	if err != nil {
		return result, fail(m.notifier, remote("Failed to upload photos", "count photos", err))
	}
	fields := map[string]interface{}{"photo_count": int(count)}
	first := result.Succeeded[0]
	if !hadCover {
		fields["cover_image"] = first.URL
	}
	if err := m.svc.albums.Update(ctx, albumID, fields); err != nil {
		return result, fail(m.notifier, remote("Failed to upload photos", "update album", err))
	}

	m.album.PhotoCount = int(count)
	if !hadCover {
		url := first.URL
		m.album.CoverImage = &url
		m.coverPhotoID = first.ID
	}

	m.notifier.Success(fmt.Sprintf("%d photos uploaded successfully", len(result.Succeeded)))
	if n := len(result.Failed); n > 0 {
		m.notifier.Error(fmt.Sprintf("%d of %d photos failed to upload", n, len(files)))
	}
	return result, nil
}

func failureReason(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return "validation"
	}
	return "remote"
}

// TogglePhotoSelection adds or removes id from the selection. Ids that are
// not photos of the album are ignored.
func (m *AlbumManager) TogglePhotoSelection(id string) {
	if _, ok := m.findPhoto(id); !ok {
		return
	}
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return
	}
	m.selected[id] = struct{}{}
}

func (m *AlbumManager) SelectAll() {
	m.selected = make(map[string]struct{}, len(m.photos))
	for _, p := range m.photos {
		m.selected[p.ID] = struct{}{}
	}
}

func (m *AlbumManager) ClearSelection() {
	m.selected = map[string]struct{}{}
}

// ToggleSelectAll clears the selection when every photo is selected and
// selects all photos otherwise.
func (m *AlbumManager) ToggleSelectAll() {
	if len(m.photos) > 0 && len(m.selected) == len(m.photos) {
		m.ClearSelection()
		return
	}
	m.SelectAll()
}

func (m *AlbumManager) IsSelected(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// Selected returns the selected photo ids in album order.
func (m *AlbumManager) Selected() []string {
	out := make([]string, 0, len(m.selected))
	for _, p := range m.photos {
		if _, ok := m.selected[p.ID]; ok {
			out = append(out, p.ID)
		}
	}
	return out
}

// DeleteSelectedPhotos deletes the selected photos in one statement after
// confirmation, recomputes photo_count and moves the cover to the first
// remaining photo when the cover was deleted. An empty selection does
// nothing.
func (m *AlbumManager) DeleteSelectedPhotos(ctx context.Context, c Confirmer) error {
	if err := m.requirePersisted(); err != nil {
		return fail(m.notifier, err)
	}
	ids := m.Selected()
	if len(ids) == 0 {
		return nil
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %d selected photos? This action cannot be undone.", len(ids))
	if !c.Confirm(prompt) {
		return ErrNotConfirmed
	}

	if err := m.svc.photos.DeleteMany(ctx, m.album.ID, ids); err != nil {
		return fail(m.notifier, remote("Failed to delete photos", "delete photos", err))
	}

	deleted := make([]models.Photo, 0, len(ids))
	remaining := make([]models.Photo, 0, len(m.photos))
	for _, p := range m.photos {
		if _, ok := m.selected[p.ID]; ok {
			deleted = append(deleted, p)
			continue
		}
		remaining = append(remaining, p)
	}

	count, err := m.svc.photos.CountByAlbum(ctx, m.album.ID)
	if err != nil {
		m.photos = remaining
		m.ClearSelection()
		return fail(m.notifier, remote("Failed to delete photos", "count photos", err))
	}

	fields := map[string]interface{}{"photo_count": int(count)}
	coverDeleted := m.album.HasCover() && !containsURL(remaining, *m.album.CoverImage)
	var newCover *string
	newCoverID := m.coverPhotoID
	if coverDeleted {
		if len(remaining) > 0 {
			url := remaining[0].URL
			newCover = &url
			newCoverID = remaining[0].ID
			fields["cover_image"] = url
		} else {
			newCoverID = ""
			fields["cover_image"] = nil
		}
	}

	if err := m.svc.albums.Update(ctx, m.album.ID, fields); err != nil {
		m.photos = remaining
		m.ClearSelection()
		return fail(m.notifier, remote("Failed to delete photos", "update album", err))
	}

	m.photos = remaining
	m.album.PhotoCount = int(count)
	if coverDeleted {
		m.album.CoverImage = newCover
		m.coverPhotoID = newCoverID
	}
	m.ClearSelection()
	m.svc.metrics.PhotosDeleted(len(deleted))
	m.notifier.Success(fmt.Sprintf("%d photos deleted successfully", len(deleted)))

	for _, p := range deleted {
		m.svc.removeBlobs(ctx, p)
	}
	return nil
}

// MoveSelectedPhotos reassigns the selected photos to another album and
// returns how many moved. photo_count is recomputed on both albums. This
// album falls back to its first remaining photo when the cover moved away,
// and the target takes the first moved photo as cover when it has none.
// Stored files keep their keys.
func (m *AlbumManager) MoveSelectedPhotos(ctx context.Context, targetAlbumID string) (int, error) {
	if err := m.requirePersisted(); err != nil {
		return 0, fail(m.notifier, err)
	}
	ids := m.Selected()
	if len(ids) == 0 {
		return 0, nil
	}
	targetAlbumID = strings.TrimSpace(targetAlbumID)
	if targetAlbumID == "" || targetAlbumID == m.album.ID {
		return 0, fail(m.notifier, models.NewValidationError("target_album_id", "Choose a different album to move the photos to"))
	}

	target, err := m.svc.albums.GetByID(ctx, targetAlbumID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, fail(m.notifier, models.NewValidationError("target_album_id", "The target album no longer exists"))
		}
		return 0, fail(m.notifier, remote("Failed to move photos", "get target album", err))
	}

	if err := m.svc.photos.MoveMany(ctx, m.album.ID, target.ID, ids); err != nil {
		return 0, fail(m.notifier, remote("Failed to move photos", "move photos", err))
	}

	moved := make([]models.Photo, 0, len(ids))
	remaining := make([]models.Photo, 0, len(m.photos))
	for _, p := range m.photos {
		if _, ok := m.selected[p.ID]; ok {
			moved = append(moved, p)
			continue
		}
		remaining = append(remaining, p)
	}
	m.photos = remaining
	m.ClearSelection()

	count, err := m.svc.photos.CountByAlbum(ctx, m.album.ID)
	if err != nil {
		return len(moved), fail(m.notifier, remote("Failed to move photos", "count photos", err))
	}
	fields := map[string]interface{}{"photo_count": int(count)}
	coverMoved := m.album.HasCover() && !containsURL(remaining, *m.album.CoverImage)
	var newCover *string
	newCoverID := m.coverPhotoID
	if coverMoved {
		if len(remaining) > 0 {
			url := remaining[0].URL
			newCover = &url
			newCoverID = remaining[0].ID
			fields["cover_image"] = url
		} else {
			newCoverID = ""
			fields["cover_image"] = nil
		}
	}
	if err := m.svc.albums.Update(ctx, m.album.ID, fields); err != nil {
		return len(moved), fail(m.notifier, remote("Failed to move photos", "update album", err))
	}
	m.album.PhotoCount = int(count)
	if coverMoved {
		m.album.CoverImage = newCover
		m.coverPhotoID = newCoverID
	}

	targetCount, err := m.svc.photos.CountByAlbum(ctx, target.ID)
	if err != nil {
		return len(moved), fail(m.notifier, remote("Failed to move photos", "count target photos", err))
	}
	targetFields := map[string]interface{}{"photo_count": int(targetCount)}
	if !target.HasCover() {
		targetFields["cover_image"] = moved[0].URL
	}
	if err := m.svc.albums.Update(ctx, target.ID, targetFields); err != nil {
		return len(moved), fail(m.notifier, remote("Failed to move photos", "update target album", err))
	}

	m.log.Info("photos moved", zap.String("target_album_id", target.ID), zap.Int("count", len(moved)))
	m.notifier.Success("Photos moved successfully")
	return len(moved), nil
}

func containsURL(photos []models.Photo, url string) bool {
	for _, p := range photos {
		if p.URL == url {
			return true
		}
	}
	return false
}

// SetCoverPhoto makes photoID the album cover. Unknown ids are ignored.
func (m *AlbumManager) SetCoverPhoto(ctx context.Context, photoID string) error {
	if err := m.requirePersisted(); err != nil {
		return fail(m.notifier, err)
	}
	i, ok := m.findPhoto(photoID)
	if !ok {
		return nil
	}
	url := m.photos[i].URL
	if err := m.svc.albums.Update(ctx, m.album.ID, map[string]interface{}{"cover_image": url}); err != nil {
		return fail(m.notifier, remote("Failed to set cover photo", "update album", err))
	}
	m.album.CoverImage = &url
	m.coverPhotoID = photoID
	m.notifier.Success("Cover photo updated")
	return nil
}

func (m *AlbumManager) UpdatePhotoCaption(ctx context.Context, photoID, caption string) error {
	if err := m.requirePersisted(); err != nil {
		return fail(m.notifier, err)
	}
	i, ok := m.findPhoto(photoID)
	if !ok {
		return fail(m.notifier, models.ErrNotFound)
	}
	caption = m.svc.sanitizer.Text(caption)
	if err := m.svc.photos.UpdateCaption(ctx, photoID, caption); err != nil {
		return fail(m.notifier, remote("Failed to update caption", "update caption", err))
	}
	m.photos[i].Caption = caption
	m.notifier.Success("Caption updated")
	return nil
}

// TogglePhotoFavorite flips the favorite flag of one photo.
func (m *AlbumManager) TogglePhotoFavorite(ctx context.Context, photoID string) (bool, error) {
	if err := m.requirePersisted(); err != nil {
		return false, fail(m.notifier, err)
	}
	i, ok := m.findPhoto(photoID)
	if !ok {
		return false, fail(m.notifier, models.ErrNotFound)
	}
	next := !m.photos[i].IsFavorite
	if err := m.svc.photos.SetFavorite(ctx, photoID, next); err != nil {
		return m.photos[i].IsFavorite, fail(m.notifier, remote("Failed to update favorite status", "set favorite", err))
	}
	m.photos[i].IsFavorite = next
	if next {
		m.notifier.Success("Added to favorites")
	} else {
		m.notifier.Success("Removed from favorites")
	}
	return next, nil
}

// ToggleShared flips the album's public sharing flag.
func (m *AlbumManager) ToggleShared(ctx context.Context) (bool, error) {
	if err := m.requirePersisted(); err != nil {
		return false, fail(m.notifier, err)
	}
	next := !m.album.IsShared
	if err := m.svc.albums.Update(ctx, m.album.ID, map[string]interface{}{"is_shared": next}); err != nil {
		return m.album.IsShared, fail(m.notifier, remote("Failed to share album", "update album", err))
	}
	m.album.IsShared = next
	if next {
		m.notifier.Success("Album sharing enabled")
	} else {
		m.notifier.Success("Album sharing disabled")
	}
	return next, nil
}

// ShareLink is the public address of the album, or "" when it is not
// shared.
func (m *AlbumManager) ShareLink() string {
	if m.state != AlbumStatePersisted || !m.album.IsShared {
		return ""
	}
	return m.svc.qr.Link(sharedAlbumPath(m.album.ID))
}

func sharedAlbumPath(id string) string {
	return "shared/albums/" + id
}

// PhotosPage searches filenames and captions and returns one page of the
// loaded photos.
func (m *AlbumManager) PhotosPage(query string, page int) listview.Page[models.Photo] {
	filtered := listview.Filter(m.photos, query, func(p models.Photo) []string {
		return []string{p.Filename, p.Caption}
	})
	return listview.Paginate(filtered, page, PhotosPerPage)
}
