package handler

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/listview"
)

type memAlbums struct {
	mu   sync.Mutex
	rows map[string]*models.Album
	seq  int
}

func newMemAlbums(albums ...models.Album) *memAlbums {
	s := &memAlbums{rows: map[string]*models.Album{}}
	for i := range albums {
		a := albums[i]
		s.rows[a.ID] = &a
	}
	return s
}

func (s *memAlbums) Create(_ context.Context, a *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	a.ID = fmt.Sprintf("album-%d", s.seq)
	row := *a
	s.rows[a.ID] = &row
	return nil
}

func (s *memAlbums) GetByID(_ context.Context, id string) (*models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (s *memAlbums) all() []models.Album {
	out := make([]models.Album, 0, len(s.rows))
	for _, a := range s.rows {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memAlbums) ListByUser(_ context.Context, userID string) ([]models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Album
	for _, a := range s.all() {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAlbums) List(context.Context, listview.SortState) ([]models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all(), nil
}

func (s *memAlbums) Recent(_ context.Context, limit int) ([]models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memAlbums) Update(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			a.Title = v.(string)
		case "photo_count":
			a.PhotoCount = v.(int)
		case "cover_image":
			if v == nil {
				a.CoverImage = nil
			} else {
				url := v.(string)
				a.CoverImage = &url
			}
		case "is_shared":
			a.IsShared = v.(bool)
		}
	}
	return nil
}

func (s *memAlbums) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *memAlbums) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

type memPhotos struct {
	mu   sync.Mutex
	rows []models.Photo
	seq  int
}

func (s *memPhotos) Create(_ context.Context, p *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		s.seq++
		p.ID = fmt.Sprintf("photo-%d", s.seq)
	}
	s.rows = append(s.rows, *p)
	return nil
}

func (s *memPhotos) ListByAlbum(_ context.Context, albumID string) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Photo
	for _, p := range s.rows {
		if p.AlbumID == albumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPhotos) mutate(id string, fn func(p *models.Photo)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			fn(&s.rows[i])
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *memPhotos) UpdateCaption(_ context.Context, id, caption string) error {
	return s.mutate(id, func(p *models.Photo) { p.Caption = caption })
}

func (s *memPhotos) SetFavorite(_ context.Context, id string, favorite bool) error {
	return s.mutate(id, func(p *models.Photo) { p.IsFavorite = favorite })
}

func (s *memPhotos) DeleteMany(_ context.Context, albumID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.rows[:0]
	for _, p := range s.rows {
		if p.AlbumID == albumID && drop[p.ID] {
			continue
		}
		kept = append(kept, p)
	}
	s.rows = kept
	return nil
}

func (s *memPhotos) DeleteByAlbum(ctx context.Context, albumID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, p := range s.rows {
		if p.AlbumID != albumID {
			kept = append(kept, p)
		}
	}
	s.rows = kept
	return nil
}

func (s *memPhotos) MoveMany(_ context.Context, fromAlbumID, toAlbumID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	move := map[string]bool{}
	for _, id := range ids {
		move[id] = true
	}
	for i := range s.rows {
		if s.rows[i].AlbumID == fromAlbumID && move[s.rows[i].ID] {
			s.rows[i].AlbumID = toAlbumID
		}
	}
	return nil
}

func (s *memPhotos) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	list, _ := s.ListByAlbum(ctx, albumID)
	return int64(len(list)), nil
}

func (s *memPhotos) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

type memBlobs struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (b *memBlobs) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.keys == nil {
		b.keys = map[string]bool{}
	}
	b.keys[key] = true
	return nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.keys, key)
	return nil
}

func (b *memBlobs) PublicURL(key string) string {
	return "https://cdn.studio.test/" + key
}

type memAppointments struct {
	mu   sync.Mutex
	rows map[string]*models.Appointment
	seq  int
}

func newMemAppointments() *memAppointments {
	return &memAppointments{rows: map[string]*models.Appointment{}}
}

func (s *memAppointments) Create(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	a.ID = fmt.Sprintf("appt-%d", s.seq)
	row := *a
	s.rows[a.ID] = &row
	return nil
}

func (s *memAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (s *memAppointments) GetByStripeSession(context.Context, string) (*models.Appointment, error) {
	return nil, models.ErrNotFound
}

func (s *memAppointments) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.rows {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memAppointments) List(_ context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.rows {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memAppointments) Recent(ctx context.Context, limit int) ([]models.Appointment, error) {
	out, _ := s.List(ctx, "")
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memAppointments) UpdateStatusForUser(_ context.Context, id, userID string, status models.AppointmentStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok || a.UserID != userID {
		return 0, nil
	}
	a.Status = status
	return 1, nil
}

func (s *memAppointments) Update(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		a.Status = v.(models.AppointmentStatus)
	}
	if v, ok := fields["payment_status"]; ok {
		a.PaymentStatus = v.(models.PaymentStatus)
	}
	return nil
}

func (s *memAppointments) Count(ctx context.Context, status models.AppointmentStatus) (int64, error) {
	out, _ := s.List(ctx, status)
	return int64(len(out)), nil
}

type memPackages map[string]models.Package

func (s memPackages) ListActive(context.Context) ([]models.Package, error) {
	var out []models.Package
	for _, p := range s {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s memPackages) GetByID(_ context.Context, id string) (*models.Package, error) {
	p, ok := s[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}
