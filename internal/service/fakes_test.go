package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/email"
	"github.com/brightframe/studio-backend/pkg/listview"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"github.com/brightframe/studio-backend/pkg/qrcode"
	"github.com/brightframe/studio-backend/pkg/utils"
	"go.uber.org/zap"
)

var errBackend = errors.New("connection reset by peer")

type fakeAlbums struct {
	mu        sync.Mutex
	rows      map[string]*models.Album
	seq       int
	createErr error
	updateErr error
	listErr   error
	updates   []map[string]interface{}
}

func newFakeAlbums(albums ...models.Album) *fakeAlbums {
	f := &fakeAlbums{rows: map[string]*models.Album{}}
	for i := range albums {
		a := albums[i]
		f.rows[a.ID] = &a
	}
	return f
}

func (f *fakeAlbums) Create(_ context.Context, album *models.Album) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	album.ID = fmt.Sprintf("album-%d", f.seq)
	a := *album
	f.rows[a.ID] = &a
	return nil
}

func (f *fakeAlbums) GetByID(_ context.Context, id string) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAlbums) ListByUser(_ context.Context, userID string) ([]models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Album
	for _, a := range f.sorted() {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlbums) List(_ context.Context, _ listview.SortState) ([]models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(), nil
}

func (f *fakeAlbums) Recent(_ context.Context, limit int) ([]models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAlbums) sorted() []models.Album {
	out := make([]models.Album, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeAlbums) Update(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	a, ok := f.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	f.updates = append(f.updates, fields)
	for k, v := range fields {
		switch k {
		case "title":
			a.Title = v.(string)
		case "description":
			a.Description = v.(string)
		case "user_id":
			a.UserID = v.(string)
		case "download_url":
			a.DownloadURL = v.(string)
		case "photo_count":
			a.PhotoCount = v.(int)
		case "is_shared":
			a.IsShared = v.(bool)
		case "cover_image":
			if v == nil {
				a.CoverImage = nil
			} else {
				s := v.(string)
				a.CoverImage = &s
			}
		}
	}
	return nil
}

func (f *fakeAlbums) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeAlbums) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeAlbums) stored(id string) models.Album {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.rows[id]
}

type fakePhotos struct {
	mu            sync.Mutex
	rows          []models.Photo
	seq           int
	failCreate    func(p *models.Photo) bool
	listErr       error
	deleteManyErr error
	moveErr       error
	countErr      error
	updateErr     error
}

func (f *fakePhotos) Create(_ context.Context, photo *models.Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil && f.failCreate(photo) {
		return errBackend
	}
	f.seq++
	photo.ID = fmt.Sprintf("photo-%d", f.seq)
	f.rows = append(f.rows, *photo)
	return nil
}

func (f *fakePhotos) ListByAlbum(_ context.Context, albumID string) ([]models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Photo
	for _, p := range f.rows {
		if p.AlbumID == albumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotos) UpdateCaption(_ context.Context, id, caption string) error {
	return f.mutate(id, func(p *models.Photo) { p.Caption = caption })
}

func (f *fakePhotos) SetFavorite(_ context.Context, id string, favorite bool) error {
	return f.mutate(id, func(p *models.Photo) { p.IsFavorite = favorite })
}

func (f *fakePhotos) mutate(id string, fn func(p *models.Photo)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			fn(&f.rows[i])
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakePhotos) DeleteMany(_ context.Context, albumID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteManyErr != nil {
		return f.deleteManyErr
	}
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.rows[:0]
	for _, p := range f.rows {
		if p.AlbumID == albumID && drop[p.ID] {
			continue
		}
		kept = append(kept, p)
	}
	f.rows = kept
	return nil
}

func (f *fakePhotos) DeleteByAlbum(_ context.Context, albumID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, p := range f.rows {
		if p.AlbumID != albumID {
			kept = append(kept, p)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakePhotos) MoveMany(_ context.Context, fromAlbumID, toAlbumID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	move := map[string]bool{}
	for _, id := range ids {
		move[id] = true
	}
	for i := range f.rows {
		if f.rows[i].AlbumID == fromAlbumID && move[f.rows[i].ID] {
			f.rows[i].AlbumID = toAlbumID
		}
	}
	return nil
}

func (f *fakePhotos) CountByAlbum(_ context.Context, albumID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, p := range f.rows {
		if p.AlbumID == albumID {
			n++
		}
	}
	return n, nil
}

func (f *fakePhotos) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

type fakeBlobs struct {
	mu        sync.Mutex
	objects   map[string]int64
	deleted   []string
	uploadErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string]int64{}}
}

func (f *fakeBlobs) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = int64(len(data))
	return nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobs) PublicURL(key string) string {
	return "https://cdn.studio.test/" + key
}

type fakeAppointments struct {
	mu        sync.Mutex
	rows      map[string]*models.Appointment
	seq       int
	createErr error
	updateErr error
	listErr   error
	// zeroRows makes UpdateStatusForUser report no matching row.
	zeroRows bool
}

func newFakeAppointments(appts ...models.Appointment) *fakeAppointments {
	f := &fakeAppointments{rows: map[string]*models.Appointment{}}
	for i := range appts {
		a := appts[i]
		f.rows[a.ID] = &a
	}
	return f
}

func (f *fakeAppointments) Create(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	a.ID = fmt.Sprintf("appt-%d", f.seq)
	row := *a
	f.rows[a.ID] = &row
	return nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAppointments) GetByStripeSession(_ context.Context, sessionID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.StripeSessionID != "" && a.StripeSessionID == sessionID {
			out := *a
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAppointments) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeAppointments) List(_ context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, a := range f.rows {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeAppointments) Recent(ctx context.Context, limit int) ([]models.Appointment, error) {
	out, _ := f.List(ctx, "")
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAppointments) UpdateStatusForUser(_ context.Context, id, userID string, status models.AppointmentStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	a, ok := f.rows[id]
	if f.zeroRows || !ok || a.UserID != userID {
		return 0, nil
	}
	a.Status = status
	return 1, nil
}

func (f *fakeAppointments) Update(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	a, ok := f.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			a.Status = v.(models.AppointmentStatus)
		case "payment_status":
			a.PaymentStatus = v.(models.PaymentStatus)
		case "stripe_session_id":
			a.StripeSessionID = v.(string)
		}
	}
	return nil
}

func (f *fakeAppointments) Count(ctx context.Context, status models.AppointmentStatus) (int64, error) {
	out, _ := f.List(ctx, status)
	return int64(len(out)), nil
}

type fakeProfiles struct {
	mu   sync.Mutex
	rows map[string]*models.Profile
	seq  int
}

func newFakeProfiles(profiles ...models.Profile) *fakeProfiles {
	f := &fakeProfiles{rows: map[string]*models.Profile{}}
	for i := range profiles {
		p := profiles[i]
		f.rows[p.ID] = &p
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = fmt.Sprintf("user-%d", f.seq)
	p.Email = strings.ToLower(p.Email)
	row := *p
	f.rows[p.ID] = &row
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if strings.EqualFold(p.Email, email) {
			out := *p
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProfiles) Update(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := *p
	f.rows[p.ID] = &row
	return nil
}

func (f *fakeProfiles) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Password = hash
	return nil
}

func (f *fakeProfiles) List(_ context.Context, _ listview.SortState) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Profile
	for _, p := range f.rows {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProfiles) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

type countingMetrics struct {
	mu        sync.Mutex
	uploaded  int
	failed    int
	deleted   int
	booked    int
	cancelled int
	paid      int
}

func (m *countingMetrics) add(dst *int, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst += n
}

func (m *countingMetrics) PhotosUploaded(n int)     { m.add(&m.uploaded, n) }
func (m *countingMetrics) PhotoUploadFailed(string) { m.add(&m.failed, 1) }
func (m *countingMetrics) PhotosDeleted(n int)      { m.add(&m.deleted, n) }
func (m *countingMetrics) BookingCreated()          { m.add(&m.booked, 1) }
func (m *countingMetrics) BookingCancelled()        { m.add(&m.cancelled, 1) }
func (m *countingMetrics) PaymentCompleted()        { m.add(&m.paid, 1) }

var _ metrics.Recorder = (*countingMetrics)(nil)

type recordingMailer struct {
	mu       sync.Mutex
	resets   []string
	bookings []email.BookingEmail
	contacts []email.ContactEmail
	err      error
}

func (m *recordingMailer) SendPasswordResetEmail(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, token)
	return m.err
}

func (m *recordingMailer) SendBookingReceived(b email.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, b)
	return m.err
}

func (m *recordingMailer) ForwardContactMessage(c email.ContactEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, c)
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "studio-test",
		PublicSiteURL:     "https://studio.test",
		UploadConcurrency: 2,
	}
}

type albumFixture struct {
	albums  *fakeAlbums
	photos  *fakePhotos
	blobs   *fakeBlobs
	metrics *countingMetrics
	svc     *AlbumService
}

func newAlbumFixture(albums ...models.Album) *albumFixture {
	f := &albumFixture{
		albums:  newFakeAlbums(albums...),
		photos:  &fakePhotos{},
		blobs:   newFakeBlobs(),
		metrics: &countingMetrics{},
	}
	f.svc = NewAlbumService(
		f.albums,
		f.photos,
		f.blobs,
		nil,
		f.metrics,
		utils.NewSanitizer(),
		qrcode.NewQRService("https://studio.test"),
		testConfig(),
		zap.NewNop(),
	)
	return f
}

func messages(log *NotificationLog, level models.NotificationLevel) []string {
	var out []string
	for _, n := range log.Items() {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}
