package handler

import (
	"io"
	"mime/multipart"

	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AlbumHandler struct {
	albumService *service.AlbumService
	validator    *utils.Validator
	log          *zap.Logger
}

func NewAlbumHandler(albumService *service.AlbumService, validator *utils.Validator, log *zap.Logger) *AlbumHandler {
	return &AlbumHandler{
		albumService: albumService,
		validator:    validator,
		log:          log,
	}
}

var albumSortColumns = map[string]bool{
	"title":       true,
	"photo_count": true,
	"created_at":  true,
	"updated_at":  true,
	"owner":       true,
}

// ListMyAlbums returns the caller's albums.
func (h *AlbumHandler) ListMyAlbums(c *fiber.Ctx) error {
	albums := h.albumService.ListForUser(c.UserContext(), middleware.SessionFrom(c))
	return c.JSON(models.SuccessResponse(albums, ""))
}

// GetMyAlbum returns one of the caller's albums with a page of its photos.
// ?q= filters photos by filename or caption, ?page= selects the page.
func (h *AlbumHandler) GetMyAlbum(c *fiber.Ctx) error {
	notes := service.NewNotificationLog()
	m, err := h.albumService.OpenOwned(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return c.JSON(models.SuccessResponse(pagedDetail(c, m), ""))
}

func (h *AlbumHandler) ToggleFavorite(c *fiber.Ctx) error {
	notes := service.NewNotificationLog()
	m, err := h.albumService.OpenOwned(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	favorite, err := m.TogglePhotoFavorite(c.UserContext(), c.Params("photoId"))
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, fiber.Map{"is_favorite": favorite}, "", notes)
}

func (h *AlbumHandler) ToggleShare(c *fiber.Ctx) error {
	notes := service.NewNotificationLog()
	m, err := h.openForCaller(c, notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	shared, err := m.ToggleShared(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"is_shared":  shared,
		"share_link": m.ShareLink(),
	}, "", notes)
}

// ShareQRCode renders the public link of a shared album as a PNG.
func (h *AlbumHandler) ShareQRCode(c *fiber.Ctx) error {
	m, err := h.openForCaller(c, service.NewNotificationLog())
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	png, err := h.albumService.ShareQRCode(m)
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// openForCaller lets admins open any album and customers only their own.
func (h *AlbumHandler) openForCaller(c *fiber.Ctx, n service.Notifier) (*service.AlbumManager, error) {
	session := middleware.SessionFrom(c)
	if session.Role == models.RoleAdmin {
		if c.Params("id") == service.NewAlbumID {
			return nil, models.ErrNotFound
		}
		return h.albumService.Open(c.UserContext(), c.Params("id"), n)
	}
	return h.albumService.OpenOwned(c.UserContext(), session, c.Params("id"), n)
}

// GetSharedAlbum serves a publicly shared album without authentication.
func (h *AlbumHandler) GetSharedAlbum(c *fiber.Ctx) error {
	m, err := h.albumService.OpenShared(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(models.SuccessResponse(pagedDetail(c, m), ""))
}

// ListAlbums is the back office album list with ?q=, ?sort= and ?order=.
func (h *AlbumHandler) ListAlbums(c *fiber.Ctx) error {
	sort := sortState(c, albumSortColumns, "created_at")
	albums := h.albumService.ListAll(c.UserContext(), c.Query("q"), sort)
	return c.JSON(models.SuccessResponse(fiber.Map{
		"albums": albums,
		"sort":   sort,
	}, ""))
}

// GetAlbum opens an album for editing. The id "new" returns an empty
// draft.
func (h *AlbumHandler) GetAlbum(c *fiber.Ctx) error {
	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{
		"state":      m.State().String(),
		"album":      pagedDetail(c, m),
		"share_link": m.ShareLink(),
	}, ""))
}

// SaveAlbum creates the album when the id is "new" and updates it
// otherwise.
func (h *AlbumHandler) SaveAlbum(c *fiber.Ctx) error {
	var req models.AlbumInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	res, err := m.Save(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, notes)
	}

	if res.Created {
		resp := models.SuccessResponse(res, "").
			WithNotifications(notes.Items()).
			WithRedirect(res.NavigateTo)
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
	return success(c, fiber.StatusOK, res, "", notes)
}

// DeleteAlbum needs ?confirm=true.
func (h *AlbumHandler) DeleteAlbum(c *fiber.Ctx) error {
	notes := service.NewNotificationLog()
	err := h.albumService.DeleteAlbum(c.UserContext(), c.Params("id"), service.Confirmed(c.QueryBool("confirm")), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, nil, "", notes)
}

// UploadPhotos accepts the multipart field "photos". Partial failures are
// reported in the result; the request fails only when no file was stored.
func (h *AlbumHandler) UploadPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid multipart form"))
	}
	headers := form.File["photos"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	res, err := m.UploadPhotos(c.UserContext(), files)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	if len(res.Succeeded) == 0 {
		resp := models.ErrorResponse("No photos were uploaded").WithNotifications(notes.Items())
		resp.Data = res
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return success(c, fiber.StatusCreated, fiber.Map{
		"result": res,
		"album":  m.Album(),
	}, "", notes)
}

func uploadFile(fh *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// DeletePhotos selects the requested photos and deletes them.
func (h *AlbumHandler) DeletePhotos(c *fiber.Ctx) error {
	var req models.DeletePhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	for _, id := range req.PhotoIDs {
		if !m.IsSelected(id) {
			m.TogglePhotoSelection(id)
		}
	}
	if err := m.DeleteSelectedPhotos(c.UserContext(), service.Confirmed(req.Confirm)); err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, m.Detail(), "", notes)
}

// MovePhotos moves the requested photos to target_album_id.
func (h *AlbumHandler) MovePhotos(c *fiber.Ctx) error {
	var req models.MovePhotosRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	for _, id := range req.PhotoIDs {
		if !m.IsSelected(id) {
			m.TogglePhotoSelection(id)
		}
	}
	moved, err := m.MoveSelectedPhotos(c.UserContext(), req.TargetAlbumID)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"moved": moved,
		"album": m.Detail(),
	}, "", notes)
}

func (h *AlbumHandler) SetCover(c *fiber.Ctx) error {
	var req models.CoverRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	if err := m.SetCoverPhoto(c.UserContext(), req.PhotoID); err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, m.Album(), "", notes)
}

func (h *AlbumHandler) UpdateCaption(c *fiber.Ctx) error {
	var req models.CaptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	m, err := h.albumService.Open(c.UserContext(), c.Params("id"), notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	if err := m.UpdatePhotoCaption(c.UserContext(), c.Params("photoId"), req.Caption); err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, nil, "", notes)
}

func pagedDetail(c *fiber.Ctx, m *service.AlbumManager) models.AlbumDetail {
	page := m.PhotosPage(c.Query("q"), c.QueryInt("page", 1))
	return models.AlbumDetail{
		Album:        m.Album(),
		Photos:       page.Items,
		CoverPhotoID: m.CoverPhotoID(),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		Total:        page.Total,
	}
}
