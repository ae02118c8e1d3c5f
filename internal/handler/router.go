package handler

import (
	"time"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const uploadBodyLimit = 64 << 20

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Package   *PackageHandler
	Album     *AlbumHandler
	Booking   *BookingHandler
	Dashboard *DashboardHandler
	Contact   *ContactHandler
	Payment   *PaymentHandler
	SPA       *SPAHandler
	Health    *HealthHandler
}

func NewFiberApp(cfg *config.Config, log *zap.Logger, loader middleware.SessionLoader, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "studio-backend",
		BodyLimit:    uploadBodyLimit,
		ErrorHandler: ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	app.Get("/healthz", h.Health.Health)
	app.Get("/metrics", h.Health.Metrics())

	throttle := limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	})

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth", throttle)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)

	api.Post("/contact", throttle, h.Contact.Submit)
	api.Get("/packages", h.Package.GetActivePackages)
	api.Get("/shared/albums/:id", h.Album.GetSharedAlbum)
	api.Get("/navigation", middleware.OptionalAuth(loader), h.SPA.Navigate)
	api.Post("/payments/webhook", h.Payment.HandleStripeWebhook)

	// Protected routes
	authed := middleware.AuthMiddleware(loader)

	api.Get("/me", authed, h.User.GetMyProfile)
	api.Put("/me", authed, h.User.UpdateProfile)
	api.Get("/dashboard", authed, h.Dashboard.Customer)

	bookings := api.Group("/bookings", authed)
	bookings.Get("/", h.Booking.ListMyBookings)
	bookings.Post("/", h.Booking.CreateBooking)
	bookings.Post("/:id/cancel", h.Booking.CancelBooking)
	bookings.Post("/:id/checkout", h.Payment.CreateCheckoutSession)

	albums := api.Group("/albums", authed)
	albums.Get("/", h.Album.ListMyAlbums)
	albums.Get("/:id", h.Album.GetMyAlbum)
	albums.Post("/:id/share", h.Album.ToggleShare)
	albums.Get("/:id/share/qr", h.Album.ShareQRCode)
	albums.Post("/:id/photos/:photoId/favorite", h.Album.ToggleFavorite)

	admin := api.Group("/admin", authed, middleware.RequireAdmin())
	admin.Get("/dashboard", h.Dashboard.Admin)
	admin.Get("/users", h.User.ListUsers)
	admin.Get("/messages", h.Contact.List)
	admin.Get("/appointments", h.Booking.ListAppointments)
	admin.Put("/appointments/:id/status", h.Booking.UpdateAppointmentStatus)

	adminAlbums := admin.Group("/albums")
	adminAlbums.Get("/", h.Album.ListAlbums)
	adminAlbums.Get("/:id", h.Album.GetAlbum)
	adminAlbums.Put("/:id", h.Album.SaveAlbum)
	adminAlbums.Delete("/:id", h.Album.DeleteAlbum)
	adminAlbums.Post("/:id/photos", h.Album.UploadPhotos)
	adminAlbums.Post("/:id/photos/delete", h.Album.DeletePhotos)
	adminAlbums.Post("/:id/photos/move", h.Album.MovePhotos)
	adminAlbums.Put("/:id/cover", h.Album.SetCover)
	adminAlbums.Put("/:id/photos/:photoId/caption", h.Album.UpdateCaption)

	api.All("/*", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	app.Static("/", cfg.StaticDir)
	app.Get("*", h.SPA.Index)

	return app
}
