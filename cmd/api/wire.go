//go:build wireinject
// +build wireinject

package main

import (
	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/controller"
	"github.com/brightframe/studio-backend/internal/handler"
	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/captcha"
	"github.com/brightframe/studio-backend/pkg/database"
	"github.com/brightframe/studio-backend/pkg/email"
	"github.com/brightframe/studio-backend/pkg/imaging"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"github.com/brightframe/studio-backend/pkg/payment"
	"github.com/brightframe/studio-backend/pkg/storage"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var repositorySet = wire.NewSet(
	database.NewDatabase,
	repository.NewProfileRepository,
	repository.NewPackageRepository,
	repository.NewAlbumRepository,
	repository.NewPhotoRepository,
	repository.NewAppointmentRepository,
	repository.NewContactRepository,
	wire.Bind(new(repository.ProfileStore), new(*repository.ProfileRepository)),
	wire.Bind(new(repository.PackageStore), new(*repository.PackageRepository)),
	wire.Bind(new(repository.AlbumStore), new(*repository.AlbumRepository)),
	wire.Bind(new(repository.PhotoStore), new(*repository.PhotoRepository)),
	wire.Bind(new(repository.AppointmentStore), new(*repository.AppointmentRepository)),
	wire.Bind(new(repository.ContactStore), new(*repository.ContactRepository)),
)

var infrastructureSet = wire.NewSet(
	storage.NewR2Storage,
	wire.Bind(new(storage.BlobStore), new(*storage.R2Storage)),
	provideThumbnailer,
	wire.Bind(new(imaging.Thumbnailer), new(*imaging.ResizeThumbnailer)),
	provideRegistry,
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	provideMetrics,
	wire.Bind(new(metrics.Recorder), new(*metrics.Metrics)),
	email.NewEmailService,
	wire.Bind(new(service.PasswordResetMailer), new(*email.EmailService)),
	wire.Bind(new(service.BookingMailer), new(*email.EmailService)),
	wire.Bind(new(service.ContactForwarder), new(*email.EmailService)),
	provideStripe,
	wire.Bind(new(service.PaymentGateway), new(*payment.StripeService)),
	provideCaptcha,
	wire.Bind(new(captcha.Verifier), new(*captcha.TurnstileVerifier)),
	provideQRService,
	provideTokenManager,
	utils.NewSanitizer,
	utils.NewValidator,
)

var serviceSet = wire.NewSet(
	service.NewAuthService,
	wire.Bind(new(middleware.SessionLoader), new(*service.AuthService)),
	service.NewUserService,
	service.NewPackageService,
	service.NewAlbumService,
	service.NewBookingService,
	service.NewAppointmentService,
	service.NewPaymentService,
	service.NewDashboardService,
	service.NewContactService,
	controller.NewAuthController,
	controller.NewUserController,
	controller.NewPaymentController,
)

var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewPackageHandler,
	handler.NewAlbumHandler,
	handler.NewBookingHandler,
	handler.NewDashboardHandler,
	handler.NewContactHandler,
	handler.NewPaymentHandler,
	handler.NewHealthHandler,
	provideSPAHandler,
	wire.Struct(new(handler.Handlers), "*"),
	handler.NewFiberApp,
)

func InitializeAPI(cfg *config.Config, log *zap.Logger) (*fiber.App, error) {
	wire.Build(repositorySet, infrastructureSet, serviceSet, handlerSet)
	return nil, nil
}
