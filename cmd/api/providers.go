package main

import (
	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/handler"
	"github.com/brightframe/studio-backend/pkg/captcha"
	"github.com/brightframe/studio-backend/pkg/imaging"
	"github.com/brightframe/studio-backend/pkg/jwt"
	"github.com/brightframe/studio-backend/pkg/metrics"
	"github.com/brightframe/studio-backend/pkg/payment"
	"github.com/brightframe/studio-backend/pkg/qrcode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideTokenManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer)
}

func provideThumbnailer() *imaging.ResizeThumbnailer {
	return imaging.NewThumbnailer(imaging.DefaultMaxSize)
}

func provideQRService(cfg *config.Config) *qrcode.QRService {
	return qrcode.NewQRService(cfg.PublicSiteURL)
}

func provideStripe(cfg *config.Config) *payment.StripeService {
	return payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
}

func provideCaptcha(cfg *config.Config) *captcha.TurnstileVerifier {
	return captcha.NewTurnstileVerifier(cfg.TurnstileSecret)
}

func provideSPAHandler(cfg *config.Config) *handler.SPAHandler {
	return handler.NewSPAHandler(cfg.StaticDir)
}
