package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
	StudioInbox  string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	JWTSecret         string
	JWTIssuer         string
	CORSOrigins       string
	PublicSiteURL     string
	StaticDir         string
	TurnstileSecret   string
	UploadConcurrency int

	R2     R2Config
	Email  EmailConfig
	Stripe StripeConfig
}

// MissingError lists every required variable that was not set.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Keys, ", ")
}

// LoadConfig reads the process environment. Required keys are never
// defaulted; if any is absent a *MissingError naming all of them is
// returned.
func LoadConfig() (*Config, error) {
	return Load(os.Getenv)
}

// Load is LoadConfig over an arbitrary lookup function.
func Load(getenv func(string) string) (*Config, error) {
	var missing []string
	required := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	optional := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		DatabaseURL: required("DATABASE_URL"),
		JWTSecret:   required("JWT_SECRET"),
		R2: R2Config{
			AccountID:       required("R2_ACCOUNT_ID"),
			AccessKeyID:     required("R2_ACCESS_KEY_ID"),
			SecretAccessKey: required("R2_SECRET_ACCESS_KEY"),
			Bucket:          required("R2_BUCKET"),
			PublicURL:       strings.TrimRight(required("R2_PUBLIC_URL"), "/"),
		},
		Env:             optional("APP_ENV", "development"),
		Port:            optional("PORT", "8080"),
		JWTIssuer:       optional("JWT_ISSUER", "studio-backend"),
		CORSOrigins:     optional("CORS_ORIGINS", "http://localhost:5173"),
		PublicSiteURL:   strings.TrimRight(optional("PUBLIC_SITE_URL", "http://localhost:5173"), "/"),
		StaticDir:       optional("STATIC_DIR", "./web/dist"),
		TurnstileSecret: optional("TURNSTILE_SECRET_KEY", ""),
		Email: EmailConfig{
			ResendAPIKey: optional("RESEND_API_KEY", ""),
			FromAddress:  optional("EMAIL_FROM_ADDRESS", "studio@example.com"),
			FromName:     optional("EMAIL_FROM_NAME", "Studio"),
			StudioInbox:  optional("STUDIO_INBOX", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     optional("STRIPE_SECRET_KEY", ""),
			WebhookSecret: optional("STRIPE_WEBHOOK_SECRET", ""),
		},
	}

	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	concurrency, err := strconv.Atoi(optional("UPLOAD_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("UPLOAD_CONCURRENCY must be a positive integer, got %q", getenv("UPLOAD_CONCURRENCY"))
	}
	cfg.UploadConcurrency = concurrency

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
