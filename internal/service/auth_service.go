package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightframe/studio-backend/internal/config"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/bcrypt"
	jwtPkg "github.com/brightframe/studio-backend/pkg/jwt"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	TokenExpiryReset = time.Hour
	resetTokenType   = "password_reset"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

// PasswordResetMailer delivers reset links.
type PasswordResetMailer interface {
	SendPasswordResetEmail(email, resetToken string) error
}

type AuthService struct {
	profiles  repository.ProfileStore
	mailer    PasswordResetMailer
	tokens    *jwtPkg.Manager
	jwtSecret []byte
	jwtIssuer string
	log       *zap.Logger
	now       func() time.Time
}

func NewAuthService(profiles repository.ProfileStore, mailer PasswordResetMailer, tokens *jwtPkg.Manager, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{
		profiles:  profiles,
		mailer:    mailer,
		tokens:    tokens,
		jwtSecret: []byte(cfg.JWTSecret),
		jwtIssuer: cfg.JWTIssuer,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

// Register creates a customer profile and signs the user in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	_, err := s.profiles.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, models.NewValidationError("email", "An account with this email already exists")
	case !errors.Is(err, models.ErrNotFound):
		return nil, remote("Failed to create account", "get profile", err)
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Password: hashedPassword,
		Role:     models.RoleCustomer,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, remote("Failed to create account", "create profile", err)
	}
	s.log.Info("profile registered", zap.String("user_id", profile.ID))

	return s.issue(profile)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, remote("Failed to sign in", "get profile", err)
	}
	if err := bcrypt.ComparePassword(profile.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(profile)
}

func (s *AuthService) issue(profile *models.Profile) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	return &models.AuthResponse{Token: token, Profile: *profile}, nil
}

// LoadSession resolves a bearer token to a session. The role is read from
// the stored profile, not from the token.
func (s *AuthService) LoadSession(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	profile, err := s.profiles.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	if _, err := models.ParseRole(string(profile.Role)); err != nil {
		return nil, models.ErrUnauthorized
	}
	return models.NewSession(profile), nil
}

// ForgotPassword emails a reset link. Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.Warn("forgot password lookup failed", zap.Error(err))
		}
		return nil
	}

	resetToken, err := s.resetToken(profile)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordResetEmail(profile.Email, resetToken)
}

func (s *AuthService) resetToken(profile *models.Profile) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  profile.ID,
		"exp":  now.Add(TokenExpiryReset).Unix(),
		"iat":  now.Unix(),
		"iss":  s.jwtIssuer,
		"type": resetTokenType,
		"pwd":  passwordFingerprint(profile.Password),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// passwordFingerprint ties a reset token to the current hash so the token
// stops working once the password changes.
func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}
	if claims["type"] != resetTokenType || claims["iss"] != s.jwtIssuer {
		return ErrInvalidResetToken
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return ErrInvalidResetToken
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return remote("Failed to reset password", "get profile", err)
	}
	if claims["pwd"] != passwordFingerprint(profile.Password) {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.profiles.UpdatePassword(ctx, profile.ID, hashedPassword); err != nil {
		return remote("Failed to reset password", "update password", err)
	}
	return nil
}
