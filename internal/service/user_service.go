package service

import (
	"context"
	"errors"
	"strings"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/repository"
	"github.com/brightframe/studio-backend/pkg/listview"
	"go.uber.org/zap"
)

type UserService struct {
	profiles repository.ProfileStore
	log      *zap.Logger
}

func NewUserService(profiles repository.ProfileStore, log *zap.Logger) *UserService {
	return &UserService{
		profiles: profiles,
		log:      log.Named("users"),
	}
}

func (s *UserService) GetProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, remote("Failed to load profile", "get profile", err)
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, session *models.Session, req models.UpdateProfileRequest, n Notifier) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, session)
	if err != nil {
		return nil, fail(n, err)
	}
	profile.FullName = strings.TrimSpace(req.FullName)
	profile.Phone = strings.TrimSpace(req.Phone)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fail(n, remote("Failed to update profile", "update profile", err))
	}
	n.Success("Profile updated successfully")
	return profile, nil
}

// ListProfiles returns every profile for the back office, sorted and
// filtered by name, email or phone. Fetch failures yield an empty list.
func (s *UserService) ListProfiles(ctx context.Context, query string, sort listview.SortState) []models.Profile {
	profiles, err := s.profiles.List(ctx, sort)
	if err != nil {
		s.log.Warn("failed to load profiles", zap.Error(err))
		return []models.Profile{}
	}
	return listview.Filter(profiles, query, func(p models.Profile) []string {
		return []string{p.FullName, p.Email, p.Phone}
	})
}
