package controller

import (
	"context"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/listview"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

func (c *UserController) GetProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	return c.userService.GetProfile(ctx, session)
}

func (c *UserController) UpdateProfile(ctx context.Context, session *models.Session, req models.UpdateProfileRequest, n service.Notifier) (*models.Profile, error) {
	return c.userService.UpdateProfile(ctx, session, req, n)
}

func (c *UserController) ListProfiles(ctx context.Context, query string, sort listview.SortState) []models.Profile {
	return c.userService.ListProfiles(ctx, query, sort)
}
