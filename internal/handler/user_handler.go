package handler

import (
	"github.com/brightframe/studio-backend/internal/controller"
	"github.com/brightframe/studio-backend/internal/middleware"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/internal/service"
	"github.com/brightframe/studio-backend/pkg/listview"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userController *controller.UserController
	validator      *utils.Validator
	log            *zap.Logger
}

func NewUserHandler(userController *controller.UserController, validator *utils.Validator, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userController: userController,
		validator:      validator,
		log:            log,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.userController.GetProfile(c.UserContext(), middleware.SessionFrom(c))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(models.SuccessResponse(profile, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	notes := service.NewNotificationLog()
	profile, err := h.userController.UpdateProfile(c.UserContext(), middleware.SessionFrom(c), req, notes)
	if err != nil {
		return fail(c, h.log, err, notes)
	}
	return success(c, fiber.StatusOK, profile, "Profile updated successfully", notes)
}

var profileSortColumns = map[string]bool{
	"full_name":  true,
	"email":      true,
	"role":       true,
	"created_at": true,
}

// ListUsers serves the back office user list with ?q=, ?sort= and ?order=.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	sort := sortState(c, profileSortColumns, "created_at")
	profiles := h.userController.ListProfiles(c.UserContext(), c.Query("q"), sort)
	return c.JSON(models.SuccessResponse(fiber.Map{
		"users": profiles,
		"sort":  sort,
	}, ""))
}

// sortState reads ?sort= and ?order=. Unknown columns fall back to
// fallback, newest first.
func sortState(c *fiber.Ctx, allowed map[string]bool, fallback string) listview.SortState {
	column := c.Query("sort")
	if !allowed[column] {
		return listview.SortState{Column: fallback, Direction: listview.Desc}
	}
	return listview.SortState{Column: column, Direction: listview.ParseDirection(c.Query("order"))}
}
