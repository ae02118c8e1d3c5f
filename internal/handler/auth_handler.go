package handler

import (
	"github.com/brightframe/studio-backend/internal/controller"
	"github.com/brightframe/studio-backend/internal/models"
	"github.com/brightframe/studio-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authController *controller.AuthController
	validator      *utils.Validator
	log            *zap.Logger
}

func NewAuthHandler(authController *controller.AuthController, validator *utils.Validator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		validator:      validator,
		log:            log,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	res, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, nil)
	}

	return success(c, fiber.StatusCreated, res, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	res, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, nil)
	}

	return c.JSON(models.SuccessResponse(res, "Login successful"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	if err := h.authController.ForgotPassword(c.UserContext(), req.Email); err != nil {
		h.log.Warn("password reset email failed", zap.Error(err))
	}

	return c.JSON(models.SuccessResponse(nil, "If the address is registered, a reset link is on its way"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(req); err != nil {
		return fail(c, h.log, err, nil)
	}

	if err := h.authController.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return fail(c, h.log, err, nil)
	}

	return c.JSON(models.SuccessResponse(nil, "Password reset successful"))
}
