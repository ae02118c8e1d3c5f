package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightframe/studio-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("booking_date", validateBookingDate)
	v.RegisterValidation("role", validateRole)

	return &Validator{
		validate: v,
	}
}

// Struct validates s and reports the first failing field as a
// *models.ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return models.NewValidationError(toSnake(fe.Field()), describe(fe))
	}
	return models.NewValidationError("", err.Error())
}

// Var validates a single value against tag.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		return models.NewValidationError(field, "is invalid")
	}
	return nil
}

// IsSupportedImage reports whether mimeType is an accepted photo format.
func IsSupportedImage(mimeType string) bool {
	return supportedImageTypes[strings.ToLower(mimeType)]
}

func validateImageType(fl validator.FieldLevel) bool {
	return IsSupportedImage(fl.Field().String())
}

func validateBookingDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}

func validateRole(fl validator.FieldLevel) bool {
	_, err := models.ParseRole(fl.Field().String())
	return err == nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	case "booking_date":
		return "must be a date in YYYY-MM-DD format"
	case "supported_image":
		return "must be a JPEG, PNG, GIF or WebP image"
	case "role":
		return "must be customer or admin"
	default:
		return "is invalid"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
