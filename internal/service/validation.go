package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

// NewValidator returns a validator with the schedule-specific tags registered:
// hhmm (24h "HH:mm"), isodate ("YYYY-MM-DD") and overridekind.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return dateutil.IsClock(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return dateutil.IsDate(fl.Field().String())
	})
	_ = v.RegisterValidation("overridekind", func(fl validator.FieldLevel) bool {
		_, err := models.ParseOverrideKind(fl.Field().String())
		return err == nil
	})
	return v
}

// validationError converts validator output into a VALIDATION_ERROR listing the failing fields.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[snake(fe.Field())] = describeTag(fe)
	}
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	appErr.Details = details
	return appErr
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hhmm":
		return "must be a time in HH:mm format"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "overridekind":
		return "must be one of edit, cancel, add"
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func snake(field string) string {
	var b strings.Builder
	for i, r := range field {
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

func invalid(message string) error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}

func storageError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, message)
}

func strPtr(v string) *string {
	return &v
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
