// Package validation configures the struct validator shared by the HTTP
// handlers and the API client.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// New returns a validator with the CRM rules registered. Field names in
// errors are taken from json tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("statuskey", func(fl validator.FieldLevel) bool {
		return domain.ValidKey(fl.Field().String())
	})
	return v
}

// Describe flattens validator errors into one readable message.
func Describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "hexcolor":
		return field + " must be a hex color like #3B82F6"
	case "statuskey":
		if domain.ReservedKey(fmt.Sprint(fe.Value())) {
			return fmt.Sprintf("%s %q is reserved", field, fe.Value())
		}
		return fmt.Sprintf("%s %q must be a lowercase identifier", field, fe.Value())
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
