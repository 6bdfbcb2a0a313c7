package utils

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/staffhub/staff-admin-service/exception"
	"github.com/staffhub/staff-admin-service/view"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// the allowed role values contain spaces, so enum checks are custom
	// validations instead of oneof tag parameters
	_ = v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		return view.IsValidStaffRole(fl.Field().String())
	})
	_ = v.RegisterValidation("staffcity", func(fl validator.FieldLevel) bool {
		return view.IsValidStaffCity(fl.Field().String())
	})
	return v
}

// ValidateObject checks a struct against its validate tags. Violations are
// not short-circuited: every violated constraint contributes one message to
// the resulting CustomError.
func ValidateObject(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, violationMessage(fieldError))
	}
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.ValidationFailed,
		Message: exception.ValidationFailedMsg,
		Params:  map[string]interface{}{"errors": messages},
	}
}

func violationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldError.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fieldError.Field())
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", fieldError.Field(), fieldError.Param())
	case "staffrole":
		return fmt.Sprintf("%s must be one of: %s", fieldError.Field(), strings.Join(view.StaffRoles, ", "))
	case "staffcity":
		return fmt.Sprintf("%s must be one of: %s", fieldError.Field(), strings.Join(view.StaffCities, ", "))
	default:
		return fmt.Sprintf("%s is invalid", fieldError.Field())
	}
}
