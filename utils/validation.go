package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	ifscRegex  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	upiRegex   = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
)

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func ValidateIFSC(ifsc string) bool {
	return ifscRegex.MatchString(strings.ToUpper(ifsc))
}

func ValidateUPI(upiID string) bool {
	return upiRegex.MatchString(upiID)
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func FormatValidationError(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				errs[field] = fmt.Sprintf("%s is required", field)
			case "email":
				errs[field] = "Invalid email format"
			case "url":
				errs[field] = fmt.Sprintf("%s must be a valid URL", field)
			case "min":
				errs[field] = fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param())
			case "max":
				errs[field] = fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
			case "gt":
				errs[field] = fmt.Sprintf("%s must be greater than %s", field, fieldError.Param())
			case "oneof":
				errs[field] = fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
			default:
				errs[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errs
}
