package dto

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/taskvault/auth-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("password_strength", validatePasswordStrength)
}

// validatePasswordStrength enforces the canonical password policy: at
// least one uppercase letter, one digit and one symbol. Minimum length
// is a separate `min` tag on the field.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	hasUpper := false
	hasDigit := false
	hasSymbol := false

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSymbol = true
		}
		if hasUpper && hasDigit && hasSymbol {
			return true
		}
	}

	return hasUpper && hasDigit && hasSymbol
}

// validateRequest runs struct validation and converts failures into a
// domain error carrying the field -> messages mapping, so nothing
// downstream ever inspects validator types.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInternal(err)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		fields[name] = append(fields[name], messageForTag(fe))
	}
	return domain.ErrInvalidInput(fields)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "password_strength":
		return "must contain at least one uppercase letter, one digit, and one symbol"
	default:
		return "is invalid"
	}
}
