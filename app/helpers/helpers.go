package helpers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/davrk/go-storefront/app/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUser contextKey = "principal"
)

// PrincipalFromRequest returns the authenticated user attached by the
// authentication middleware, or nil for unauthenticated requests.
func PrincipalFromRequest(r *http.Request) *models.User {
	user, ok := r.Context().Value(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

func PasswordCompare(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// FormatValidationErrors flattens validator errors into a field→message map
// suitable for a 400 response body.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gte":
			errorMessages[field] = fmt.Sprintf("%s must be %s or more", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return errorMessages
}
