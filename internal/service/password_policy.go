package service

import (
	"fmt"

	"github.com/artisanhub/internal/models"
)

const minPasswordLength = 6

func validatePassword(minLength int, field, password string) error {
	if minLength < minPasswordLength {
		minLength = minPasswordLength
	}
	if len([]rune(password)) < minLength {
		return models.NewFieldError(field, fmt.Sprintf("Password must be at least %d characters long", minLength))
	}
	return nil
}
