package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"kanban-board-api/internal/response"
)

const (
	maxTitleLength    = 100
	minUsernameLength = 2
	maxUsernameLength = 20
	maxEmailLength    = 120
)

var validate = validator.New()

// normalizeTitle trims the title and enforces 1..100 characters
func normalizeTitle(field, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", response.NewValidationError(fmt.Sprintf("%s is required", field), "")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", response.NewValidationError(fmt.Sprintf("%s must be at most %d characters", field, maxTitleLength), "")
	}
	return title, nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return response.NewValidationError(
			fmt.Sprintf("Username must be between %d and %d characters", minUsernameLength, maxUsernameLength), "")
	}
	return nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, fmt.Sprintf("required,email,max=%d", maxEmailLength)); err != nil {
		return response.NewValidationError("A valid email address is required", "")
	}
	return nil
}

// normalizeEmail lowercases and trims an address before storage or lookup
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
