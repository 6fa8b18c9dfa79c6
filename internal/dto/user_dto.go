package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the account registration payload
type RegisterRequest struct {
	Username        string `json:"username" binding:"required" example:"alice"`
	Email           string `json:"email" binding:"required" example:"alice@example.com"`
	Password        string `json:"password" binding:"required" example:"s3cret"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"s3cret"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// UpdateSettingsRequest toggles the display preference
type UpdateSettingsRequest struct {
	DarkMode *bool `json:"darkMode" binding:"required" example:"true"`
}

// UserResponse represents a user account
type UserResponse struct {
	ID        uuid.UUID `json:"id" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	DarkMode  bool      `json:"darkMode" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time    `json:"expiresAt" example:"2024-01-16T10:30:00Z"`
	User        UserResponse `json:"user"`
}
