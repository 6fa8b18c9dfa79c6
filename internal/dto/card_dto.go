package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCardRequest represents the request to append a card to a column
type CreateCardRequest struct {
	Title       string `json:"title" binding:"required" example:"Write release notes"`
	Description string `json:"description" example:"Cover the API changes"`
}

// UpdateCardRequest replaces a card's text
type UpdateCardRequest struct {
	Title       string `json:"title" binding:"required" example:"Write release notes"`
	Description string `json:"description" example:"Cover the API changes"`
}

// MoveCardRequest places a card at a position in a column of the same board.
// Both fields are required; pointers distinguish absent from zero.
type MoveCardRequest struct {
	ColumnID *uuid.UUID `json:"columnId" example:"3f2b1c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"`
	Position *int       `json:"position" example:"0"`
}

// CardResponse represents a card
type CardResponse struct {
	ID          uuid.UUID `json:"id" example:"9a8b7c6d-5e4f-3a2b-1c0d-9e8f7a6b5c4d"`
	ColumnID    uuid.UUID `json:"columnId" example:"3f2b1c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"`
	Title       string    `json:"title" example:"Write release notes"`
	Description string    `json:"description" example:"Cover the API changes"`
	Position    int       `json:"position" example:"1"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}
