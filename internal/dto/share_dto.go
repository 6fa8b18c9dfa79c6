package dto

import (
	"time"

	"github.com/google/uuid"
)

// ShareBoardRequest shares a board with the user registered under Email
type ShareBoardRequest struct {
	Email string `json:"email" binding:"required" example:"other@example.com"`
	Level string `json:"level" binding:"required" example:"view" enums:"view,edit"`
}

// UpdateShareRequest changes an existing share's level
type UpdateShareRequest struct {
	Level string `json:"level" binding:"required" example:"edit" enums:"view,edit"`
}

// ShareResponse represents a user a board is shared with
type ShareResponse struct {
	UserID    uuid.UUID `json:"userId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	BoardID   uuid.UUID `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Username  string    `json:"username" example:"other"`
	Email     string    `json:"email" example:"other@example.com"`
	Level     string    `json:"level" example:"view"`
	CanEdit   bool      `json:"canEdit" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}

// ShareBoardResponse reports the share and whether it already existed.
// An existing share is returned unchanged.
type ShareBoardResponse struct {
	Share         ShareResponse `json:"share"`
	AlreadyShared bool          `json:"alreadyShared" example:"false"`
}
