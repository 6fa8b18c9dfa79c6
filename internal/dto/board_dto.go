package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	Title string `json:"title" binding:"required" example:"Sprint 12"`
}

// BoardSummaryResponse is a board list entry
type BoardSummaryResponse struct {
	ID          uuid.UUID `json:"id" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title       string    `json:"title" example:"Sprint 12"`
	OwnerID     uuid.UUID `json:"ownerId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	AccessLevel string    `json:"accessLevel" example:"own"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}

// BoardListResponse separates the boards a user owns from the boards shared with them
type BoardListResponse struct {
	Owned  []BoardSummaryResponse `json:"owned"`
	Shared []BoardSummaryResponse `json:"shared"`
}

// BoardDetailResponse is a board with its ordered columns and cards
// @Description accessLevel is the caller's capability: view, edit, or own
type BoardDetailResponse struct {
	ID          uuid.UUID        `json:"id" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title       string           `json:"title" example:"Sprint 12"`
	OwnerID     uuid.UUID        `json:"ownerId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	AccessLevel string           `json:"accessLevel" example:"edit"`
	CanEdit     bool             `json:"canEdit" example:"true"`
	IsOwner     bool             `json:"isOwner" example:"false"`
	Columns     []ColumnResponse `json:"columns"`
	CreatedAt   time.Time        `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time        `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// CreateColumnRequest represents the request to append a column
type CreateColumnRequest struct {
	Title string `json:"title" binding:"required" example:"Review"`
}

// ColumnResponse represents a column and its cards in position order
type ColumnResponse struct {
	ID       uuid.UUID      `json:"id" example:"3f2b1c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"`
	BoardID  uuid.UUID      `json:"boardId" example:"1275eac5-f0f9-4bee-8235-576a0042f42b"`
	Title    string         `json:"title" example:"To Do"`
	Position int            `json:"position" example:"0"`
	Cards    []CardResponse `json:"cards"`
}
