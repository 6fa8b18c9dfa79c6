package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareLevel is the permission requested when sharing a board
type ShareLevel string

const (
	ShareLevelView ShareLevel = "view"
	ShareLevelEdit ShareLevel = "edit"
)

// IsValid reports whether the level is one of the two supported levels
func (l ShareLevel) IsValid() bool {
	return l == ShareLevelView || l == ShareLevelEdit
}

// CanEdit converts the level to the stored edit flag
func (l ShareLevel) CanEdit() bool {
	return l == ShareLevelEdit
}

// Share grants a non-owner user access to a board.
// At most one row exists per (user, board) pair.
type Share struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_board_shares_board_id" json:"boardId"`
	CanEdit   bool      `gorm:"not null;default:false" json:"canEdit"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Share
func (Share) TableName() string {
	return "board_shares"
}
