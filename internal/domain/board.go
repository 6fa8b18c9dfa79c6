package domain

import "github.com/google/uuid"

// DefaultColumnTitles are the columns every new board starts with, in position order
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// Board is the top-level container owned by exactly one user
type Board struct {
	BaseModel
	Title   string    `gorm:"type:varchar(100);not null" json:"title"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Columns []Column  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
	Shares  []Share   `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// IsOwnedBy reports whether userID owns the board
func (b *Board) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID == userID
}
