package domain

import "github.com/google/uuid"

// Column is an ordered container of cards within a board
type Column struct {
	BaseModel
	Title    string    `gorm:"type:varchar(100);not null" json:"title"`
	Position int       `gorm:"not null;index:idx_columns_board_position,priority:2" json:"position"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_columns_board_position,priority:1" json:"boardId"`
	Cards    []Card    `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// TableName specifies the table name for Column
func (Column) TableName() string {
	return "columns"
}
