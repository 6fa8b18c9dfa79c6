package domain

import "github.com/google/uuid"

// Card is a single task item positioned within a column.
// Position is deliberately not unique-indexed: bulk shifts pass through
// transient duplicates inside a transaction.
type Card struct {
	BaseModel
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Position    int       `gorm:"not null;index:idx_cards_column_position,priority:2" json:"position"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cards_column_position,priority:1" json:"columnId"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
