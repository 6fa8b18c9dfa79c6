package domain

import "github.com/google/uuid"

// OpenEnded marks a PositionShift with no upper bound
const OpenEnded = -1

// PositionShift moves every card of ColumnID whose position lies in [From, To] by Delta.
// To == OpenEnded covers every position >= From.
type PositionShift struct {
	ColumnID uuid.UUID
	From     int
	To       int
	Delta    int
}

// Covers reports whether position falls inside the shifted range
func (s PositionShift) Covers(position int) bool {
	if position < s.From {
		return false
	}
	return s.To == OpenEnded || position <= s.To
}
