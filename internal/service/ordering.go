package service

import (
	"sort"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// Placement is a card's column and position
type Placement struct {
	ColumnID uuid.UUID
	Position int
}

// MovePlan is the set of sibling shifts plus the moved card's final placement.
// Shifts never cover the moved card's own source position.
type MovePlan struct {
	Shifts []domain.PositionShift
	Target Placement
	NoOp   bool
}

// CrossColumn reports whether the plan changes the card's column
func (p MovePlan) CrossColumn(source Placement) bool {
	return p.Target.ColumnID != source.ColumnID
}

// PlanMove computes the renumbering for moving the card at source.
// sourceCount and targetCount are the current card counts of the two columns
// (the same value when they are the same column). The requested target
// position is clamped to the valid range.
func PlanMove(source Placement, sourceCount int, target Placement, targetCount int) MovePlan {
	if source.ColumnID == target.ColumnID {
		t := clamp(target.Position, 0, sourceCount-1)
		s := source.Position
		plan := MovePlan{Target: Placement{ColumnID: source.ColumnID, Position: t}}

		switch {
		case t == s:
			plan.NoOp = true
		case t < s:
			plan.Shifts = []domain.PositionShift{
				{ColumnID: source.ColumnID, From: t, To: s - 1, Delta: 1},
			}
		default:
			plan.Shifts = []domain.PositionShift{
				{ColumnID: source.ColumnID, From: s + 1, To: t, Delta: -1},
			}
		}
		return plan
	}

	t := clamp(target.Position, 0, targetCount)
	return MovePlan{
		Shifts: []domain.PositionShift{
			{ColumnID: source.ColumnID, From: source.Position + 1, To: domain.OpenEnded, Delta: -1},
			{ColumnID: target.ColumnID, From: t, To: domain.OpenEnded, Delta: 1},
		},
		Target: Placement{ColumnID: target.ColumnID, Position: t},
	}
}

// PlanRemoval closes the gap left by removing the item at p
func PlanRemoval(p Placement) domain.PositionShift {
	return domain.PositionShift{ColumnID: p.ColumnID, From: p.Position + 1, To: domain.OpenEnded, Delta: -1}
}

// AppendPosition is the position of an item appended to count siblings
func AppendPosition(count int64) int {
	return int(count)
}

// IsDense reports whether positions are exactly 0..len-1 in any order
func IsDense(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
