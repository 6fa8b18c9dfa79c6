package service

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

type simCard struct {
	id  int
	col uuid.UUID
	pos int
}

// simulate applies a plan to an in-memory board the way the repository does
func simulate(cards []simCard, moved int, plan MovePlan) []simCard {
	out := append([]simCard(nil), cards...)
	if plan.NoOp {
		return out
	}
	for _, shift := range plan.Shifts {
		for i := range out {
			if out[i].id == moved {
				continue
			}
			if out[i].col == shift.ColumnID && shift.Covers(out[i].pos) {
				out[i].pos += shift.Delta
			}
		}
	}
	for i := range out {
		if out[i].id == moved {
			out[i].col = plan.Target.ColumnID
			out[i].pos = plan.Target.Position
		}
	}
	return out
}

func columnOrder(cards []simCard, col uuid.UUID) []int {
	var in []simCard
	for _, c := range cards {
		if c.col == col {
			in = append(in, c)
		}
	}
	sort.Slice(in, func(i, j int) bool { return in[i].pos < in[j].pos })
	ids := make([]int, len(in))
	for i, c := range in {
		ids[i] = c.id
	}
	return ids
}

func columnPositions(cards []simCard, col uuid.UUID) []int {
	var positions []int
	for _, c := range cards {
		if c.col == col {
			positions = append(positions, c.pos)
		}
	}
	return positions
}

func buildColumns(a, b uuid.UUID, aCount, bCount int) []simCard {
	cards := make([]simCard, 0, aCount+bCount)
	for i := 0; i < aCount; i++ {
		cards = append(cards, simCard{id: i, col: a, pos: i})
	}
	for i := 0; i < bCount; i++ {
		cards = append(cards, simCard{id: 100 + i, col: b, pos: i})
	}
	return cards
}

func without(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func TestPlanMove_WithinColumn(t *testing.T) {
	col := uuid.New()

	tests := []struct {
		name     string
		from, to int
		count    int
		order    []int
		position int
		noop     bool
	}{
		{"forward", 0, 1, 3, []int{1, 0, 2}, 1, false},
		{"backward", 2, 0, 3, []int{2, 0, 1}, 0, false},
		{"to end", 0, 2, 3, []int{1, 2, 0}, 2, false},
		{"same position", 1, 1, 3, []int{0, 1, 2}, 1, true},
		{"clamped past end", 0, 99, 3, []int{1, 2, 0}, 2, false},
		{"clamped to own position", 2, 10, 3, []int{0, 1, 2}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := buildColumns(col, uuid.New(), tt.count, 0)
			plan := PlanMove(Placement{ColumnID: col, Position: tt.from}, tt.count, Placement{ColumnID: col, Position: tt.to}, tt.count)

			assert.Equal(t, tt.noop, plan.NoOp)
			assert.Equal(t, tt.position, plan.Target.Position)
			assert.False(t, plan.CrossColumn(Placement{ColumnID: col, Position: tt.from}))

			after := simulate(cards, tt.from, plan)
			assert.Equal(t, tt.order, columnOrder(after, col))
			assert.True(t, IsDense(columnPositions(after, col)))
		})
	}
}

func TestPlanMove_AcrossColumns(t *testing.T) {
	todo, done := uuid.New(), uuid.New()
	cards := buildColumns(todo, done, 3, 2)

	plan := PlanMove(Placement{ColumnID: todo, Position: 1}, 3, Placement{ColumnID: done, Position: 1}, 2)
	assert.True(t, plan.CrossColumn(Placement{ColumnID: todo, Position: 1}))
	assert.Equal(t, done, plan.Target.ColumnID)

	after := simulate(cards, 1, plan)
	assert.Equal(t, []int{0, 2}, columnOrder(after, todo))
	assert.Equal(t, []int{100, 1, 101}, columnOrder(after, done))

	// positions past the end append
	plan = PlanMove(Placement{ColumnID: todo, Position: 0}, 3, Placement{ColumnID: done, Position: 50}, 2)
	assert.Equal(t, 2, plan.Target.Position)

	// into an empty column
	empty := uuid.New()
	plan = PlanMove(Placement{ColumnID: todo, Position: 0}, 3, Placement{ColumnID: empty, Position: 3}, 0)
	assert.Equal(t, 0, plan.Target.Position)
}

func TestPlanRemoval(t *testing.T) {
	col := uuid.New()
	cards := buildColumns(col, uuid.New(), 4, 0)

	shift := PlanRemoval(Placement{ColumnID: col, Position: 1})
	var after []simCard
	for _, c := range cards {
		if c.id == 1 {
			continue
		}
		if c.col == shift.ColumnID && shift.Covers(c.pos) {
			c.pos += shift.Delta
		}
		after = append(after, c)
	}

	assert.Equal(t, []int{0, 2, 3}, columnOrder(after, col))
	assert.True(t, IsDense(columnPositions(after, col)))
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]int{2, 0, 1}))
	assert.False(t, IsDense([]int{0, 2}))
	assert.False(t, IsDense([]int{0, 0, 1}))
	assert.False(t, IsDense([]int{1}))
}

func TestAppendPosition(t *testing.T) {
	assert.Equal(t, 0, AppendPosition(0))
	assert.Equal(t, 5, AppendPosition(5))
}

func TestProperty_MoveKeepsColumnsDense(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	a, b := uuid.New(), uuid.New()

	properties.Property("every move leaves both columns dense and loses no card", prop.ForAll(
		func(sourceCount, targetCount, from, to int, cross bool) bool {
			from = from % sourceCount
			cards := buildColumns(a, b, sourceCount, targetCount)

			target := a
			count := sourceCount
			if cross {
				target = b
				count = targetCount
			}
			plan := PlanMove(Placement{ColumnID: a, Position: from}, sourceCount, Placement{ColumnID: target, Position: to}, count)
			after := simulate(cards, from, plan)

			if len(after) != sourceCount+targetCount {
				return false
			}
			if !IsDense(columnPositions(after, a)) || !IsDense(columnPositions(after, b)) {
				return false
			}
			for _, c := range after {
				if c.id == from {
					return c.col == plan.Target.ColumnID && c.pos == plan.Target.Position
				}
			}
			return false
		},
		gen.IntRange(1, 15),
		gen.IntRange(0, 15),
		gen.IntRange(0, 100),
		gen.IntRange(0, 30),
		gen.Bool(),
	))

	properties.Property("siblings keep their relative order", prop.ForAll(
		func(sourceCount, targetCount, from, to int, cross bool) bool {
			from = from % sourceCount
			cards := buildColumns(a, b, sourceCount, targetCount)

			target := a
			count := sourceCount
			if cross {
				target = b
				count = targetCount
			}
			plan := PlanMove(Placement{ColumnID: a, Position: from}, sourceCount, Placement{ColumnID: target, Position: to}, count)
			after := simulate(cards, from, plan)

			beforeA := without(columnOrder(cards, a), from)
			beforeB := columnOrder(cards, b)
			afterA := without(columnOrder(after, a), from)
			afterB := without(columnOrder(after, b), from)
			return assert.ObjectsAreEqual(beforeA, afterA) && assert.ObjectsAreEqual(beforeB, afterB)
		},
		gen.IntRange(1, 15),
		gen.IntRange(0, 15),
		gen.IntRange(0, 100),
		gen.IntRange(0, 30),
		gen.Bool(),
	))

	properties.Property("moving to the current position is a no-op", prop.ForAll(
		func(count, from int) bool {
			from = from % count
			plan := PlanMove(Placement{ColumnID: a, Position: from}, count, Placement{ColumnID: a, Position: from}, count)
			return plan.NoOp && len(plan.Shifts) == 0
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 100),
	))

	properties.Property("shifts never cover the moved card's source position", prop.ForAll(
		func(count, from, to int) bool {
			from = from % count
			plan := PlanMove(Placement{ColumnID: a, Position: from}, count, Placement{ColumnID: a, Position: to}, count)
			for _, shift := range plan.Shifts {
				if shift.ColumnID == a && shift.Covers(from) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 100),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
