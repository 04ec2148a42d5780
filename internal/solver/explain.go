package solver

import (
	"fmt"

	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/die"
)

// Step is one narrated roll of a solved path.
type Step struct {
	// Roll is the 1-based index of the roll.
	Roll int
	// Direction is the travel direction rolled.
	Direction die.Direction
	// Coord is the cell the die landed on.
	Coord board.Coordinate
	// Orientation is the die's faces after the roll.
	Orientation die.Orientation
	// Checked is the constraint verified on entry; the zero value means the
	// cell was unconstrained.
	Checked board.Constraint
	// Message is the human-readable narration of the roll.
	Message string
}

// Explain renders a solved path as one step per roll, in order. Each step
// names the direction taken, the landing cell, the resulting faces and the
// constraint satisfied there, if any. The steps derive purely from the
// already-computed result, so calling Explain again reproduces them
// exactly.
func Explain(b board.Board, r Result) []Step {
	steps := make([]Step, 0, len(r.Moves))
	for i, m := range r.Moves {
		s := Step{
			Roll:        i + 1,
			Direction:   m.Direction,
			Coord:       m.State.Coord,
			Orientation: m.State.Orientation,
		}
		cell, _ := b.At(m.State.Coord)
		if cell.Constraint.Constrains() {
			s.Checked = cell.Constraint
			s.Message = fmt.Sprintf("roll %d: %s to %v, %s (satisfied with %d); faces %s",
				s.Roll, s.Direction, s.Coord, cell.Constraint, s.Orientation.Bottom, s.Orientation)
		} else {
			s.Message = fmt.Sprintf("roll %d: %s to %v, no constraint; faces %s",
				s.Roll, s.Direction, s.Coord, s.Orientation)
		}
		steps = append(steps, s)
	}
	return steps
}
