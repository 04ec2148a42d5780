// Package board holds the immutable grid model: cell constraints, printed
// labels, the start configuration and the goal policy. A Board is built once
// by New and never mutated afterwards, so it is safe to share read-only
// across callers.
package board

import (
	"errors"
	"fmt"

	"github.com/louisbranch/die-agony/internal/die"
)

// ErrDimensions indicates a board without at least one row and one column.
var ErrDimensions = errors.New("board must have at least one row and one column")

// ErrStartOutOfBounds indicates the start cell lies outside the board.
var ErrStartOutOfBounds = errors.New("start cell is outside the board")

// ErrGoalOutOfBounds indicates the goal cell lies outside the board.
var ErrGoalOutOfBounds = errors.New("goal cell is outside the board")

// ErrConstraintOutOfBounds indicates a constrained cell lies outside the board.
var ErrConstraintOutOfBounds = errors.New("constrained cell is outside the board")

// ErrLabelShape indicates a label table that does not cover rows x cols.
var ErrLabelShape = errors.New("labels must cover every row and column")

// ErrOutOfBounds indicates a coordinate outside the board rectangle.
var ErrOutOfBounds = errors.New("coordinate is outside the board")

// Coordinate identifies a grid cell. Row 0 is the northernmost row; columns
// grow eastward.
type Coordinate struct {
	Row int
	Col int
}

// Step returns the neighboring coordinate one cell away in direction d. The
// result may lie outside any particular board; bounds belong to
// Board.Contains.
func (c Coordinate) Step(d die.Direction) Coordinate {
	switch d {
	case die.North:
		return Coordinate{Row: c.Row - 1, Col: c.Col}
	case die.East:
		return Coordinate{Row: c.Row, Col: c.Col + 1}
	case die.South:
		return Coordinate{Row: c.Row + 1, Col: c.Col}
	case die.West:
		return Coordinate{Row: c.Row, Col: c.Col - 1}
	default:
		return c
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Cell is one grid square: its coordinate, its entry constraint and its
// printed label. The label is meaningful only on labeled boards.
type Cell struct {
	Coord      Coordinate
	Constraint Constraint
	Label      int
}

// Layout describes a board for New to build. Constraints maps coordinates to
// their entry requirement. Labels, when present, must hold Rows x Cols
// numbers in row-major order with row 0 first. A nil GoalOrientation means
// any orientation at the goal cell completes the puzzle.
type Layout struct {
	Rows int
	Cols int

	Start            Coordinate
	StartOrientation die.Orientation

	Goal            Coordinate
	GoalOrientation *die.Orientation

	Constraints map[Coordinate]Constraint
	Labels      [][]int
}

// Board is the immutable grid model. The zero value is not usable; build one
// with New or take the compiled-in puzzle from Default.
type Board struct {
	rows int
	cols int

	start       Coordinate
	startOrient die.Orientation

	goal       Coordinate
	goalOrient *die.Orientation

	constraints map[Coordinate]Constraint

	labels   [][]int
	labelSum int
}

// New validates a layout and builds the board. Malformed layouts are
// construction-time defects: every sentinel in this package's Err vars names
// one class, wrapped with the offending coordinate or value where useful.
func New(l Layout) (Board, error) {
	if l.Rows < 1 || l.Cols < 1 {
		return Board{}, fmt.Errorf("%w: got %dx%d", ErrDimensions, l.Rows, l.Cols)
	}

	b := Board{
		rows:        l.Rows,
		cols:        l.Cols,
		start:       l.Start,
		startOrient: l.StartOrientation,
		goal:        l.Goal,
	}

	if !b.Contains(l.Start) {
		return Board{}, fmt.Errorf("%w: %v", ErrStartOutOfBounds, l.Start)
	}
	if err := l.StartOrientation.Validate(); err != nil {
		return Board{}, fmt.Errorf("start orientation: %w", err)
	}
	if !b.Contains(l.Goal) {
		return Board{}, fmt.Errorf("%w: %v", ErrGoalOutOfBounds, l.Goal)
	}
	if l.GoalOrientation != nil {
		if err := l.GoalOrientation.Validate(); err != nil {
			return Board{}, fmt.Errorf("goal orientation: %w", err)
		}
		required := *l.GoalOrientation
		b.goalOrient = &required
	}

	if len(l.Constraints) > 0 {
		b.constraints = make(map[Coordinate]Constraint, len(l.Constraints))
		for coord, constraint := range l.Constraints {
			if !b.Contains(coord) {
				return Board{}, fmt.Errorf("%w: %v", ErrConstraintOutOfBounds, coord)
			}
			if err := constraint.validate(); err != nil {
				return Board{}, fmt.Errorf("cell %v: %w", coord, err)
			}
			b.constraints[coord] = constraint
		}
	}

	if l.Labels != nil {
		if len(l.Labels) != l.Rows {
			return Board{}, fmt.Errorf("%w: got %d rows, want %d", ErrLabelShape, len(l.Labels), l.Rows)
		}
		b.labels = make([][]int, l.Rows)
		for r, row := range l.Labels {
			if len(row) != l.Cols {
				return Board{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrLabelShape, r, len(row), l.Cols)
			}
			b.labels[r] = make([]int, l.Cols)
			copy(b.labels[r], row)
			for _, label := range row {
				b.labelSum += label
			}
		}
	}

	return b, nil
}

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// Contains reports whether c lies inside the board rectangle.
func (b Board) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// At returns the cell at c, or ErrOutOfBounds.
func (b Board) At(c Coordinate) (Cell, error) {
	if !b.Contains(c) {
		return Cell{}, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	cell := Cell{Coord: c, Constraint: b.constraints[c]}
	if b.labels != nil {
		cell.Label = b.labels[c.Row][c.Col]
	}
	return cell, nil
}

// Start returns the start coordinate and the die's starting orientation.
func (b Board) Start() (Coordinate, die.Orientation) {
	return b.start, b.startOrient
}

// Goal returns the goal coordinate.
func (b Board) Goal() Coordinate { return b.goal }

// IsGoal reports whether c is the goal coordinate.
func (b Board) IsGoal(c Coordinate) bool { return c == b.goal }

// GoalOrientation returns the required final orientation and true when the
// puzzle demands one; false means any orientation at the goal cell wins.
func (b Board) GoalOrientation() (die.Orientation, bool) {
	if b.goalOrient == nil {
		return die.Orientation{}, false
	}
	return *b.goalOrient, true
}

// Labeled reports whether the board carries printed cell labels.
func (b Board) Labeled() bool { return b.labels != nil }

// LabelSum returns the sum of every cell label, or 0 on unlabeled boards.
func (b Board) LabelSum() int { return b.labelSum }

// UnvisitedSum returns the sum of labels over cells absent from visited.
// Duplicate and out-of-bounds entries in visited are ignored. The second
// return is false on unlabeled boards.
func (b Board) UnvisitedSum(visited []Coordinate) (int, bool) {
	if b.labels == nil {
		return 0, false
	}
	seen := make(map[Coordinate]bool, len(visited))
	sum := b.labelSum
	for _, c := range visited {
		if seen[c] || !b.Contains(c) {
			continue
		}
		seen[c] = true
		sum -= b.labels[c.Row][c.Col]
	}
	return sum, true
}

// Constrained returns the cells carrying a constraint, in row-major order.
func (b Board) Constrained() []Cell {
	var cells []Cell
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			coord := Coordinate{Row: r, Col: c}
			constraint, ok := b.constraints[coord]
			if !ok || !constraint.Constrains() {
				continue
			}
			cell := Cell{Coord: coord, Constraint: constraint}
			if b.labels != nil {
				cell.Label = b.labels[r][c]
			}
			cells = append(cells, cell)
		}
	}
	return cells
}
