// Package solver finds shortest roll sequences over a board with a
// breadth-first search, and renders step-by-step explanations of the
// recovered path.
package solver

import (
	"errors"

	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/die"
)

// ErrUnsolvable indicates the search exhausted every reachable state
// without entering the goal.
var ErrUnsolvable = errors.New("no sequence of legal rolls reaches the goal")

// State is one die configuration: where the die sits and how its faces are
// turned. State is comparable; equality on both fields is the search's
// deduplication key.
type State struct {
	Coord       board.Coordinate
	Orientation die.Orientation
}

// Move is one roll on the way to the goal: the direction taken and the
// state it produced.
type Move struct {
	Direction die.Direction
	State     State
}

// Stats counts the work one search performed.
type Stats struct {
	// Expanded is the number of states dequeued from the frontier.
	Expanded int
	// Visited is the number of distinct states ever enqueued. It never
	// exceeds cells x 24, the size of the full state space.
	Visited int
}

// Result is a shortest solution. Moves is empty when the start state
// already satisfies the goal.
type Result struct {
	Start State
	Moves []Move
	Stats Stats
}

// Steps returns the number of rolls in the solution.
func (r Result) Steps() int { return len(r.Moves) }

// Goal returns the final state of the solution.
func (r Result) Goal() State {
	if len(r.Moves) == 0 {
		return r.Start
	}
	return r.Moves[len(r.Moves)-1].State
}

// Path returns every coordinate the die rests on, start first.
func (r Result) Path() []board.Coordinate {
	path := make([]board.Coordinate, 0, len(r.Moves)+1)
	path = append(path, r.Start.Coord)
	for _, m := range r.Moves {
		path = append(path, m.State.Coord)
	}
	return path
}

// step is a parent-pointer map entry: the state a search node was reached
// from and the direction that reached it.
type step struct {
	parent    State
	direction die.Direction
}

// legal reports whether the die may enter its cell: the cell's constraint,
// if any, must allow the current bottom face.
func legal(b board.Board, s State) bool {
	cell, err := b.At(s.Coord)
	if err != nil {
		return false
	}
	return cell.Constraint.Allows(s.Orientation.Bottom)
}

// goal reports whether s completes the puzzle under the board's goal
// policy: the goal coordinate, plus the exact required orientation when the
// board declares one.
func goal(b board.Board, s State) bool {
	if !b.IsGoal(s.Coord) {
		return false
	}
	if required, ok := b.GoalOrientation(); ok {
		return s.Orientation == required
	}
	return true
}

// Solve searches for a shortest sequence of rolls taking the die from the
// board's start configuration to its goal.
//
// # Determinism
//
// Solve is deterministic: successors are generated in the fixed
// die.Directions order and the frontier is served strictly first-in
// first-out, so the same board always yields the same Result, including
// the tie-break between equally short solutions.
//
// # Ordering
//
// Every roll costs one step and the frontier preserves insertion order, so
// the first goal state dequeued closes a shortest path; no shorter legal
// sequence exists. A state already recorded in the parent map is never
// enqueued again, so nothing is expanded twice.
//
// # Termination
//
// The state space holds at most cells x 24 configurations, so the search
// always terminates; there is no cancellation or timeout hook.
//
// # Errors
//
//   - ErrUnsolvable when the frontier empties before a goal state is
//     dequeued. That outcome is the search's answer, not a failure of the
//     search.
func Solve(b board.Board) (Result, error) {
	startCoord, startOrient := b.Start()
	start := State{Coord: startCoord, Orientation: startOrient}

	// Membership in the parent map doubles as the visited set; the start
	// entry is a sentinel the reconstruction never reads.
	parents := map[State]step{start: {}}
	frontier := []State{start}
	stats := Stats{Visited: 1}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		stats.Expanded++

		if goal(b, cur) {
			return Result{
				Start: start,
				Moves: reconstruct(parents, start, cur),
				Stats: stats,
			}, nil
		}

		for _, d := range die.Directions {
			next := State{
				Coord:       cur.Coord.Step(d),
				Orientation: cur.Orientation.Roll(d),
			}
			if !b.Contains(next.Coord) {
				continue
			}
			if _, seen := parents[next]; seen {
				continue
			}
			if !legal(b, next) {
				continue
			}
			parents[next] = step{parent: cur, direction: d}
			stats.Visited++
			frontier = append(frontier, next)
		}
	}

	return Result{}, ErrUnsolvable
}

// reconstruct walks the parent links backward from the goal to the start,
// then reverses the collected moves into path order.
func reconstruct(parents map[State]step, start, goal State) []Move {
	var moves []Move
	for cur := goal; cur != start; {
		s := parents[cur]
		moves = append(moves, Move{Direction: s.direction, State: cur})
		cur = s.parent
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}
