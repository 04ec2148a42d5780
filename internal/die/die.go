// Package die models the rolling die: the four travel directions and the
// orientation of its face values as it tips across the board.
package die

import (
	"errors"
	"fmt"
)

// Direction is a cardinal travel direction on the board.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the four travel directions in the fixed order the search
// expands successors, so ties between equally short paths break the same way
// on every run.
var Directions = []Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// ErrInvalidOrientation indicates the six faces are not a permutation of
// 1..6 with opposite faces summing to seven.
var ErrInvalidOrientation = errors.New("faces must be a permutation of 1..6 with opposite faces summing to 7")

// Orientation assigns a face value to each of the six spatial directions.
// Valid orientations hold each value 1..6 exactly once with opposite faces
// summing to seven: Top+Bottom, North+South and East+West all equal 7.
// Orientation is a comparable value and is never mutated in place; rolling
// produces a new one.
type Orientation struct {
	Top    int
	Bottom int
	North  int
	South  int
	East   int
	West   int
}

// Standard returns the conventional resting orientation: 1 on top, 2 facing
// north, 3 facing east, and their complements opposite.
func Standard() Orientation {
	return Orientation{Top: 1, Bottom: 6, North: 2, South: 5, East: 3, West: 4}
}

// Validate returns ErrInvalidOrientation unless the six faces are a
// permutation of 1..6 and opposite faces sum to seven.
func (o Orientation) Validate() error {
	var seen [7]bool
	for _, v := range [6]int{o.Top, o.Bottom, o.North, o.South, o.East, o.West} {
		if v < 1 || v > 6 || seen[v] {
			return ErrInvalidOrientation
		}
		seen[v] = true
	}
	if o.Top+o.Bottom != 7 || o.North+o.South != 7 || o.East+o.West != 7 {
		return ErrInvalidOrientation
	}
	return nil
}

// Roll returns the orientation after tipping the die one cell in direction d.
//
// The die turns a quarter rotation about the horizontal axis perpendicular
// to travel: the face toward the travel direction lands on the bottom, the
// old bottom swings to the far side, the far face rises to the top, and the
// old top tips toward travel. The two faces on the rotation axis keep their
// values.
//
// # Laws
//
// Rolling d and then d.Opposite() restores the original orientation, as does
// rolling the same direction four times. Roll preserves the Validate
// invariants.
func (o Orientation) Roll(d Direction) Orientation {
	switch d {
	case North:
		return Orientation{Top: o.South, Bottom: o.North, North: o.Top, South: o.Bottom, East: o.East, West: o.West}
	case East:
		return Orientation{Top: o.West, Bottom: o.East, North: o.North, South: o.South, East: o.Top, West: o.Bottom}
	case South:
		return Orientation{Top: o.North, Bottom: o.South, North: o.Bottom, South: o.Top, East: o.East, West: o.West}
	case West:
		return Orientation{Top: o.East, Bottom: o.West, North: o.North, South: o.South, East: o.Bottom, West: o.Top}
	default:
		return o
	}
}

func (o Orientation) String() string {
	return fmt.Sprintf("top=%d bottom=%d north=%d south=%d east=%d west=%d",
		o.Top, o.Bottom, o.North, o.South, o.East, o.West)
}
