package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyConstraint indicates a set constraint listing no faces.
var ErrEmptyConstraint = errors.New("constraint must list at least one face")

// ErrConstraintValue indicates a constraint value outside the die faces 1..6.
var ErrConstraintValue = errors.New("constraint values must be die faces 1..6")

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintExact
	constraintAnyOf
)

// Constraint restricts which face value may touch the board at the moment
// the die enters a cell. The zero value places no restriction.
type Constraint struct {
	kind   constraintKind
	values []int
}

// Exactly requires the entering die's bottom face to equal v.
func Exactly(v int) Constraint {
	return Constraint{kind: constraintExact, values: []int{v}}
}

// AnyOf requires the entering die's bottom face to be one of vs.
func AnyOf(vs ...int) Constraint {
	values := make([]int, len(vs))
	copy(values, vs)
	return Constraint{kind: constraintAnyOf, values: values}
}

// Constrains reports whether the constraint restricts anything.
func (c Constraint) Constrains() bool {
	return c.kind != constraintNone
}

// Allows reports whether a bottom face value satisfies the constraint.
func (c Constraint) Allows(face int) bool {
	switch c.kind {
	case constraintNone:
		return true
	case constraintExact:
		return face == c.values[0]
	case constraintAnyOf:
		for _, v := range c.values {
			if v == face {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (c Constraint) validate() error {
	if c.kind == constraintNone {
		return nil
	}
	if len(c.values) == 0 {
		return ErrEmptyConstraint
	}
	for _, v := range c.values {
		if v < 1 || v > 6 {
			return fmt.Errorf("%w: got %d", ErrConstraintValue, v)
		}
	}
	return nil
}

func (c Constraint) String() string {
	switch c.kind {
	case constraintExact:
		return fmt.Sprintf("bottom face must be %d", c.values[0])
	case constraintAnyOf:
		parts := make([]string, len(c.values))
		for i, v := range c.values {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return fmt.Sprintf("bottom face must be one of %s", strings.Join(parts, ", "))
	default:
		return "unconstrained"
	}
}
