package board

import (
	"testing"

	"github.com/louisbranch/die-agony/internal/die"
)

// TestDefault pins the compiled-in puzzle: geometry, start configuration,
// goal policy and label arithmetic.
func TestDefault(t *testing.T) {
	b := Default()

	if b.Rows() != 6 || b.Cols() != 6 {
		t.Fatalf("dimensions = %dx%d, want 6x6", b.Rows(), b.Cols())
	}

	start, orient := b.Start()
	if start != (Coordinate{Row: 5, Col: 0}) {
		t.Fatalf("start = %v, want (5,0)", start)
	}
	if orient != die.Standard() {
		t.Fatalf("start orientation = %v, want %v", orient, die.Standard())
	}

	if goal := b.Goal(); goal != (Coordinate{Row: 0, Col: 5}) {
		t.Fatalf("goal = %v, want (0,5)", goal)
	}
	required, ok := b.GoalOrientation()
	if !ok {
		t.Fatal("GoalOrientation() required = false, want true")
	}
	want := die.Orientation{Top: 2, Bottom: 5, North: 4, South: 3, East: 6, West: 1}
	if required != want {
		t.Fatalf("goal orientation = %v, want %v", required, want)
	}
	if err := required.Validate(); err != nil {
		t.Fatalf("goal orientation invalid: %v", err)
	}

	if !b.Labeled() {
		t.Fatal("Labeled() = false, want true")
	}
	if b.LabelSum() != 9767 {
		t.Fatalf("LabelSum() = %d, want 9767", b.LabelSum())
	}

	if got := len(b.Constrained()); got != 12 {
		t.Fatalf("Constrained() returned %d cells, want 12", got)
	}

	cell, err := b.At(Coordinate{Row: 4, Col: 0})
	if err != nil {
		t.Fatalf("At(4,0) error = %v", err)
	}
	if !cell.Constraint.Allows(2) || cell.Constraint.Allows(3) {
		t.Fatalf("At(4,0) constraint = %v, want exactly 2", cell.Constraint)
	}

	cell, err = b.At(Coordinate{Row: 5, Col: 3})
	if err != nil {
		t.Fatalf("At(5,3) error = %v", err)
	}
	for face := 1; face <= 6; face++ {
		want := face%2 == 0
		if got := cell.Constraint.Allows(face); got != want {
			t.Fatalf("At(5,3) Allows(%d) = %v, want %v", face, got, want)
		}
	}

	// The goal cell itself pins the entering bottom face to the one the
	// required orientation shows.
	cell, err = b.At(b.Goal())
	if err != nil {
		t.Fatalf("At(goal) error = %v", err)
	}
	if !cell.Constraint.Allows(required.Bottom) {
		t.Fatalf("goal constraint %v rejects required bottom %d", cell.Constraint, required.Bottom)
	}
}
