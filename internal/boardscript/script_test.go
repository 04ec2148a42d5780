package boardscript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/die"
)

func TestLoadBuildsBoard(t *testing.T) {
	path := writeBoardFixture(t, `return {
  rows = 2,
  cols = 3,
  start = { row = 1, col = 0, top = 1, north = 2, east = 3 },
  goal = { row = 0, col = 2 },
  cells = {
    { row = 0, col = 1, equals = 2 },
    { row = 0, col = 2, any_of = {1, 3, 5} },
  },
  labels = {
    { 10, 20, 30 },
    { 40, 50, 60 },
  },
}
`)

	b, err := Load(path)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}

	if b.Rows() != 2 || b.Cols() != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", b.Rows(), b.Cols())
	}
	start, orient := b.Start()
	if start != (board.Coordinate{Row: 1, Col: 0}) {
		t.Fatalf("start = %v, want (1,0)", start)
	}
	if orient != die.Standard() {
		t.Fatalf("start orientation = %v, want %v", orient, die.Standard())
	}
	if b.Goal() != (board.Coordinate{Row: 0, Col: 2}) {
		t.Fatalf("goal = %v, want (0,2)", b.Goal())
	}
	if _, ok := b.GoalOrientation(); ok {
		t.Fatal("goal should not require an orientation")
	}

	cell, err := b.At(board.Coordinate{Row: 0, Col: 1})
	if err != nil {
		t.Fatalf("at (0,1): %v", err)
	}
	if !cell.Constraint.Allows(2) || cell.Constraint.Allows(3) {
		t.Fatalf("constraint at (0,1) = %v, want only face 2", cell.Constraint)
	}

	cell, err = b.At(board.Coordinate{Row: 0, Col: 2})
	if err != nil {
		t.Fatalf("at (0,2): %v", err)
	}
	if !cell.Constraint.Allows(5) || cell.Constraint.Allows(2) {
		t.Fatalf("constraint at (0,2) = %v, want odd faces", cell.Constraint)
	}

	if !b.Labeled() {
		t.Fatal("board should be labeled")
	}
	if b.LabelSum() != 210 {
		t.Fatalf("label sum = %d, want %d", b.LabelSum(), 210)
	}
}

func TestLoadGoalOrientation(t *testing.T) {
	path := writeBoardFixture(t, `return {
  rows = 1,
  cols = 2,
  start = { row = 0, col = 0, top = 1, north = 2, east = 3 },
  goal = { row = 0, col = 1, orientation = { top = 4, north = 2, east = 1 } },
}
`)

	b, err := Load(path)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}

	required, ok := b.GoalOrientation()
	if !ok {
		t.Fatal("goal orientation requirement missing")
	}
	want := die.Orientation{Top: 4, Bottom: 3, North: 2, South: 5, East: 1, West: 6}
	if required != want {
		t.Fatalf("goal orientation = %v, want %v", required, want)
	}
}

func TestParseInlineSource(t *testing.T) {
	b, err := Parse(`return {
  rows = 1,
  cols = 2,
  start = { row = 0, col = 0, top = 1, north = 2, east = 3 },
  goal = { row = 0, col = 1 },
}
`)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}

	if b.Rows() != 1 || b.Cols() != 2 {
		t.Fatalf("dimensions = %dx%d, want 1x2", b.Rows(), b.Cols())
	}
	if b.Labeled() {
		t.Fatal("board should not be labeled")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "load board script") {
		t.Fatalf("error = %q, want load board script", err.Error())
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeBoardFixture(t, `return {`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "load board script") {
		t.Fatalf("error = %q, want load board script", err.Error())
	}
}

func TestLoadRuntimeError(t *testing.T) {
	path := writeBoardFixture(t, `error("bad board")`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "run board script") {
		t.Fatalf("error = %q, want run board script", err.Error())
	}
}

func TestParseRejectsNonTable(t *testing.T) {
	for _, source := range []string{`return 42`, `local x = 1`} {
		_, err := Parse(source)
		if !errors.Is(err, ErrScriptResult) {
			t.Fatalf("Parse(%q) error = %v, want %v", source, err, ErrScriptResult)
		}
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "missing rows",
			source: `return { cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 } }`,
			want:   "rows is required",
		},
		{
			name:   "fractional rows",
			source: `return { rows = 1.5, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 } }`,
			want:   "rows is required and must be a whole number",
		},
		{
			name:   "missing start",
			source: `return { rows = 1, cols = 2, goal = { row = 0, col = 1 } }`,
			want:   "start is required and must be a table",
		},
		{
			name:   "missing start face",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, north = 2, east = 3 }, goal = { row = 0, col = 1 } }`,
			want:   "start.top is required",
		},
		{
			name:   "impossible start orientation",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 6, east = 3 }, goal = { row = 0, col = 1 } }`,
			want:   "permutation of 1..6",
		},
		{
			name:   "goal orientation not a table",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1, orientation = 5 } }`,
			want:   "goal.orientation must be a table",
		},
		{
			name:   "cells not a list",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = 5 }`,
			want:   "cells must be a list of cell tables",
		},
		{
			name:   "cell with both rules",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = { { row = 0, col = 1, equals = 2, any_of = {2, 4} } } }`,
			want:   "cells[1] sets both equals and any_of",
		},
		{
			name:   "cell with no rule",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = { { row = 0, col = 1 } } }`,
			want:   "cells[1] needs equals or any_of",
		},
		{
			name:   "any_of with non-number",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = { { row = 0, col = 1, any_of = {"two"} } } }`,
			want:   "cells[1].any_of must be a list of whole numbers",
		},
		{
			name:   "empty any_of",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = { { row = 0, col = 1, any_of = {} } } }`,
			want:   "constraint must list at least one face",
		},
		{
			name:   "face out of range",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, cells = { { row = 0, col = 1, equals = 9 } } }`,
			want:   "die faces 1..6",
		},
		{
			name:   "labels wrong shape",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, labels = { { 10 } } }`,
			want:   "labels must cover every row and column",
		},
		{
			name:   "fractional label",
			source: `return { rows = 1, cols = 2, start = { row = 0, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 }, labels = { { 10, 20.5 } } }`,
			want:   "labels[1][2] must be a whole number",
		},
		{
			name:   "start outside the board",
			source: `return { rows = 1, cols = 2, start = { row = 3, col = 0, top = 1, north = 2, east = 3 }, goal = { row = 0, col = 1 } }`,
			want:   "start cell is outside the board",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func writeBoardFixture(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "board.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write board: %v", err)
	}
	return path
}
