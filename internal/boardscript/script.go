// Package boardscript loads board definitions written as Lua scripts. A
// script evaluates to a single table naming the grid dimensions, the start
// and goal configuration, constrained cells and optional labels:
//
//	return {
//	  rows = 2, cols = 3,
//	  start = { row = 1, col = 0, top = 1, north = 2, east = 3 },
//	  goal = { row = 0, col = 2 },
//	  cells = {
//	    { row = 0, col = 1, equals = 2 },
//	    { row = 0, col = 2, any_of = {1, 3, 5} },
//	  },
//	  labels = {
//	    { 57, 33, 132 },
//	    { 81, 123, 240 },
//	  },
//	}
//
// Orientations give the three visible faces; the hidden faces are their
// seven-complements. A goal table may carry an orientation table of its own
// to require an exact final orientation.
package boardscript

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/die"
)

// ErrScriptResult indicates a script that did not return a definition table.
var ErrScriptResult = errors.New("board script must return a table")

// Load reads a board script from path and builds its board.
func Load(path string) (board.Board, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return board.Board{}, fmt.Errorf("load board script: %w", err)
	}
	return run(state)
}

// Parse builds a board from inline script source.
func Parse(src string) (board.Board, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadString(state, src); err != nil {
		return board.Board{}, fmt.Errorf("load board script: %w", err)
	}
	return run(state)
}

// run executes the loaded chunk and converts its result into a board.
func run(state *lua.State) (board.Board, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return board.Board{}, fmt.Errorf("run board script: %w", err)
	}

	value := goValue(state, -1)
	state.Pop(1)

	def, ok := value.(map[string]any)
	if !ok {
		return board.Board{}, ErrScriptResult
	}

	layout, err := layoutFromTable(def)
	if err != nil {
		return board.Board{}, err
	}
	b, err := board.New(layout)
	if err != nil {
		return board.Board{}, fmt.Errorf("board script: %w", err)
	}
	return b, nil
}

// layoutFromTable builds a board.Layout from the decoded definition table.
func layoutFromTable(def map[string]any) (board.Layout, error) {
	var l board.Layout
	var err error

	if l.Rows, err = intField(def, "rows"); err != nil {
		return board.Layout{}, err
	}
	if l.Cols, err = intField(def, "cols"); err != nil {
		return board.Layout{}, err
	}

	start, err := tableField(def, "start")
	if err != nil {
		return board.Layout{}, err
	}
	if l.Start, err = coordinate(start, "start"); err != nil {
		return board.Layout{}, err
	}
	if l.StartOrientation, err = orientation(start, "start"); err != nil {
		return board.Layout{}, err
	}

	goal, err := tableField(def, "goal")
	if err != nil {
		return board.Layout{}, err
	}
	if l.Goal, err = coordinate(goal, "goal"); err != nil {
		return board.Layout{}, err
	}
	if raw, present := goal["orientation"]; present {
		m, ok := raw.(map[string]any)
		if !ok {
			return board.Layout{}, errors.New("board script: goal.orientation must be a table")
		}
		required, err := orientation(m, "goal.orientation")
		if err != nil {
			return board.Layout{}, err
		}
		l.GoalOrientation = &required
	}

	if l.Constraints, err = constraints(def["cells"]); err != nil {
		return board.Layout{}, err
	}
	if l.Labels, err = labels(def["labels"]); err != nil {
		return board.Layout{}, err
	}

	return l, nil
}

// constraints converts the cells list into the layout's constraint map.
func constraints(raw any) (map[board.Coordinate]board.Constraint, error) {
	list, ok := asSlice(raw)
	if !ok {
		return nil, errors.New("board script: cells must be a list of cell tables")
	}
	if len(list) == 0 {
		return nil, nil
	}

	out := make(map[board.Coordinate]board.Constraint, len(list))
	for i, item := range list {
		cell, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("board script: cells[%d] must be a table", i+1)
		}
		coord, err := coordinate(cell, fmt.Sprintf("cells[%d]", i+1))
		if err != nil {
			return nil, err
		}

		_, hasEquals := cell["equals"]
		_, hasAnyOf := cell["any_of"]
		switch {
		case hasEquals && hasAnyOf:
			return nil, fmt.Errorf("board script: cells[%d] sets both equals and any_of", i+1)
		case hasEquals:
			v, err := intField(cell, fmt.Sprintf("cells[%d].equals", i+1))
			if err != nil {
				return nil, err
			}
			out[coord] = board.Exactly(v)
		case hasAnyOf:
			items, ok := asSlice(cell["any_of"])
			if !ok {
				return nil, fmt.Errorf("board script: cells[%d].any_of must be a list of whole numbers", i+1)
			}
			faces := make([]int, 0, len(items))
			for _, item := range items {
				face, ok := item.(int)
				if !ok {
					return nil, fmt.Errorf("board script: cells[%d].any_of must be a list of whole numbers", i+1)
				}
				faces = append(faces, face)
			}
			out[coord] = board.AnyOf(faces...)
		default:
			return nil, fmt.Errorf("board script: cells[%d] needs equals or any_of", i+1)
		}
	}
	return out, nil
}

// labels converts the optional row-major label table.
func labels(raw any) ([][]int, error) {
	if raw == nil {
		return nil, nil
	}
	rows, ok := asSlice(raw)
	if !ok {
		return nil, errors.New("board script: labels must be a list of rows")
	}
	out := make([][]int, 0, len(rows))
	for r, rawRow := range rows {
		cols, ok := asSlice(rawRow)
		if !ok {
			return nil, fmt.Errorf("board script: labels[%d] must be a list of whole numbers", r+1)
		}
		row := make([]int, 0, len(cols))
		for c, rawCell := range cols {
			n, ok := rawCell.(int)
			if !ok {
				return nil, fmt.Errorf("board script: labels[%d][%d] must be a whole number", r+1, c+1)
			}
			row = append(row, n)
		}
		out = append(out, row)
	}
	return out, nil
}

// coordinate extracts the row and col fields of a table.
func coordinate(m map[string]any, prefix string) (board.Coordinate, error) {
	row, err := intField(m, prefix+".row")
	if err != nil {
		return board.Coordinate{}, err
	}
	col, err := intField(m, prefix+".col")
	if err != nil {
		return board.Coordinate{}, err
	}
	return board.Coordinate{Row: row, Col: col}, nil
}

// orientation completes a {top, north, east} triple into a full orientation
// by placing the seven-complements on the hidden faces.
func orientation(m map[string]any, prefix string) (die.Orientation, error) {
	top, err := intField(m, prefix+".top")
	if err != nil {
		return die.Orientation{}, err
	}
	north, err := intField(m, prefix+".north")
	if err != nil {
		return die.Orientation{}, err
	}
	east, err := intField(m, prefix+".east")
	if err != nil {
		return die.Orientation{}, err
	}

	o := die.Orientation{
		Top:    top,
		Bottom: 7 - top,
		North:  north,
		South:  7 - north,
		East:   east,
		West:   7 - east,
	}
	if err := o.Validate(); err != nil {
		return die.Orientation{}, fmt.Errorf("board script: %s: %w", prefix, err)
	}
	return o, nil
}

// intField extracts a whole-number field. Nested names arrive pre-qualified
// ("start.row") so the error can point at the exact field.
func intField(m map[string]any, name string) (int, error) {
	key := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		key = name[i+1:]
	}
	v, ok := m[key].(int)
	if !ok {
		return 0, fmt.Errorf("board script: %s is required and must be a whole number", name)
	}
	return v, nil
}

// tableField extracts a required table-valued field.
func tableField(m map[string]any, name string) (map[string]any, error) {
	v, ok := m[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("board script: %s is required and must be a table", name)
	}
	return v, nil
}

// asSlice accepts absent values, Lua sequences and empty tables as lists.
func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []any:
		return t, true
	case map[string]any:
		if len(t) == 0 {
			return nil, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// goValue converts the Lua value at index into a Go value: strings, booleans
// and numbers map directly, with whole numbers normalized to int; tables
// become []any when integer-keyed and map[string]any otherwise.
func goValue(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return normalizeNumber(n)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableValue(state, index)
	default:
		return nil
	}
}

// tableValue converts the table at index. A table whose keys form a positive
// integer sequence converts to []any with order preserved; any other table
// converts to a map of its string-keyed entries.
func tableValue(state *lua.State, index int) any {
	index = state.AbsIndex(index)

	length := 0
	sequence := true
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeNumber {
			if i, ok := state.ToInteger(-2); ok && i > 0 {
				if i > length {
					length = i
				}
			} else {
				sequence = false
			}
		} else {
			sequence = false
		}
		state.Pop(1)
	}

	if sequence && length > 0 {
		items := make([]any, 0, length)
		for i := 1; i <= length; i++ {
			state.RawGetInt(index, i)
			items = append(items, goValue(state, -1))
			state.Pop(1)
		}
		return items
	}

	m := make(map[string]any)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			m[key] = goValue(state, -1)
		}
		state.Pop(1)
	}
	return m
}

func normalizeNumber(n float64) any {
	if math.Mod(n, 1) == 0 {
		return int(n)
	}
	return n
}
