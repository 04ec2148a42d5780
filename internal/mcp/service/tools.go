package service

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/boardscript"
	"github.com/louisbranch/die-agony/internal/die"
	"github.com/louisbranch/die-agony/internal/solver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Position represents a grid coordinate in tool payloads.
type Position struct {
	Row int `json:"row" jsonschema:"zero-based row index"`
	Col int `json:"col" jsonschema:"zero-based column index"`
}

// Faces represents a die orientation as its six face values.
type Faces struct {
	Top    int `json:"top" jsonschema:"face value on top"`
	Bottom int `json:"bottom" jsonschema:"face value touching the board"`
	North  int `json:"north" jsonschema:"face value on the north side"`
	South  int `json:"south" jsonschema:"face value on the south side"`
	East   int `json:"east" jsonschema:"face value on the east side"`
	West   int `json:"west" jsonschema:"face value on the west side"`
}

// SolveInput represents the MCP tool input for solving a board.
type SolveInput struct {
	Script  string `json:"script,omitempty" jsonschema:"inline Lua board script; empty solves the built-in puzzle"`
	Explain bool   `json:"explain,omitempty" jsonschema:"include the per-step narrative"`
}

// SolveStep represents one narrated roll of a solution.
type SolveStep struct {
	Roll      int      `json:"roll" jsonschema:"1-based roll number"`
	Direction string   `json:"direction" jsonschema:"roll direction"`
	Position  Position `json:"position" jsonschema:"cell entered by the roll"`
	Faces     Faces    `json:"faces" jsonschema:"orientation after the roll"`
	Message   string   `json:"message" jsonschema:"human-readable step description"`
}

// SolveResult represents the MCP tool output for solving a board.
type SolveResult struct {
	Solved       bool        `json:"solved" jsonschema:"whether any legal roll sequence reaches the goal"`
	Rolls        int         `json:"rolls" jsonschema:"number of rolls in the shortest solution"`
	Directions   []string    `json:"directions,omitempty" jsonschema:"roll directions in order"`
	Path         []Position  `json:"path,omitempty" jsonschema:"coordinates from start to goal"`
	UnvisitedSum *int        `json:"unvisited_sum,omitempty" jsonschema:"sum of labels over cells the path never visits, on labeled boards"`
	Steps        []SolveStep `json:"steps,omitempty" jsonschema:"per-step narrative, when requested"`
}

// DescribeBoardInput represents the MCP tool input for inspecting a board.
type DescribeBoardInput struct {
	Script string `json:"script,omitempty" jsonschema:"inline Lua board script; empty describes the built-in puzzle"`
}

// ConstrainedCell represents one constrained cell of a board description.
type ConstrainedCell struct {
	Position Position `json:"position" jsonschema:"cell coordinate"`
	Faces    []int    `json:"faces" jsonschema:"bottom face values the cell accepts on entry"`
}

// DescribeBoardResult represents the MCP tool output describing a board.
type DescribeBoardResult struct {
	Rows             int               `json:"rows" jsonschema:"number of rows"`
	Cols             int               `json:"cols" jsonschema:"number of columns"`
	Start            Position          `json:"start" jsonschema:"start cell"`
	StartOrientation Faces             `json:"start_orientation" jsonschema:"orientation the die starts with"`
	Goal             Position          `json:"goal" jsonschema:"goal cell"`
	GoalOrientation  *Faces            `json:"goal_orientation,omitempty" jsonschema:"required final orientation, when the goal demands one"`
	LabelSum         *int              `json:"label_sum,omitempty" jsonschema:"sum of all cell labels, on labeled boards"`
	Constraints      []ConstrainedCell `json:"constraints,omitempty" jsonschema:"constrained cells in row-major order"`
}

// SolveTool defines the MCP tool schema for solving boards.
func SolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "solve",
		Description: "Finds the shortest legal roll sequence from start to goal",
	}
}

// DescribeBoardTool defines the MCP tool schema for inspecting boards.
func DescribeBoardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "describe_board",
		Description: "Describes a board's dimensions, start, goal and constraints",
	}
}

// SolveHandler searches a board for a shortest roll sequence. An unsolvable
// board is a normal result with solved set to false, not a tool error.
func SolveHandler() mcp.ToolHandlerFor[SolveInput, SolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SolveInput) (*mcp.CallToolResult, SolveResult, error) {
		b, err := boardFromScript(input.Script)
		if err != nil {
			return nil, SolveResult{}, err
		}

		res, err := solver.Solve(b)
		if errors.Is(err, solver.ErrUnsolvable) {
			return nil, SolveResult{}, nil
		}
		if err != nil {
			return nil, SolveResult{}, err
		}

		result := SolveResult{
			Solved:     true,
			Rolls:      res.Steps(),
			Directions: make([]string, 0, res.Steps()),
			Path:       make([]Position, 0, res.Steps()+1),
		}
		for _, m := range res.Moves {
			result.Directions = append(result.Directions, m.Direction.String())
		}
		path := res.Path()
		for _, c := range path {
			result.Path = append(result.Path, Position{Row: c.Row, Col: c.Col})
		}
		if sum, ok := b.UnvisitedSum(path); ok {
			result.UnvisitedSum = &sum
		}
		if input.Explain {
			steps := solver.Explain(b, res)
			result.Steps = make([]SolveStep, 0, len(steps))
			for _, step := range steps {
				result.Steps = append(result.Steps, SolveStep{
					Roll:      step.Roll,
					Direction: step.Direction.String(),
					Position:  Position{Row: step.Coord.Row, Col: step.Coord.Col},
					Faces:     orientationFaces(step.Orientation),
					Message:   step.Message,
				})
			}
		}
		return nil, result, nil
	}
}

// DescribeBoardHandler reports a board's static definition.
func DescribeBoardHandler() mcp.ToolHandlerFor[DescribeBoardInput, DescribeBoardResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DescribeBoardInput) (*mcp.CallToolResult, DescribeBoardResult, error) {
		b, err := boardFromScript(input.Script)
		if err != nil {
			return nil, DescribeBoardResult{}, err
		}

		start, orient := b.Start()
		result := DescribeBoardResult{
			Rows:             b.Rows(),
			Cols:             b.Cols(),
			Start:            Position{Row: start.Row, Col: start.Col},
			StartOrientation: orientationFaces(orient),
			Goal:             Position{Row: b.Goal().Row, Col: b.Goal().Col},
		}
		if required, ok := b.GoalOrientation(); ok {
			faces := orientationFaces(required)
			result.GoalOrientation = &faces
		}
		if b.Labeled() {
			sum := b.LabelSum()
			result.LabelSum = &sum
		}
		for _, cell := range b.Constrained() {
			result.Constraints = append(result.Constraints, ConstrainedCell{
				Position: Position{Row: cell.Coord.Row, Col: cell.Coord.Col},
				Faces:    allowedFaces(cell.Constraint),
			})
		}
		return nil, result, nil
	}
}

// boardFromScript resolves the board a tool call refers to.
func boardFromScript(script string) (board.Board, error) {
	if strings.TrimSpace(script) == "" {
		return board.Default(), nil
	}
	return boardscript.Parse(script)
}

func orientationFaces(o die.Orientation) Faces {
	return Faces{
		Top:    o.Top,
		Bottom: o.Bottom,
		North:  o.North,
		South:  o.South,
		East:   o.East,
		West:   o.West,
	}
}

// allowedFaces lists the bottom face values a constraint accepts.
func allowedFaces(c board.Constraint) []int {
	faces := make([]int, 0, 6)
	for face := 1; face <= 6; face++ {
		if c.Allows(face) {
			faces = append(faces, face)
		}
	}
	return faces
}
