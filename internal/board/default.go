package board

import "github.com/louisbranch/die-agony/internal/die"

// Default returns the compiled-in puzzle: a 6x6 labeled board crossed from
// the south-west corner to the north-east corner. The die starts on (5,0) in
// the standard orientation and must come to rest on (0,5) with 2 on top and
// 5 touching the board; a trail of cells along the way pins the entering
// bottom face. The shortest solution takes ten rolls.
func Default() Board {
	return defaultBoard
}

var defaultBoard = mustNew(Layout{
	Rows: 6,
	Cols: 6,

	Start:            Coordinate{Row: 5, Col: 0},
	StartOrientation: die.Standard(),

	Goal:            Coordinate{Row: 0, Col: 5},
	GoalOrientation: &die.Orientation{Top: 2, Bottom: 5, North: 4, South: 3, East: 6, West: 1},

	Constraints: map[Coordinate]Constraint{
		{Row: 4, Col: 0}: Exactly(2),
		{Row: 4, Col: 1}: Exactly(3),
		{Row: 3, Col: 1}: Exactly(1),
		{Row: 3, Col: 2}: Exactly(5),
		{Row: 2, Col: 2}: Exactly(4),
		{Row: 2, Col: 3}: Exactly(6),
		{Row: 1, Col: 3}: Exactly(2),
		{Row: 1, Col: 4}: Exactly(3),
		{Row: 0, Col: 4}: Exactly(1),
		{Row: 0, Col: 5}: Exactly(5),
		{Row: 5, Col: 3}: AnyOf(2, 4, 6),
		{Row: 2, Col: 0}: AnyOf(1, 3, 5),
	},

	Labels: [][]int{
		{57, 33, 132, 268, 492, 732},
		{81, 123, 240, 443, 353, 508},
		{186, 42, 195, 704, 452, 228},
		{-7, 2, 357, 452, 317, 395},
		{5, 23, -4, 592, 445, 620},
		{0, 77, 32, 403, 337, 452},
	},
})

func mustNew(l Layout) Board {
	b, err := New(l)
	if err != nil {
		panic(err)
	}
	return b
}
