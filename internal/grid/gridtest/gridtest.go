// Package gridtest provides helper functions to create tests using grids.
package gridtest

import (
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/must"
)

// Build a grid from its text form, see grid.Parse. It panics on invalid layouts.
func Build(layout ...string) *grid.Grid {
	return must.M1(grid.Parse(layout))
}

// Open returns a width x height grid without walls.
func Open(width, height int) *grid.Grid {
	return grid.New(width, height)
}

// Walk applies the moves from start and returns every position visited, excluding start.
func Walk(start grid.Pos, moves []grid.Move) []grid.Pos {
	positions := make([]grid.Pos, 0, len(moves))
	pos := start
	for _, m := range moves {
		pos = pos.Add(m)
		positions = append(positions, pos)
	}
	return positions
}
