// Package searchers defines what the search algorithms produce (Path) and the interface they
// implement (Pathfinder), along with the random walk used by agents that have nothing to search for.
package searchers

import (
	"github.com/janpfeifer/chaseGo/internal/grid"
)

// Pathfinder is the interface that any of the path search algorithms must adhere to be valid.
type Pathfinder interface {
	// FindPath returns the moves that take the agent from start to goal in g, and whether a path was found.
	//
	// The grid is annotated with start and goal (see grid.Grid.Annotate): pass a clone if the
	// caller needs the grid unchanged.
	//
	// Not finding a path is an expected outcome, and it is not an error.
	FindPath(g *grid.Grid, start, goal grid.Pos) (path Path, found bool)
}

// Path is a sequence of unit moves, the first move to take at the head.
// It doesn't include the starting position.
type Path struct {
	Moves []grid.Move

	// Cost of the path: with unit moves it is the same as the number of moves.
	Cost int
}

// Len returns the number of moves left in the path.
func (p *Path) Len() int {
	return len(p.Moves)
}

// Empty returns whether there are no moves left.
func (p *Path) Empty() bool {
	return len(p.Moves) == 0
}

// Pop removes and returns the next move. It returns grid.Stay if the path is empty.
func (p *Path) Pop() grid.Move {
	if len(p.Moves) == 0 {
		return grid.Stay
	}
	m := p.Moves[0]
	p.Moves = p.Moves[1:]
	return m
}

// Positions returns the positions visited following the path from start, excluding start.
func (p *Path) Positions(start grid.Pos) []grid.Pos {
	positions := make([]grid.Pos, len(p.Moves))
	pos := start
	for ii, m := range p.Moves {
		pos = pos.Add(m)
		positions[ii] = pos
	}
	return positions
}

// Clear discards any moves left.
func (p *Path) Clear() {
	p.Moves = nil
	p.Cost = 0
}
