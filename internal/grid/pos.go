package grid

import (
	"fmt"

	"github.com/janpfeifer/chaseGo/internal/generics"
)

// Pos packages x, y position. X grows to the right, Y grows downwards.
type Pos struct {
	X, Y int
}

// Distance returns the manhattan distance of two positions.
func (pos Pos) Distance(pos2 Pos) int {
	return generics.Abs(pos.X-pos2.X) + generics.Abs(pos.Y-pos2.Y)
}

// Chebyshev returns the "king move" distance of two positions: 1 for any of the 8 neighbours.
func (pos Pos) Chebyshev(pos2 Pos) int {
	return max(generics.Abs(pos.X-pos2.X), generics.Abs(pos.Y-pos2.Y))
}

// Add returns the position after taking the move m.
func (pos Pos) Add(m Move) Pos {
	return Pos{pos.X + m.DX, pos.Y + m.DY}
}

// Sub returns the move that takes pos2 to pos. It is only a unit Move if they are neighbours.
func (pos Pos) Sub(pos2 Pos) Move {
	return Move{pos.X - pos2.X, pos.Y - pos2.Y}
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

// Move is a relative displacement. The engine only produces unit moves, see Moves.
type Move struct {
	DX, DY int
}

var (
	Stay  = Move{0, 0}
	Up    = Move{0, -1}
	Right = Move{1, 0}
	Down  = Move{0, 1}
	Left  = Move{-1, 0}

	// Moves lists the 4 axis-aligned unit moves in the fixed order used for expansion:
	// clockwise starting from Up. Among equal cost paths, the search favours the ones
	// taking the earlier moves first.
	Moves = [4]Move{Up, Right, Down, Left}
)

// Reverse returns the move in the opposite direction.
func (m Move) Reverse() Move {
	return Move{-m.DX, -m.DY}
}

// IsUnit returns whether m is one of the 4 axis-aligned unit moves.
func (m Move) IsUnit() bool {
	return generics.Abs(m.DX)+generics.Abs(m.DY) == 1
}

// String returns the name of the unit moves, or the displacement otherwise.
func (m Move) String() string {
	switch m {
	case Stay:
		return "stay"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("(%+d, %+d)", m.DX, m.DY)
}
