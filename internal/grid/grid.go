// Package grid holds the board configuration searched by the pathfinding engine: a rectangular
// array of cell codes plus the positions of the moving agent and its target.
package grid

import (
	"slices"

	"github.com/gomlx/exceptions"
)

// Cell code of a grid position.
type Cell uint8

const (
	Floor Cell = 0
	Wall  Cell = 1

	// Breakable is a destructible wall: it blocks movement until the simulation turns it into Floor.
	Breakable Cell = 2

	// Agent marks the position of the agent searching the grid.
	Agent Cell = 4

	// TargetMark marks the last known position of the target. It is traversable.
	TargetMark Cell = 5

	// Unknown is how cells never observed are represented in a known grid: they are assumed
	// traversable, which favours exploration over caution.
	Unknown = Floor
)

// Blocks returns whether the cell can't be walked into.
//
// TargetMark must stay traversable: the goal cell is annotated with it before each search.
func (c Cell) Blocks() bool {
	return c == Wall || c == Breakable
}

// IsMarker returns whether the cell code is a transient marker (Agent or TargetMark) as opposed to terrain.
func (c Cell) IsMarker() bool {
	return c == Agent || c == TargetMark
}

// Reader is a read-only view of a grid, typically the true grid owned by the simulation.
type Reader interface {
	Width() int
	Height() int
	At(pos Pos) Cell
}

// Grid is a snapshot of the board: cells plus the agent (Self) and its Target positions.
//
// Snapshots handed to the search are treated as values: moves create new snapshots with
// WithMove, and never change the receiver.
type Grid struct {
	width, height int
	cells         []Cell

	// Self is the position of the agent, and Target is where it is heading to.
	Self, Target Pos
}

// Assert Grid is a Reader.
var _ Reader = (*Grid)(nil)

// New creates a grid with all cells set to Floor.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		exceptions.Panicf("grid.New(%d, %d): dimensions must be positive", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width of the grid.
func (g *Grid) Width() int { return g.width }

// Height of the grid.
func (g *Grid) Height() int { return g.height }

// Clone makes a deep copy of the grid: the cells are not shared.
func (g *Grid) Clone() *Grid {
	newG := &Grid{}
	*newG = *g
	newG.cells = slices.Clone(g.cells)
	return newG
}

// InBounds returns whether pos is inside the grid.
func (g *Grid) InBounds(pos Pos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < g.width && pos.Y < g.height
}

// At returns the cell at pos. Positions out of bounds are reported as Wall.
func (g *Grid) At(pos Pos) Cell {
	if !g.InBounds(pos) {
		return Wall
	}
	return g.cells[pos.Y*g.width+pos.X]
}

// Set the cell at pos. It panics if pos is out of bounds.
func (g *Grid) Set(pos Pos, c Cell) {
	if !g.InBounds(pos) {
		exceptions.Panicf("grid.Set(%s): position out of bounds of %dx%d grid", pos, g.width, g.height)
	}
	g.cells[pos.Y*g.width+pos.X] = c
}

// Passable returns whether pos is within bounds and not a wall.
func (g *Grid) Passable(pos Pos) bool {
	return g.InBounds(pos) && !g.At(pos).Blocks()
}

// Fill sets all cells to c.
func (g *Grid) Fill(c Cell) {
	for ii := range g.cells {
		g.cells[ii] = c
	}
}

// Annotate prepares the grid for a search from start to goal: stale markers are cleared to Floor,
// start is marked as Agent and goal as TargetMark, and Self/Target are set accordingly.
//
// If the goal is given with a blocking cell it is overwritten: callers are responsible for sane coordinates.
func (g *Grid) Annotate(start, goal Pos) {
	for ii, c := range g.cells {
		if c.IsMarker() {
			g.cells[ii] = Floor
		}
	}
	g.Set(goal, TargetMark)
	g.Set(start, Agent)
	g.Self, g.Target = start, goal
}

// WithMove returns a new grid with the agent moved by m: the Agent marker is swapped with the
// contents of the destination cell. The receiver is not changed.
//
// It panics if the destination is not passable.
func (g *Grid) WithMove(m Move) *Grid {
	to := g.Self.Add(m)
	if !g.Passable(to) {
		exceptions.Panicf("grid.WithMove(%s): destination %s from %s is not passable", m, to, g.Self)
	}
	newG := g.Clone()
	from := g.Self
	newG.cells[from.Y*g.width+from.X], newG.cells[to.Y*g.width+to.X] =
		newG.cells[to.Y*g.width+to.X], newG.cells[from.Y*g.width+from.X]
	newG.Self = to
	return newG
}

// IsGoal returns whether the agent reached its target.
func (g *Grid) IsGoal() bool {
	return g.Self == g.Target
}

// Equal returns whether both snapshots hold the same positions and cell-wise identical cells.
func (g *Grid) Equal(g2 *Grid) bool {
	if g.Self != g2.Self || g.Target != g2.Target || g.width != g2.width || g.height != g2.height {
		return false
	}
	return slices.Equal(g.cells, g2.cells)
}

// Hash of the snapshot, derived only from Self and Target.
//
// It is a cheap pre-filter: different snapshots may share a hash, so lookups must confirm with Equal.
func (g *Grid) Hash() uint64 {
	h := uint64(uint32(g.Self.X))
	h = h*0x9E3779B1 + uint64(uint32(g.Self.Y))
	h = h*0x9E3779B1 + uint64(uint32(g.Target.X))
	h = h*0x9E3779B1 + uint64(uint32(g.Target.Y))
	return h
}

// CheckInvariants panics if the grid doesn't hold exactly one Agent marker at Self.
func (g *Grid) CheckInvariants() {
	count := 0
	for _, c := range g.cells {
		if c == Agent {
			count++
		}
	}
	if count != 1 || g.At(g.Self) != Agent {
		exceptions.Panicf("grid has %d agent markers, and Self=%s holds %d", count, g.Self, g.At(g.Self))
	}
}

// Contains returns whether pos is within the bounds of r.
func Contains(r Reader, pos Pos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < r.Width() && pos.Y < r.Height()
}
