// Package knowledge maintains what an agent knows about the true grid: a private copy where cells
// never observed are Unknown, refreshed every turn from what the agent can perceive around itself.
package knowledge

import (
	"github.com/janpfeifer/chaseGo/internal/grid"
	"k8s.io/klog/v2"
)

// Known is the grid as known by one agent.
//
// Unknown cells are represented as grid.Floor: the agent plans paths through unexplored areas,
// and replans when it finds out they are blocked.
type Known struct {
	g *grid.Grid

	// ResetAfter > 0 makes the known grid forget everything (back to Unknown) once it has learned
	// that many cells since the last reset. This bounds how stale the knowledge can get.
	ResetAfter int

	learned, totalLearned, resets int
}

// New creates a Known grid of the given dimensions with all cells Unknown.
func New(width, height int) *Known {
	return &Known{g: grid.New(width, height)}
}

// Grid returns the known grid. It must not be changed by the caller: use Snapshot for a copy.
func (k *Known) Grid() grid.Reader {
	return k.g
}

// Snapshot returns a copy of the known grid, that can be annotated and searched.
func (k *Known) Snapshot() *grid.Grid {
	return k.g.Clone()
}

// Learned returns the number of cells learned since the last reset.
func (k *Known) Learned() int {
	return k.learned
}

// TotalLearned returns the number of cells learned over the lifetime of k, across resets.
func (k *Known) TotalLearned() int {
	return k.totalLearned
}

// Resets returns how many times the known grid was reset.
func (k *Known) Resets() int {
	return k.resets
}

// Reset forgets everything: all cells become Unknown.
func (k *Known) Reset() {
	k.g.Fill(grid.Unknown)
	k.learned = 0
	k.resets++
}

// Refresh copies the cells of truth within radius (Chebyshev distance) of pos into the known grid,
// excluding pos itself.
//
// It returns whether anything new was learned: a cell changed from one terrain code to another.
// Changes to or from markers (agents, targets) are copied but don't count, since they follow
// every step of the agents and don't affect the terrain.
func (k *Known) Refresh(truth grid.Reader, pos grid.Pos, radius int) (newInfo bool) {
	if k.ResetAfter > 0 && k.learned >= k.ResetAfter {
		klog.V(2).Infof("Known grid reset after learning %d cells", k.learned)
		k.Reset()
		newInfo = true
	}
	for y := pos.Y - radius; y <= pos.Y+radius; y++ {
		for x := pos.X - radius; x <= pos.X+radius; x++ {
			cellPos := grid.Pos{X: x, Y: y}
			if cellPos == pos || !k.g.InBounds(cellPos) {
				continue
			}
			trueCell, knownCell := truth.At(cellPos), k.g.At(cellPos)
			if trueCell == knownCell {
				continue
			}
			k.g.Set(cellPos, trueCell)
			if trueCell.IsMarker() || knownCell.IsMarker() {
				continue
			}
			k.learned++
			k.totalLearned++
			newInfo = true
		}
	}
	return
}
