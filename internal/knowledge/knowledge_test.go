package knowledge

import (
	"testing"

	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/grid/gridtest"
	"github.com/stretchr/testify/assert"
)

func TestRefreshOnlyNeighbours(t *testing.T) {
	truth := gridtest.Build(
		"#####",
		"#...#",
		"#.A.#",
		"#...#",
		"#####",
	)
	k := New(5, 5)
	assert.False(t, k.Refresh(truth, grid.Pos{X: 2, Y: 2}, 1),
		"neighbours were floor, as already assumed for unknown cells")
	assert.Equal(t, 0, k.Learned())
	// The agent's own cell is not copied, and the walls are beyond the radius.
	assert.Equal(t, ".....\n.....\n.....\n.....\n.....", k.Snapshot().String())

	// Near the corner the walls are within range: 5 of the 8 neighbours are walls.
	assert.True(t, k.Refresh(truth, grid.Pos{X: 1, Y: 1}, 1))
	assert.Equal(t, 5, k.Learned())
	// The agent marker at (2, 2) is copied too, but it isn't counted as learned.
	assert.Equal(t, "###..\n#....\n#.A..\n.....\n.....", k.Snapshot().String())

	// Nothing new the second time around.
	assert.False(t, k.Refresh(truth, grid.Pos{X: 1, Y: 1}, 1))
	assert.Equal(t, 5, k.TotalLearned())
}

func TestRefreshBounds(t *testing.T) {
	truth := gridtest.Build(
		"A#",
		"#.",
	)
	k := New(2, 2)
	assert.True(t, k.Refresh(truth, grid.Pos{X: 0, Y: 0}, 3))
	assert.Equal(t, 2, k.Learned())
	assert.Equal(t, ".#\n#.", k.Snapshot().String())
}

func TestRefreshIgnoresMarkerChurn(t *testing.T) {
	truth := gridtest.Build(
		"....",
		".A..",
		"....",
	)
	k := New(4, 3)
	// Another agent standing next to us.
	truth.Set(grid.Pos{X: 2, Y: 1}, grid.Agent)
	assert.False(t, k.Refresh(truth, grid.Pos{X: 1, Y: 1}, 1))
	assert.Equal(t, grid.Agent, k.Grid().At(grid.Pos{X: 2, Y: 1}), "markers are copied")

	// It moves away.
	truth.Set(grid.Pos{X: 2, Y: 1}, grid.Floor)
	truth.Set(grid.Pos{X: 2, Y: 0}, grid.Agent)
	assert.False(t, k.Refresh(truth, grid.Pos{X: 1, Y: 1}, 1))
	assert.Equal(t, grid.Floor, k.Grid().At(grid.Pos{X: 2, Y: 1}))
	assert.Equal(t, 0, k.Learned())
}

func TestRefreshWallOpened(t *testing.T) {
	truth := gridtest.Build(
		".%.",
	)
	k := New(3, 1)
	assert.True(t, k.Refresh(truth, grid.Pos{X: 0, Y: 0}, 1))
	assert.Equal(t, grid.Breakable, k.Grid().At(grid.Pos{X: 1, Y: 0}))

	// The breakable wall crumbles.
	truth.Set(grid.Pos{X: 1, Y: 0}, grid.Floor)
	assert.True(t, k.Refresh(truth, grid.Pos{X: 0, Y: 0}, 1))
	assert.Equal(t, grid.Floor, k.Grid().At(grid.Pos{X: 1, Y: 0}))
}

func TestResetAfter(t *testing.T) {
	truth := gridtest.Build(
		"#####",
		"#...#",
		"#####",
	)
	k := New(5, 3)
	k.ResetAfter = 7
	assert.True(t, k.Refresh(truth, grid.Pos{X: 1, Y: 1}, 1))
	assert.Equal(t, 7, k.Learned())
	assert.Equal(t, 0, k.Resets())

	// Threshold reached: the next refresh starts from scratch, and it counts as new information.
	assert.True(t, k.Refresh(truth, grid.Pos{X: 3, Y: 1}, 1))
	assert.Equal(t, 1, k.Resets())
	assert.Equal(t, 7, k.Learned())
	assert.Equal(t, 14, k.TotalLearned())
	assert.Equal(t, "..###\n....#\n..###", k.Snapshot().String())
}
