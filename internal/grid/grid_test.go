package grid_test

import (
	"testing"

	. "github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/grid/gridtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPos(t *testing.T) {
	a, b := Pos{1, 2}, Pos{4, -2}
	assert.Equal(t, 7, a.Distance(b))
	assert.Equal(t, 4, a.Chebyshev(b))
	assert.Equal(t, Pos{2, 2}, a.Add(Right))
	assert.Equal(t, Up, Pos{1, 1}.Sub(a))
	assert.Equal(t, Left, Right.Reverse())
	assert.True(t, Down.IsUnit())
	assert.False(t, Stay.IsUnit())
	assert.False(t, Move{1, 1}.IsUnit())
}

func TestCells(t *testing.T) {
	for _, c := range []Cell{Wall, Breakable} {
		assert.Truef(t, c.Blocks(), "cell %d should block", c)
	}
	for _, c := range []Cell{Floor, Agent, TargetMark} {
		assert.Falsef(t, c.Blocks(), "cell %d should not block", c)
	}
	assert.True(t, Agent.IsMarker())
	assert.True(t, TargetMark.IsMarker())
	assert.False(t, Wall.IsMarker())
}

func TestParse(t *testing.T) {
	g := gridtest.Build(
		"A..#",
		".%.T",
	)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, Pos{0, 0}, g.Self)
	assert.Equal(t, Pos{3, 1}, g.Target)
	assert.Equal(t, Wall, g.At(Pos{3, 0}))
	assert.Equal(t, Breakable, g.At(Pos{1, 1}))
	assert.Equal(t, Wall, g.At(Pos{-1, 0}), "out of bounds reads as wall")
	assert.Equal(t, "A..#\n.%.T", g.String())

	_, err := Parse([]string{"...", ".."})
	require.Error(t, err)
	_, err = Parse([]string{"..x"})
	require.Error(t, err)
	_, err = Parse([]string{"A.A"})
	require.Error(t, err)
	_, err = Parse(nil)
	require.Error(t, err)
}

func TestWithMoveDoesNotAlias(t *testing.T) {
	g := gridtest.Build(
		"...",
		".A.",
		"...",
	)
	var children []*Grid
	for _, m := range Moves {
		children = append(children, g.WithMove(m))
	}

	// Parent unchanged.
	assert.Equal(t, "...\n.A.\n...", g.String())
	assert.Equal(t, Pos{1, 1}, g.Self)

	// Each sibling independently owned.
	want := []string{
		".A.\n...\n...",
		"...\n..A\n...",
		"...\n...\n.A.",
		"...\nA..\n...",
	}
	for ii, child := range children {
		assert.Equal(t, want[ii], child.String())
		assert.Equal(t, g.Self.Add(Moves[ii]), child.Self)
		child.CheckInvariants()
	}
}

func TestWithMoveIntoWallPanics(t *testing.T) {
	g := gridtest.Build(
		"A#",
	)
	assert.Panics(t, func() { g.WithMove(Right) })
	assert.Panics(t, func() { g.WithMove(Left) })
}

func TestAnnotate(t *testing.T) {
	// Parse rejects two agents, so the stale marker is set by hand.
	g := gridtest.Build(
		"A..",
		"..T",
	)
	g.Set(Pos{1, 1}, Agent)
	g.Annotate(Pos{2, 0}, Pos{0, 1})
	assert.Equal(t, "..A\nT..", g.String())
	assert.Equal(t, Pos{2, 0}, g.Self)
	assert.Equal(t, Pos{0, 1}, g.Target)
	assert.False(t, g.IsGoal())
	g.CheckInvariants()

	// Start == goal: the agent marker wins, and it is a goal already.
	g.Annotate(Pos{1, 0}, Pos{1, 0})
	assert.Equal(t, ".A.\n...", g.String())
	assert.True(t, g.IsGoal())
}

func TestEqualAndHash(t *testing.T) {
	g1 := gridtest.Build(
		"A..",
		"..T",
	)
	g2 := g1.Clone()
	assert.True(t, g1.Equal(g2))
	assert.Equal(t, g1.Hash(), g2.Hash())

	// Same coordinates (same hash), different terrain: not equal.
	g2.Set(Pos{1, 0}, Wall)
	assert.Equal(t, g1.Hash(), g2.Hash())
	assert.False(t, g1.Equal(g2))

	g3 := g1.WithMove(Right)
	assert.False(t, g1.Equal(g3))
	assert.NotEqual(t, g1.Hash(), g3.Hash())
}
