package searchers

import (
	"testing"

	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/grid/gridtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	p := Path{Moves: []grid.Move{grid.Right, grid.Right, grid.Down}, Cost: 3}
	assert.Equal(t, []grid.Pos{{1, 0}, {2, 0}, {2, 1}}, p.Positions(grid.Pos{0, 0}))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, grid.Right, p.Pop())
	assert.Equal(t, 2, p.Len())
	p.Clear()
	assert.True(t, p.Empty())
	assert.Equal(t, grid.Stay, p.Pop())
}

func TestRandomWalkStaysOnPassableCells(t *testing.T) {
	g := gridtest.Build(
		"#####",
		"#...#",
		"#.#%#",
		"#...#",
		"#####",
	)
	w := NewRandomWalk(1)
	pos, facing := grid.Pos{1, 1}, grid.Right
	for range 1000 {
		m := w.Next(g, pos, facing)
		require.True(t, m.IsUnit(), "every reachable cell has an open neighbour")
		pos = pos.Add(m)
		require.Truef(t, g.Passable(pos), "walked into %s", pos)
		facing = m
	}
}

func TestRandomWalkBoxedIn(t *testing.T) {
	g := gridtest.Build(
		"###",
		"#A%",
		"###",
	)
	w := NewRandomWalk(1)
	assert.Equal(t, grid.Stay, w.Next(g, grid.Pos{1, 1}, grid.Up))
}

func TestRandomWalkBias(t *testing.T) {
	g := gridtest.Open(3, 3)
	w := NewRandomWalk(7)
	w.ForwardBias = 5
	w.ReversePenalty = 5
	counts := make(map[grid.Move]int)
	const n = 2000
	for range n {
		counts[w.Next(g, grid.Pos{1, 1}, grid.Right)]++
	}
	// With these biases forward is ~98.7% likely, and reversing is e^-10 times less likely than that.
	assert.Greater(t, counts[grid.Right], n*9/10)
	assert.Less(t, counts[grid.Left], n/100)

	// Same seed, same walk.
	w1, w2 := NewRandomWalk(3), NewRandomWalk(3)
	for range 100 {
		require.Equal(t, w1.Next(g, grid.Pos{1, 1}, grid.Up), w2.Next(g, grid.Pos{1, 1}, grid.Up))
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{0, 0, 0, 0})
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-6)
	}
	probs = softmax([]float32{100, 0})
	assert.InDelta(t, 1.0, probs[0], 1e-6)
}
