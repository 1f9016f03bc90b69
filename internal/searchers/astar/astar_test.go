package astar

import (
	"testing"

	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/grid/gridtest"
	"github.com/janpfeifer/chaseGo/internal/parameters"
	"github.com/janpfeifer/chaseGo/internal/searchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

// bfsDistance returns the length of the shortest path from start to goal, or -1 if there is none.
func bfsDistance(g *grid.Grid, start, goal grid.Pos) int {
	dist := map[grid.Pos]int{start: 0}
	queue := []grid.Pos{start}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		if pos == goal {
			return dist[pos]
		}
		for _, m := range grid.Moves {
			next := pos.Add(m)
			if _, seen := dist[next]; seen || !g.Passable(next) {
				continue
			}
			dist[next] = dist[pos] + 1
			queue = append(queue, next)
		}
	}
	return -1
}

// requireValidPath checks the path takes unit moves over passable cells of g from start to goal.
func requireValidPath(t *testing.T, g *grid.Grid, path searchers.Path, start, goal grid.Pos) {
	t.Helper()
	require.Equal(t, len(path.Moves), path.Cost)
	positions := path.Positions(start)
	for ii, m := range path.Moves {
		require.Truef(t, m.IsUnit(), "move #%d %s is not a unit move", ii, m)
		require.Truef(t, g.Passable(positions[ii]), "move #%d goes into %s, which is not passable", ii, positions[ii])
	}
	if len(positions) == 0 {
		require.Equal(t, start, goal)
	} else {
		require.Equal(t, goal, positions[len(positions)-1])
	}
}

func TestOpenGrid5x5(t *testing.T) {
	g := gridtest.Open(5, 5)
	start, goal := grid.Pos{0, 0}, grid.Pos{4, 4}
	path, found := New().WithCheckHeap(true).FindPath(g.Clone(), start, goal)
	require.True(t, found)
	assert.Equal(t, 8, path.Len())
	requireValidPath(t, g, path, start, goal)
}

func TestOpenGridLengthIsManhattan(t *testing.T) {
	g := gridtest.Open(9, 7)
	s := New()
	pairs := [][2]grid.Pos{
		{{0, 0}, {8, 6}},
		{{8, 6}, {0, 0}},
		{{3, 3}, {3, 0}},
		{{0, 5}, {7, 1}},
		{{4, 2}, {5, 2}},
	}
	for _, pair := range pairs {
		start, goal := pair[0], pair[1]
		path, found := s.FindPath(g.Clone(), start, goal)
		require.Truef(t, found, "%s -> %s", start, goal)
		assert.Equalf(t, start.Distance(goal), path.Len(), "%s -> %s", start, goal)
		requireValidPath(t, g, path, start, goal)
	}
}

func TestStartIsGoal(t *testing.T) {
	g := gridtest.Open(3, 3)
	path, found := New().FindPath(g, grid.Pos{1, 1}, grid.Pos{1, 1})
	require.True(t, found)
	assert.True(t, path.Empty())
	assert.Equal(t, 0, path.Cost)
}

func TestMaze(t *testing.T) {
	g := gridtest.Build(
		"..........",
		".########.",
		".#......#.",
		".#.####.#.",
		".#.#..#.#.",
		".#.#.##.#.",
		".#.#....#.",
		".#.######.",
		".#........",
		".#########",
	)
	s := New().WithCheckHeap(true)
	for _, pair := range [][2]grid.Pos{
		{{0, 9}, {4, 4}},
		{{4, 4}, {0, 9}},
		{{9, 8}, {2, 2}},
		{{5, 4}, {9, 0}},
	} {
		start, goal := pair[0], pair[1]
		want := bfsDistance(g, start, goal)
		require.Positive(t, want)
		path, found := s.FindPath(g.Clone(), start, goal)
		require.Truef(t, found, "%s -> %s", start, goal)
		assert.Equalf(t, want, path.Len(), "%s -> %s: path should be optimal", start, goal)
		requireValidPath(t, g, path, start, goal)
	}
}

func TestBreakableWallsBlock(t *testing.T) {
	g := gridtest.Build(
		"...%...",
		"...%...",
		"...#...",
	)
	_, found := New().FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{6, 0})
	assert.False(t, found)

	g.Set(grid.Pos{3, 1}, grid.Floor)
	path, found := New().FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{6, 0})
	require.True(t, found)
	assert.Equal(t, 8, path.Len())
}

func TestWalledRingHasNoPath(t *testing.T) {
	g := gridtest.Build(
		".......",
		".#####.",
		".#...#.",
		".#...#.",
		".#####.",
		".......",
	)
	s := New().WithCheckHeap(true)
	path, found := s.FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{3, 2})
	assert.False(t, found)
	assert.True(t, path.Empty())
	// It explores every cell reachable from the start: the 22 cells outside the ring.
	assert.Equal(t, 22, s.Stats().Expanded)

	// Goal fully enclosed by walls.
	g = gridtest.Build(
		"..#..",
		".#.#.",
		"..#..",
	)
	_, found = s.FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{2, 1})
	assert.False(t, found)
}

func TestIdempotent(t *testing.T) {
	g := gridtest.Build(
		"......",
		".##.#.",
		"......",
		".#.##.",
		"......",
	)
	s := New()
	start, goal := grid.Pos{0, 0}, grid.Pos{5, 4}
	path1, found1 := s.FindPath(g.Clone(), start, goal)
	path2, found2 := s.FindPath(g.Clone(), start, goal)
	require.True(t, found1)
	require.True(t, found2)
	assert.Equal(t, path1.Cost, path2.Cost)
	assert.Equal(t, path1.Len(), path2.Len())
	// Same Searcher, same inputs: also the same tie-breaks.
	assert.Equal(t, path1.Moves, path2.Moves)
}

func TestFindPathAnnotatesGrid(t *testing.T) {
	g := gridtest.Open(4, 1)
	_, found := New().FindPath(g, grid.Pos{0, 0}, grid.Pos{3, 0})
	require.True(t, found)
	assert.Equal(t, "A..T", g.String())
}

func TestMaxExpansions(t *testing.T) {
	g := gridtest.Open(20, 20)
	s := New().WithMaxExpansions(5)
	_, found := s.FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{19, 19})
	assert.False(t, found)
	assert.Equal(t, 5, s.Stats().Expanded)

	// Short enough to fit.
	path, found := s.FindPath(g.Clone(), grid.Pos{0, 0}, grid.Pos{2, 0})
	require.True(t, found)
	assert.Equal(t, 2, path.Len())
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("max_expansions=100,check_heap")
	s, err := NewFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, 100, s.maxExpansions)
	assert.True(t, s.checkHeap)
	assert.Empty(t, params)

	_, err = NewFromParams(parameters.NewFromConfigString("max_expansions=lots"))
	require.Error(t, err)
}

// TestRelaxation sets up a node in the frontier with an inflated cost, and checks that expanding a
// neighbour lowers it and moves it up in the heap; and that an equal cost rediscovery changes nothing.
func TestRelaxation(t *testing.T) {
	g := gridtest.Open(3, 1)
	g.Annotate(grid.Pos{0, 0}, grid.Pos{2, 0})

	s := New().WithCheckHeap(true)
	s.reset()
	parent := s.nodes.alloc()
	parent.Grid = g
	parent.H = 2
	s.index.insert(parent)

	// The snapshot with the agent at (1, 0), as if it had been generated by some much longer path.
	stale := s.nodes.alloc()
	stale.Grid = g.WithMove(grid.Right)
	stale.Parent = parent.ID
	stale.G, stale.H = 10, 1
	s.index.insert(stale)
	s.push(stale)

	// Fillers with costs between the relaxed and the stale cost, so the stale node sits below them.
	for ii := range 3 {
		filler := s.nodes.alloc()
		filler.Grid = gridtest.Open(3, 1)
		filler.Grid.Annotate(grid.Pos{ii, 0}, grid.Pos{ii, 0})
		filler.G = 5
		s.push(filler)
	}
	require.NotEqual(t, 0, stale.Slot())

	s.expand(parent)
	assert.Equal(t, 1, s.stats.Relaxed)
	assert.Equal(t, 1, stale.G)
	assert.Equal(t, 2, stale.TotalCost())
	assert.Equal(t, 0, stale.Slot(), "relaxed node should be at the top of the frontier")
	assert.Equal(t, 4, s.frontier.Len(), "relaxation doesn't add nodes to the frontier")

	// Rediscovering it with the same cost changes nothing.
	s.expand(parent)
	assert.Equal(t, 1, s.stats.Relaxed)
	assert.Equal(t, 1, s.stats.Discarded)
	assert.Equal(t, 4, s.frontier.Len())

	// Once explored, it is never re-opened, even if a cheaper path showed up.
	top, err := s.frontier.ExtractMin()
	require.NoError(t, err)
	require.Equal(t, stale.ID, top.ID)
	top.InFrontier = false
	top.G = 100
	s.expand(parent)
	assert.Equal(t, 100, top.G)
	assert.Equal(t, 2, s.stats.Discarded)
	assert.Equal(t, 3, s.frontier.Len())
}
