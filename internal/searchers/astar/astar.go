// Package astar implements searchers.Pathfinder with the A* algorithm over grid snapshots.
//
// Each state of the search is a full grid.Grid snapshot with the agent at some position. States are
// expanded by moving the agent one cell in each of the 4 directions (grid.Moves order), and the cost
// of a path is its number of moves. The heuristic is the Manhattan distance to the target, which is
// admissible and consistent on a 4-connected grid: the first time the goal is extracted from the
// frontier its path is optimal.
//
// See: wikipedia.org/wiki/A*_search_algorithm
package astar

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/searchers"
	"github.com/janpfeifer/chaseGo/internal/searchers/frontier"
	"github.com/janpfeifer/chaseGo/internal/ui/cli"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Pathfinder interface.
//
// It reuses its node arena, index and frontier across searches, so it is not safe for concurrent
// use: each agent should own its own Searcher.
type Searcher struct {
	maxExpansions int
	checkHeap     bool

	nodes    arena
	index    index
	frontier *frontier.Queue[*Node]
	stats    Stats
}

// Assert that Searcher implements searchers.Pathfinder.
var _ searchers.Pathfinder = (*Searcher)(nil)

// Stats stores the counts of the last search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Expanded is the number of nodes extracted from the frontier and expanded.
	Expanded int

	// Generated is the number of child snapshots created by expansions.
	Generated int

	// Relaxed counts children that lowered the cost of a node still in the frontier.
	Relaxed int

	// Discarded counts children equal to an already known node, explored or not cheaper.
	Discarded int

	// MaxFrontier is the largest size reached by the frontier.
	MaxFrontier int

	Elapsed time.Duration
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("expanded=%d, generated=%d, relaxed=%d, discarded=%d, max_frontier=%d, elapsed=%s",
		s.Expanded, s.Generated, s.Relaxed, s.Discarded, s.MaxFrontier, s.Elapsed)
}

// New returns an A* based searchers.Pathfinder implementation.
// There are other optional configurations, see methods Searcher.With...
func New() *Searcher {
	return &Searcher{
		frontier: frontier.New[*Node](64),
	}
}

// WithMaxExpansions limits the number of nodes expanded per search: if the goal is not found
// within the limit, the search returns no path. Set to 0 (the default) for no limit.
func (s *Searcher) WithMaxExpansions(maxExpansions int) *Searcher {
	s.maxExpansions = max(0, maxExpansions)
	return s
}

// WithCheckHeap makes the search verify the frontier's heap invariant after every insertion and
// relaxation, and panic if it is broken. It is slow: only useful for debugging.
func (s *Searcher) WithCheckHeap(checkHeap bool) *Searcher {
	s.checkHeap = checkHeap
	return s
}

// Stats of the last search.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// NumNodes returns the number of nodes created by the last search.
func (s *Searcher) NumNodes() int {
	return s.nodes.len()
}

var muLogGrid sync.Mutex

// FindPath implements searchers.Pathfinder.
//
// The grid g is annotated with start and goal, and it is owned by the search until the next call.
func (s *Searcher) FindPath(g *grid.Grid, start, goal grid.Pos) (path searchers.Path, found bool) {
	startTime := time.Now()
	s.reset()
	g.Annotate(start, goal)
	if klog.V(3).Enabled() {
		muLogGrid.Lock()
		fmt.Printf("\nA* search from %s to %s:\n", start, goal)
		cli.New(true).PrintGrid(g)
		muLogGrid.Unlock()
	}

	root := s.nodes.alloc()
	root.Grid = g
	root.H = start.Distance(goal)
	s.index.insert(root)
	s.push(root)

	path, found = s.search()
	s.stats.Elapsed = time.Since(startTime)
	if klog.V(2).Enabled() {
		klog.Infof("A* %s -> %s: found=%v, len=%d, %s", start, goal, found, path.Len(), s.stats)
	}
	return
}

// search loops over the frontier until the goal is found or there is nothing left to explore.
func (s *Searcher) search() (path searchers.Path, found bool) {
	for s.frontier.Len() > 0 {
		node, err := s.frontier.ExtractMin()
		if err != nil {
			exceptions.Panicf("A* frontier failed with %d elements: %+v", s.frontier.Len(), err)
		}
		node.InFrontier = false
		if node.Grid.IsGoal() {
			return s.reconstruct(node), true
		}
		if s.maxExpansions > 0 && s.stats.Expanded >= s.maxExpansions {
			klog.V(1).Infof("A* gave up after %d expansions (%d nodes in frontier)",
				s.stats.Expanded, s.frontier.Len())
			return
		}
		s.stats.Expanded++
		s.expand(node)
	}
	return
}

// expand generates the children of parent and relaxes them against the index.
func (s *Searcher) expand(parent *Node) {
	parentGrid := parent.Grid
	for _, m := range grid.Moves {
		if !parentGrid.Passable(parentGrid.Self.Add(m)) {
			continue
		}
		child := parentGrid.WithMove(m)
		s.stats.Generated++
		g := parent.G + 1
		h := child.Self.Distance(child.Target)

		id, found := s.index.find(&s.nodes, child)
		if !found {
			n := s.nodes.alloc()
			n.Grid = child
			n.Parent = parent.ID
			n.G, n.H = g, h
			s.index.insert(n)
			s.push(n)
			continue
		}

		existing := s.nodes.get(id)
		if !existing.InFrontier || existing.TotalCost() <= g+h {
			// Explored nodes are never re-opened.
			s.stats.Discarded++
			continue
		}
		existing.G, existing.H = g, h
		existing.Parent = parent.ID
		s.frontier.DecreaseKey(existing)
		s.stats.Relaxed++
		s.maybeCheckHeap()
	}
}

// push n into the frontier.
func (s *Searcher) push(n *Node) {
	n.InFrontier = true
	s.frontier.Insert(n)
	s.stats.MaxFrontier = max(s.stats.MaxFrontier, s.frontier.Len())
	s.maybeCheckHeap()
}

func (s *Searcher) maybeCheckHeap() {
	if !s.checkHeap {
		return
	}
	if err := s.frontier.Check(); err != nil {
		exceptions.Panicf("A* frontier heap is broken: %+v", err)
	}
}

// reconstruct the path from the root to goal following the parent links.
// The root is not included, and the first move is at the head.
func (s *Searcher) reconstruct(goal *Node) searchers.Path {
	path := searchers.Path{
		Moves: make([]grid.Move, 0, goal.G),
		Cost:  goal.G,
	}
	for node := goal; node.Parent != NoParent; {
		parent := s.nodes.get(node.Parent)
		path.Moves = append(path.Moves, node.Grid.Self.Sub(parent.Grid.Self))
		node = parent
	}
	slices.Reverse(path.Moves)
	return path
}

// reset state from a previous search.
func (s *Searcher) reset() {
	s.frontier.Reset()
	s.index.reset()
	s.nodes.reset()
	s.stats = Stats{}
}
