package astar

import (
	"github.com/janpfeifer/chaseGo/internal/grid"
	"github.com/janpfeifer/chaseGo/internal/searchers/frontier"
)

// NodeID is the handle of a Node in the arena of a Searcher.
type NodeID int32

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// Node of the search: one board configuration reached during the search.
type Node struct {
	ID NodeID

	// Grid snapshot owned by the node.
	Grid *grid.Grid

	// Parent is the node this one was generated from, with the lowest cost found so far.
	Parent NodeID

	// G is the cost from the root, H is the heuristic estimate of the cost to the goal.
	G, H int

	// InFrontier is true while the node is in the frontier queue. Once extracted (explored) the node
	// never goes back to the frontier.
	InFrontier bool

	slot int
}

// Assert *Node is a frontier.Element.
var _ frontier.Element = (*Node)(nil)

// TotalCost implements frontier.Element: G+H.
func (n *Node) TotalCost() int { return n.G + n.H }

// Slot implements frontier.Element.
func (n *Node) Slot() int { return n.slot }

// SetSlot implements frontier.Element.
func (n *Node) SetSlot(slot int) { n.slot = slot }

// nodesPerChunk is the allocation unit of the arena.
const nodesPerChunk = 1024

// arena holds all nodes of a search, addressed by NodeID. Nodes are allocated in fixed size
// chunks, so pointers to them remain valid while the arena grows.
type arena struct {
	chunks [][]Node
	count  int
}

// alloc allocates a node and returns it with its ID set.
func (a *arena) alloc() *Node {
	chunkIdx := a.count / nodesPerChunk
	if chunkIdx == len(a.chunks) {
		a.chunks = append(a.chunks, make([]Node, nodesPerChunk))
	}
	n := &a.chunks[chunkIdx][a.count%nodesPerChunk]
	*n = Node{ID: NodeID(a.count), Parent: NoParent, slot: frontier.NoSlot}
	a.count++
	return n
}

// get returns the node with the given id.
func (a *arena) get(id NodeID) *Node {
	return &a.chunks[int(id)/nodesPerChunk][int(id)%nodesPerChunk]
}

// len returns the number of nodes allocated.
func (a *arena) len() int {
	return a.count
}

// reset releases all nodes, keeping the chunks for reuse. Grids are dropped so they can be garbage collected.
func (a *arena) reset() {
	for ii := range a.count {
		a.chunks[ii/nodesPerChunk][ii%nodesPerChunk] = Node{}
	}
	a.count = 0
}

// index maps every snapshot generated in a search to its node: it is both the open and the
// closed set. Buckets are keyed by grid.Grid.Hash and resolved with grid.Grid.Equal.
type index struct {
	buckets map[uint64][]NodeID
}

func (ix *index) reset() {
	if ix.buckets == nil {
		ix.buckets = make(map[uint64][]NodeID)
		return
	}
	clear(ix.buckets)
}

// find the node holding a snapshot equal to g.
func (ix *index) find(nodes *arena, g *grid.Grid) (NodeID, bool) {
	for _, id := range ix.buckets[g.Hash()] {
		if nodes.get(id).Grid.Equal(g) {
			return id, true
		}
	}
	return NoParent, false
}

// insert node n. It must not be already present.
func (ix *index) insert(n *Node) {
	h := n.Grid.Hash()
	ix.buckets[h] = append(ix.buckets[h], n.ID)
}
