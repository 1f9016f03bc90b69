// Package frontier implements the indexed priority queue used as the open set of best-first searches.
//
// It is a binary min-heap ordered by Element.TotalCost. Each element carries the index of the heap
// slot it currently occupies, so its priority can be decreased in O(log n) without searching the heap.
//
// Ties are broken by the structure of the heap: sift-up only moves an element above its parent
// if its cost is strictly smaller, and sift-down prefers the left child on equal costs. So the
// results are deterministic for a given sequence of operations, but there is no secondary key.
package frontier

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// NoSlot is the slot of an element that is not in the queue.
const NoSlot = -1

// ErrEmpty is returned by ExtractMin when the queue has no elements.
var ErrEmpty = errors.New("frontier: extract from empty queue")

// Element is anything that can be stored in the Queue.
//
// The Queue owns the slot: it sets it on every structural change, and elements should only read it.
type Element interface {
	// TotalCost is the priority key: lowest is extracted first.
	TotalCost() int

	// Slot returns the last value set with SetSlot.
	Slot() int

	// SetSlot is called by the Queue whenever the element changes position.
	SetSlot(slot int)
}

// Queue is the indexed min-heap. The zero value is an empty queue ready to use.
type Queue[E Element] struct {
	heap []E
}

// New returns a Queue with reserved capacity.
func New[E Element](capacity int) *Queue[E] {
	return &Queue[E]{heap: make([]E, 0, capacity)}
}

// Len returns the number of elements in the queue.
func (q *Queue[E]) Len() int {
	return len(q.heap)
}

// Reset empties the queue, keeping the allocated space. The slots of the elements removed are set to NoSlot.
func (q *Queue[E]) Reset() {
	var zero E
	for ii, e := range q.heap {
		e.SetSlot(NoSlot)
		q.heap[ii] = zero
	}
	q.heap = q.heap[:0]
}

// Insert e in the queue. It must not be already in the queue.
func (q *Queue[E]) Insert(e E) {
	q.heap = append(q.heap, e)
	slot := len(q.heap) - 1
	e.SetSlot(slot)
	q.siftUp(slot)
}

// Peek returns the element with the lowest total cost, without removing it.
func (q *Queue[E]) Peek() (e E, ok bool) {
	if len(q.heap) == 0 {
		return
	}
	return q.heap[0], true
}

// ExtractMin removes and returns the element with the lowest total cost.
// The slot of the element returned is set to NoSlot.
//
// It returns ErrEmpty if there are no elements.
func (q *Queue[E]) ExtractMin() (e E, err error) {
	n := len(q.heap)
	if n == 0 {
		err = ErrEmpty
		return
	}
	e = q.heap[0]
	last := q.heap[n-1]
	var zero E
	q.heap[n-1] = zero
	q.heap = q.heap[:n-1]
	if n > 1 {
		q.heap[0] = last
		last.SetSlot(0)
		q.siftDown(0)
	}
	e.SetSlot(NoSlot)
	return e, nil
}

// DecreaseKey restores the heap order after the total cost of e was lowered in place.
//
// It uses the slot recorded in e, and it panics if e is not currently in the queue: decreasing
// the key of an extracted element is a bug in the caller.
func (q *Queue[E]) DecreaseKey(e E) {
	slot := e.Slot()
	if slot < 0 || slot >= len(q.heap) || any(q.heap[slot]) != any(e) {
		exceptions.Panicf("frontier.DecreaseKey: element not in queue (slot=%d, len=%d)", slot, len(q.heap))
	}
	q.siftUp(slot)
}

// Check verifies the heap order and the slot of every element, returning an error describing the
// first inconsistency found.
func (q *Queue[E]) Check() error {
	for ii, e := range q.heap {
		if e.Slot() != ii {
			return errors.Errorf("element at slot %d records slot %d", ii, e.Slot())
		}
		if ii == 0 {
			continue
		}
		parent := (ii - 1) / 2
		if q.heap[parent].TotalCost() > e.TotalCost() {
			return errors.Errorf("heap order broken: parent slot %d cost %d > child slot %d cost %d",
				parent, q.heap[parent].TotalCost(), ii, e.TotalCost())
		}
	}
	return nil
}

// swap elements at slots i and j, updating their slots.
func (q *Queue[E]) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.heap[i].SetSlot(i)
	q.heap[j].SetSlot(j)
}

func (q *Queue[E]) siftUp(slot int) {
	for slot > 0 {
		parent := (slot - 1) / 2
		if q.heap[slot].TotalCost() >= q.heap[parent].TotalCost() {
			break
		}
		q.swap(slot, parent)
		slot = parent
	}
}

func (q *Queue[E]) siftDown(slot int) {
	n := len(q.heap)
	for {
		smallest := slot
		left, right := 2*slot+1, 2*slot+2
		if left < n && q.heap[left].TotalCost() < q.heap[smallest].TotalCost() {
			smallest = left
		}
		if right < n && q.heap[right].TotalCost() < q.heap[smallest].TotalCost() {
			smallest = right
		}
		if smallest == slot {
			return
		}
		q.swap(slot, smallest)
		slot = smallest
	}
}
