// Package frontier implements the open set of an A* search: a min-priority
// queue of gridgraph Nodes with O(1) membership tests.
//
// Ordering:
//
//   - Nodes are keyed by Node.Priority at Push time.
//   - Equal priorities pop in insertion order (FIFO), which keeps searches
//     deterministic for a given neighbour expansion order.
//   - Update restores heap order after a queued node's Priority decreased
//     (decrease-key), so a node is never queued twice.
//
// Complexity:
//
//   - Push, Pop, Update: O(log N)
//   - Contains, Len:     O(1)
package frontier

import (
	"container/heap"
	"errors"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// ErrEmptyFrontier is returned by Pop when no node is queued. For a search it
// means the goal is unreachable, not that something went wrong.
var ErrEmptyFrontier = errors.New("frontier: empty")

// Frontier is a min-priority queue of nodes. Not safe for concurrent use.
type Frontier struct {
	pq    nodePQ
	items map[*gridgraph.Node]*item
	seq   uint64
}

// New returns an empty Frontier.
func New() *Frontier {
	f := &Frontier{items: make(map[*gridgraph.Node]*item)}
	heap.Init(&f.pq)
	return f
}

// Push queues n keyed by its current Priority. Pushing a node that is already
// queued behaves like Update.
func (f *Frontier) Push(n *gridgraph.Node) {
	if it, ok := f.items[n]; ok {
		it.priority = n.Priority
		heap.Fix(&f.pq, it.index)
		return
	}
	it := &item{node: n, priority: n.Priority, seq: f.seq}
	f.seq++
	heap.Push(&f.pq, it)
	f.items[n] = it
}

// Pop removes and returns the node with the lowest priority.
// Returns ErrEmptyFrontier when nothing is queued.
func (f *Frontier) Pop() (*gridgraph.Node, error) {
	if f.pq.Len() == 0 {
		return nil, ErrEmptyFrontier
	}
	it := heap.Pop(&f.pq).(*item)
	delete(f.items, it.node)

	return it.node, nil
}

// Peek returns the lowest-priority node without removing it.
func (f *Frontier) Peek() (*gridgraph.Node, bool) {
	if f.pq.Len() == 0 {
		return nil, false
	}
	return f.pq[0].node, true
}

// Contains reports whether n is queued.
func (f *Frontier) Contains(n *gridgraph.Node) bool {
	_, ok := f.items[n]
	return ok
}

// Update re-keys a queued node after its Priority changed.
// Returns false when n is not queued.
func (f *Frontier) Update(n *gridgraph.Node) bool {
	it, ok := f.items[n]
	if !ok {
		return false
	}
	it.priority = n.Priority
	heap.Fix(&f.pq, it.index)

	return true
}

// Len returns the number of queued nodes.
func (f *Frontier) Len() int { return f.pq.Len() }

// Reset drops every queued node. The backing array is kept but no longer
// references the dropped nodes.
func (f *Frontier) Reset() {
	clear(f.pq)
	f.pq = f.pq[:0]
	f.items = make(map[*gridgraph.Node]*item)
	f.seq = 0
}

// Nodes returns the queued nodes in heap order (not sorted).
func (f *Frontier) Nodes() []*gridgraph.Node {
	out := make([]*gridgraph.Node, len(f.pq))
	for i, it := range f.pq {
		out[i] = it.node
	}
	return out
}

// item is one heap entry. priority is copied from the node so that callers
// mutating Node.Priority cannot silently break the heap before Update.
type item struct {
	node     *gridgraph.Node
	priority float64
	seq      uint64 // insertion order, breaks ties
	index    int    // position in nodePQ, maintained by Swap/Push/Pop
}

// nodePQ is a min-heap of *item ordered by (priority, seq).
type nodePQ []*item

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by priority, then by insertion.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements and keeps their indices current.
func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *item.
func (pq *nodePQ) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

// Pop removes and returns the last element; heap.Pop has already swapped the
// minimum there.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1 // for safety
	*pq = old[:n-1]

	return it
}
