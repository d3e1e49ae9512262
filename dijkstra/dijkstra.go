package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Costs computes the cheapest cost from source to every reachable cell.
//
// Returns:
//
//   - dist: map from cell to minimum cost; unreachable cells are absent.
//   - prev: predecessor map if WithReturnPath was given (nil otherwise).
//     prev[v] == u means the cheapest route to v arrives from u.
//   - err:  ErrNilClassifier, ErrUnbounded or ErrSourceOutOfBounds.
//
// Preconditions and validation (in order):
//  1. c must be non-nil (ErrNilClassifier).
//  2. WithBounds or WithMaxDistance must be set (ErrUnbounded).
//  3. source must be inside the bounds, if any (ErrSourceOutOfBounds).
func Costs(c Classifier, source gridgraph.Coord, opts ...Option) (map[gridgraph.Coord]float64, map[gridgraph.Coord]gridgraph.Coord, error) {
	r, err := newRunner(c, source, opts)
	if err != nil {
		return nil, nil, err
	}
	r.process(nil)

	if !r.options.ReturnPath {
		return r.dist, nil, nil
	}
	return r.dist, r.prev, nil
}

// Distance returns the cheapest cost from one cell to another and whether
// to is reachable at all. The search stops as soon as to is settled.
func Distance(c Classifier, from, to gridgraph.Coord, opts ...Option) (float64, bool, error) {
	r, err := newRunner(c, from, opts)
	if err != nil {
		return 0, false, err
	}
	r.process(&to)

	d, ok := r.dist[to]
	if !ok {
		return math.Inf(1), false, nil
	}
	return d, true, nil
}

// runner holds the mutable state for a single execution.
type runner struct {
	cls     Classifier
	options Options
	source  gridgraph.Coord
	dist    map[gridgraph.Coord]float64
	prev    map[gridgraph.Coord]gridgraph.Coord
	types   map[gridgraph.Coord]gridgraph.NodeType // one classification per cell
	visited map[gridgraph.Coord]bool
	pq      nodePQ
}

// newRunner validates the inputs and pushes the source at distance 0.
func newRunner(c Classifier, source gridgraph.Coord, opts []Option) (*runner, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if c == nil {
		return nil, ErrNilClassifier
	}
	if cfg.Bounds == nil && math.IsInf(cfg.MaxDistance, 1) {
		return nil, ErrUnbounded
	}
	if cfg.Bounds != nil && !cfg.Bounds.Contains(source) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrSourceOutOfBounds, source, *cfg.Bounds)
	}

	r := &runner{
		cls:     c,
		options: cfg,
		source:  source,
		dist:    make(map[gridgraph.Coord]float64),
		prev:    make(map[gridgraph.Coord]gridgraph.Coord),
		types:   make(map[gridgraph.Coord]gridgraph.NodeType),
		visited: make(map[gridgraph.Coord]bool),
	}
	r.dist[source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{at: source, dist: 0})

	return r, nil
}

// process is the core loop: extract the closest cell and relax its neighbours.
// It stops when the heap is empty, the cap is exceeded, or target is settled.
func (r *runner) process(target *gridgraph.Coord) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.at

		// Stale entry left behind by lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if target != nil && u == *target {
			return
		}

		r.relax(u)
	}
}

// relax tries to improve the cost of every neighbour of u.
func (r *runner) relax(u gridgraph.Coord) {
	var w float64
	if u != r.source {
		w = r.classify(u).Weight()
	}

	for _, off := range gridgraph.Offsets {
		v := u.Add(off)
		if r.visited[v] {
			continue
		}
		if r.options.Bounds != nil && !r.options.Bounds.Contains(v) {
			continue
		}
		if !r.classify(v).Traversable() {
			continue
		}

		newDist := r.dist[u] + gridgraph.Distance(u, v) + w
		if newDist > r.options.MaxDistance {
			continue
		}
		if cur, seen := r.dist[v]; seen && newDist >= cur {
			continue
		}

		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{at: v, dist: newDist})
	}
}

// classify returns the cached class of c, asking the classifier on first use.
func (r *runner) classify(c gridgraph.Coord) gridgraph.NodeType {
	t, ok := r.types[c]
	if !ok {
		t = r.cls.Classify(c)
		r.types[c] = t
	}
	return t
}

// nodeItem is a heap entry: a cell and its tentative distance.
type nodeItem struct {
	at   gridgraph.Coord
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
