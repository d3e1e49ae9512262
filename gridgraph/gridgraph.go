// Package gridgraph provides the lazily populated node store behind a single
// grid search. Cells become Nodes the first time a search asks for them;
// nothing is precomputed and nothing is evicted until Reset.
package gridgraph

import (
	"fmt"
	"math"
)

// Store owns every Node of one search, keyed by coordinate.
// It is not safe for concurrent use; a search owns its Store exclusively.
type Store struct {
	nodes map[Coord]*Node
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{nodes: make(map[Coord]*Node)}
}

// GetOrCreate returns the Node registered for c, creating it with
// DistanceTraveled=+Inf, an Unresolved type and no neighbours if absent.
// Complexity: O(1) average.
func (s *Store) GetOrCreate(c Coord) *Node {
	if n, ok := s.nodes[c]; ok {
		return n
	}
	n := &Node{
		Position:         c,
		DistanceTraveled: math.Inf(1),
		Type:             Unresolved,
	}
	s.nodes[c] = n

	return n
}

// Lookup returns the Node registered for c, if any.
func (s *Store) Lookup(c Coord) (*Node, bool) {
	n, ok := s.nodes[c]
	return n, ok
}

// Len returns the number of materialized nodes.
func (s *Store) Len() int { return len(s.nodes) }

// Reset discards every node. Nodes handed out earlier stay valid for their
// holders but are no longer reachable through the Store.
func (s *Store) Reset() {
	s.nodes = make(map[Coord]*Node)
}

// Expand fills n.Neighbors with the eight surrounding cells in Offsets order,
// creating or reusing their Nodes. A node is expanded at most once; later calls
// return false and leave the neighbour list untouched.
// Complexity: O(8).
func (s *Store) Expand(n *Node) bool {
	if n.expanded {
		return false
	}
	neighbors := make([]*Node, 0, len(Offsets))
	for _, d := range Offsets {
		neighbors = append(neighbors, s.GetOrCreate(n.Position.Add(d)))
	}
	n.Neighbors = neighbors
	n.expanded = true

	return true
}

// PreviousOf resolves n's weak back-link through the Store.
// Returns false when n has no predecessor or the predecessor is unknown.
func (s *Store) PreviousOf(n *Node) (*Node, bool) {
	c, ok := n.Previous()
	if !ok {
		return nil, false
	}
	return s.Lookup(c)
}

// Backtrack walks previous-links from goal to the first node without a
// predecessor and returns the chain start-first.
// A link to an unknown coordinate, or a chain longer than the Store, is
// reported as ErrBrokenChain.
// Complexity: O(L) time and memory for a chain of L nodes.
func (s *Store) Backtrack(goal *Node) ([]*Node, error) {
	path := []*Node{goal}
	for cur := goal; ; {
		c, ok := cur.Previous()
		if !ok {
			break
		}
		prev, known := s.Lookup(c)
		if !known {
			return nil, fmt.Errorf("%w: %s links to unknown %s", ErrBrokenChain, cur.Position, c)
		}
		if len(path) > s.Len() {
			return nil, fmt.Errorf("%w: loop through %s", ErrBrokenChain, c)
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place: start first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
