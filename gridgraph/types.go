// Package gridgraph defines coordinates, cost classes, nodes, and sentinel
// errors for the gridgraph package of github.com/katalvlaran/tilepath.
package gridgraph

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrBrokenChain indicates a previous-link that cannot be followed back to the start.
	ErrBrokenChain = errors.New("gridgraph: broken previous chain")
)

// Movement costs of the octile metric.
const (
	// StraightCost is the cost of one orthogonal step.
	StraightCost = 1.0
	// DiagonalCost is the cost of one diagonal step.
	DiagonalCost = 1.4
)

// Coord is an integer tile coordinate. It is the identity of a Node.
type Coord struct {
	X, Y int
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offsets lists the eight neighbours of a cell: the 3×3 block around it minus
// the centre, walked column by column from the top-left (-1,+1).
// Expansion order follows this slice, so it is part of the search's determinism.
var Offsets = [8]Coord{
	{-1, 1}, {-1, 0}, {-1, -1},
	{0, 1}, {0, -1},
	{1, 1}, {1, 0}, {1, -1},
}

// Distance returns the octile distance between a and b:
// DiagonalCost per diagonal step plus StraightCost per remaining straight step.
// Complexity: O(1).
func Distance(a, b Coord) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	diag := min(dx, dy)
	straight := max(dx, dy) - diag

	return DiagonalCost*float64(diag) + StraightCost*float64(straight)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Rect is an inclusive rectangle of coordinates. The zero Rect contains (0,0) only.
type Rect struct {
	Min, Max Coord
}

// Contains reports whether c lies inside r (bounds inclusive).
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.Max.X - r.Min.X + 1 }

// Height returns the number of rows covered by r.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// String renders r as "[(x0,y0)..(x1,y1)]".
func (r Rect) String() string {
	return fmt.Sprintf("[%s..%s]", r.Min, r.Max)
}

// NodeType is the traversal cost class of a cell.
type NodeType int

const (
	// Unresolved marks a node whose cell has not been classified yet.
	Unresolved NodeType = iota
	// Open is a freely traversable cell.
	Open
	// Door is a traversable cell carrying an extra cost. Terrain policy may
	// classify doors as Blocked instead.
	Door
	// Blocked is never entered by a search.
	Blocked
)

// doorWeight is the penalty charged when leaving a Door cell.
const doorWeight = 2

// Weight returns the numeric cost-class penalty of t.
// Blocked weighs +Inf; Unresolved weighs like Open.
func (t NodeType) Weight() float64 {
	switch t {
	case Door:
		return doorWeight
	case Blocked:
		return math.Inf(1)
	default:
		return 0
	}
}

// Traversable reports whether a search may enter a cell of this class.
func (t NodeType) Traversable() bool { return t != Blocked }

func (t NodeType) String() string {
	switch t {
	case Unresolved:
		return "unresolved"
	case Open:
		return "open"
	case Door:
		return "door"
	case Blocked:
		return "blocked"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is the search vertex for one grid cell.
//
// Neighbors is empty until the Store expands the node and is never rebuilt
// afterwards. DistanceTraveled (g-cost) starts at +Inf. Priority (f-cost) is
// meaningful only while the node is queued. The predecessor is a weak
// coordinate handle, resolved through the owning Store.
type Node struct {
	Position         Coord
	Neighbors        []*Node
	DistanceTraveled float64
	Priority         float64
	Type             NodeType

	previous    Coord
	hasPrevious bool
	expanded    bool
}

// Previous returns the coordinate of the predecessor on the best known path.
func (n *Node) Previous() (Coord, bool) {
	return n.previous, n.hasPrevious
}

// SetPrevious links n back to p.
func (n *Node) SetPrevious(p *Node) {
	n.previous = p.Position
	n.hasPrevious = true
}

// ClearPrevious drops the back-link.
func (n *Node) ClearPrevious() {
	n.previous = Coord{}
	n.hasPrevious = false
}

// Expanded reports whether the neighbour list has been materialized.
func (n *Node) Expanded() bool { return n.expanded }

// Reached reports whether any path to n has been recorded (g-cost is finite).
func (n *Node) Reached() bool { return !math.IsInf(n.DistanceTraveled, 1) }

func (n *Node) String() string {
	return fmt.Sprintf("%s g=%.2f f=%.2f %s", n.Position, n.DistanceTraveled, n.Priority, n.Type)
}
