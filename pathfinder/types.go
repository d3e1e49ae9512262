package pathfinder

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Sentinel errors returned or delivered by the Finder.
var (
	// ErrNilClassifier indicates New was called without a Classifier.
	ErrNilClassifier = errors.New("pathfinder: classifier is nil")

	// ErrUnreachable indicates the frontier was exhausted before the goal was reached.
	ErrUnreachable = errors.New("pathfinder: goal unreachable")

	// ErrOutOfBounds indicates a start or goal outside the configured bounds.
	ErrOutOfBounds = errors.New("pathfinder: coordinate out of bounds")

	// ErrExpansionLimit indicates the search hit WithMaxExpansions.
	ErrExpansionLimit = errors.New("pathfinder: expansion limit reached")

	// ErrInvalidState indicates an internal invariant violation, such as a
	// broken back-link chain during reconstruction.
	ErrInvalidState = errors.New("pathfinder: invalid search state")

	// ErrStaleRequest indicates a Ticket superseded by a newer request.
	ErrStaleRequest = errors.New("pathfinder: stale request")
)

// Classifier reports the traversal cost class of a cell.
// *terrain.Classifier satisfies it.
type Classifier interface {
	Classify(c gridgraph.Coord) gridgraph.NodeType
}

// Status is the externally visible state of a Finder.
type Status int32

const (
	// Idle means no request is in flight.
	Idle Status = iota
	// Searching means a request is being worked on turn by turn.
	Searching
)

func (s Status) String() string {
	if s == Searching {
		return "searching"
	}
	return "idle"
}

// Ticket identifies one FindPath request.
type Ticket struct {
	ID         string // unique request id, also used in logs and spans
	Generation uint64 // position in the Finder's request sequence
}

// FoundFunc receives the route of a successful request, start first.
type FoundFunc func(path Path)

// FailedFunc receives the reason a request failed.
type FailedFunc func(err error)

// Path is an ordered route from the start node to the goal node.
type Path []*gridgraph.Node

// Len returns the number of nodes on the path.
func (p Path) Len() int { return len(p) }

// Cost returns the accumulated g-cost at the goal; 0 for an empty path.
func (p Path) Cost() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].DistanceTraveled
}

// Coords returns the cell coordinates along the path.
func (p Path) Coords() []gridgraph.Coord {
	out := make([]gridgraph.Coord, len(p))
	for i, n := range p {
		out[i] = n.Position
	}
	return out
}

// Start returns the first coordinate; the zero Coord for an empty path.
func (p Path) Start() gridgraph.Coord {
	if len(p) == 0 {
		return gridgraph.Coord{}
	}
	return p[0].Position
}

// Goal returns the last coordinate; the zero Coord for an empty path.
func (p Path) Goal() gridgraph.Coord {
	if len(p) == 0 {
		return gridgraph.Coord{}
	}
	return p[len(p)-1].Position
}

// String renders the path as "(x0,y0) -> (x1,y1) -> ...".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = n.Position.String()
	}
	return strings.Join(parts, " -> ")
}

// Hooks observe a running search. Every field is optional.
type Hooks struct {
	// OnExpand is called when a node is popped and marked explored.
	OnExpand func(n *gridgraph.Node)
	// OnRelax is called after to's g-cost was lowered through from.
	OnRelax func(from, to *gridgraph.Node)
	// OnEnqueue is called after n was pushed onto the frontier.
	OnEnqueue func(n *gridgraph.Node)
}

// Options configures a Finder.
type Options struct {
	Logger        *slog.Logger    // structured logger; component=pathfinder by default
	Bounds        *gridgraph.Rect // optional sane-coordinate window; nil = unbounded
	MaxExpansions int             // 0 = unlimited
	Strict        bool            // panic on invariant violations
	Hooks         Hooks
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns unbounded, non-strict options logging through slog.Default.
func DefaultOptions() Options {
	return Options{
		Logger: slog.Default().With(slog.String("component", "pathfinder")),
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("pathfinder: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// WithBounds restricts searches to r: cells outside are treated as Blocked and
// requests with an endpoint outside fail with ErrOutOfBounds. Panics on an empty r.
func WithBounds(r gridgraph.Rect) Option {
	if r.Empty() {
		panic("pathfinder: WithBounds(empty rect)")
	}
	return func(o *Options) {
		o.Bounds = &r
	}
}

// WithMaxExpansions caps the number of expansion turns per request.
// 0 disables the cap. Panics on negative values.
func WithMaxExpansions(n int) Option {
	if n < 0 {
		panic("pathfinder: WithMaxExpansions(negative)")
	}
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// WithStrictInvariants makes invariant violations panic instead of failing the request.
func WithStrictInvariants() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

// WithHooks installs search observers.
func WithHooks(h Hooks) Option {
	return func(o *Options) {
		o.Hooks = h
	}
}
