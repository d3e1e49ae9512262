package pathfinder

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilepath/frontier"
	"github.com/katalvlaran/tilepath/gridgraph"
)

// phase is the internal resume point of a request.
type phase int

const (
	phaseIdle phase = iota
	phaseStart
	phaseExpand
	phaseBacktrack
)

// request is the bookkeeping of the in-flight FindPath call.
type request struct {
	ticket   Ticket
	onFound  FoundFunc
	onFailed FailedFunc
	begun    time.Time
	turns    int
	expanded int
	span     trace.Span
	log      *slog.Logger
}

// Finder is the per-agent search controller. Create one with New.
type Finder struct {
	cls  Classifier
	opts Options

	store    *gridgraph.Store
	frontier *frontier.Frontier
	explored map[gridgraph.Coord]struct{}

	start, goal *gridgraph.Node
	trail       []*gridgraph.Node // goal-first nodes collected while backtracking
	cursor      *gridgraph.Node

	phase      phase
	status     atomic.Int32
	generation uint64
	req        *request
}

// New returns an Idle Finder that classifies cells through c.
func New(c Classifier, opts ...Option) (*Finder, error) {
	if c == nil {
		return nil, ErrNilClassifier
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Finder{
		cls:      c,
		opts:     o,
		store:    gridgraph.NewStore(),
		frontier: frontier.New(),
		explored: make(map[gridgraph.Coord]struct{}),
	}, nil
}

// FindPath starts a search from start to goal and returns its Ticket.
// Any in-flight request is abandoned without firing its callbacks.
// The Finder is Searching when FindPath returns; drive it with Step.
// Either callback may be nil.
func (f *Finder) FindPath(start, goal gridgraph.Coord, onFound FoundFunc, onFailed FailedFunc) Ticket {
	if f.req != nil {
		f.abandon(outcomeSuperseded)
	}

	f.generation++
	t := Ticket{ID: uuid.NewString(), Generation: f.generation}

	f.store.Reset()
	f.frontier.Reset()
	clear(f.explored)
	f.trail = f.trail[:0]
	f.cursor = nil

	f.start = f.store.GetOrCreate(start)
	f.start.DistanceTraveled = 0
	f.start.Priority = gridgraph.Distance(start, goal)
	f.goal = f.store.GetOrCreate(goal)
	f.frontier.Push(f.start)

	f.req = &request{
		ticket:   t,
		onFound:  onFound,
		onFailed: onFailed,
		begun:    time.Now(),
		span:     startSearchSpan(context.Background(), t, start.String(), goal.String()),
		log: f.opts.Logger.With(
			slog.String("request_id", t.ID),
			slog.Uint64("generation", t.Generation),
		),
	}
	f.phase = phaseStart
	f.status.Store(int32(Searching))

	f.req.log.Debug("search requested",
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
	)

	return t
}

// Step performs one scheduling turn and reports whether more turns are needed,
// including for a request issued from inside onFound or onFailed. It is a no-op returning false while Idle. ctx carries telemetry only; a
// search is abandoned through Cancel or a newer FindPath, never through ctx.
func (f *Finder) Step(ctx context.Context) bool {
	if f.req == nil {
		return false
	}
	f.req.turns++

	switch f.phase {
	case phaseStart:
		f.phase = phaseExpand
	case phaseExpand:
		f.expandTurn(ctx)
	case phaseBacktrack:
		f.backtrackTurn(ctx)
	default:
		f.violate(ctx, "unknown phase")
	}

	// A callback may have issued the next request on this turn.
	return f.req != nil
}

// Cancel abandons the in-flight request, if any, without firing callbacks.
// It reports whether a request was abandoned.
func (f *Finder) Cancel() bool {
	if f.req == nil {
		return false
	}
	f.generation++
	f.abandon(outcomeCancelled)

	return true
}

// Check returns ErrStaleRequest when t was superseded or cancelled.
func (f *Finder) Check(t Ticket) error {
	if t.Generation != f.generation {
		return ErrStaleRequest
	}
	return nil
}

// Status reports whether a request is in flight. Safe for concurrent use.
func (f *Finder) Status() Status { return Status(f.status.Load()) }

// Generation returns the generation of the most recent request.
func (f *Finder) Generation() uint64 { return f.generation }

// Explored reports whether c was expanded by the current or last request.
func (f *Finder) Explored(c gridgraph.Coord) bool {
	_, ok := f.explored[c]
	return ok
}

// ExploredCount returns the size of the explored set.
func (f *Finder) ExploredCount() int { return len(f.explored) }

// FrontierLen returns the number of queued nodes.
func (f *Finder) FrontierLen() int { return f.frontier.Len() }

// Node returns the materialized node at c, if any.
func (f *Finder) Node(c gridgraph.Coord) (*gridgraph.Node, bool) {
	return f.store.Lookup(c)
}

// inBounds reports whether c lies inside the optional bounds window.
func (f *Finder) inBounds(c gridgraph.Coord) bool {
	return f.opts.Bounds == nil || f.opts.Bounds.Contains(c)
}

// abandon drops the in-flight request without callbacks. The generation must
// already be advanced by the caller when the request is not being replaced.
func (f *Finder) abandon(outcome string) {
	req := f.req
	f.req = nil
	f.phase = phaseIdle
	f.status.Store(int32(Idle))

	ctx := context.Background()
	recordSearchMetrics(ctx, outcome, time.Since(req.begun), req.turns, req.expanded)
	endSearchSpan(req.span, outcome, req.turns, req.expanded, 0, nil)
	req.log.Debug("search abandoned",
		slog.String("outcome", outcome),
		slog.Int("turns", req.turns),
	)
}

// succeed ends the request with path. The Finder is Idle before onFound runs,
// so the callback may issue a new FindPath.
func (f *Finder) succeed(ctx context.Context, path Path) {
	req := f.finish(ctx, outcomeFound, path.Len(), nil)
	req.log.Info("search complete",
		slog.String("outcome", outcomeFound),
		slog.Int("turns", req.turns),
		slog.Int("expanded", req.expanded),
		slog.Int("path_len", path.Len()),
		slog.Float64("cost", path.Cost()),
	)
	if req.onFound != nil {
		req.onFound(path)
	}
}

// fail ends the request with err, delivered to onFailed after the Finder is Idle.
func (f *Finder) fail(ctx context.Context, outcome string, err error) {
	req := f.finish(ctx, outcome, 0, err)
	req.log.Info("search complete",
		slog.String("outcome", outcome),
		slog.Int("turns", req.turns),
		slog.Int("expanded", req.expanded),
		slog.String("error", err.Error()),
	)
	if req.onFailed != nil {
		req.onFailed(err)
	}
}

// finish returns the Finder to Idle and records telemetry for the request.
func (f *Finder) finish(ctx context.Context, outcome string, pathLen int, err error) *request {
	req := f.req
	f.req = nil
	f.phase = phaseIdle
	f.status.Store(int32(Idle))

	recordSearchMetrics(ctx, outcome, time.Since(req.begun), req.turns, req.expanded)
	endSearchSpan(req.span, outcome, req.turns, req.expanded, pathLen, err)

	return req
}
