package pathfinder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// expandTurn performs one expansion: pop, materialize, classify, relax.
// It switches to backtracking once the goal sits in the frontier.
func (f *Finder) expandTurn(ctx context.Context) {
	req := f.req

	if req.expanded == 0 && f.frontier.Contains(f.start) {
		if !f.inBounds(f.start.Position) || !f.inBounds(f.goal.Position) {
			f.fail(ctx, outcomeOutOfBounds, fmt.Errorf("%w: %s -> %s outside %s",
				ErrOutOfBounds, f.start.Position, f.goal.Position, *f.opts.Bounds))
			return
		}
		if f.start == f.goal {
			f.succeed(ctx, Path{f.start})
			return
		}
	}

	if limit := f.opts.MaxExpansions; limit > 0 && req.expanded >= limit {
		f.fail(ctx, outcomeExpansionLimit, fmt.Errorf("%w: %d expansions towards %s",
			ErrExpansionLimit, req.expanded, f.goal.Position))
		return
	}

	cur, err := f.frontier.Pop()
	if err != nil {
		f.fail(ctx, outcomeUnreachable, fmt.Errorf("%w: %s -> %s after %d expansions",
			ErrUnreachable, f.start.Position, f.goal.Position, req.expanded))
		return
	}
	if _, done := f.explored[cur.Position]; done {
		// Decrease-key keeps nodes unique in the frontier; nothing to redo.
		return
	}
	if f.opts.Strict && !cur.Reached() {
		f.violate(ctx, "popped %s with unbounded cost", cur.Position)
		return
	}

	f.explored[cur.Position] = struct{}{}
	f.store.Expand(cur)
	req.expanded++
	if h := f.opts.Hooks.OnExpand; h != nil {
		h(cur)
	}

	f.relax(cur)

	if f.frontier.Contains(f.goal) {
		f.phase = phaseBacktrack
		f.cursor = f.goal
		f.trail = append(f.trail[:0], f.goal)
	}
}

// relax classifies every neighbour of cur and lowers its cost when going
// through cur is cheaper. Explored and Blocked neighbours are skipped.
func (f *Finder) relax(cur *gridgraph.Node) {
	hooks := f.opts.Hooks
	for _, nb := range cur.Neighbors {
		if _, done := f.explored[nb.Position]; done {
			continue
		}
		if !f.inBounds(nb.Position) {
			nb.Type = gridgraph.Blocked
			continue
		}
		nb.Type = f.cls.Classify(nb.Position)
		if !nb.Type.Traversable() {
			continue
		}

		g := gridgraph.Distance(cur.Position, nb.Position) + cur.DistanceTraveled + cur.Type.Weight()
		queued := f.frontier.Contains(nb)
		if g < nb.DistanceTraveled {
			nb.SetPrevious(cur)
			nb.DistanceTraveled = g
			nb.Priority = g + gridgraph.Distance(nb.Position, f.goal.Position)
			if hooks.OnRelax != nil {
				hooks.OnRelax(cur, nb)
			}
			if queued {
				f.frontier.Update(nb)
			}
		}
		if !queued {
			f.frontier.Push(nb)
			if hooks.OnEnqueue != nil {
				hooks.OnEnqueue(nb)
			}
		}
	}
}

// backtrackTurn follows one back-link from the cursor towards the start.
// The success callback fires on the turn the start is reached.
func (f *Finder) backtrackTurn(ctx context.Context) {
	at, ok := f.cursor.Previous()
	if !ok {
		f.violate(ctx, "back-link chain ends at %s, not at %s", f.cursor.Position, f.start.Position)
		return
	}
	prev, known := f.store.Lookup(at)
	if !known {
		f.violate(ctx, "back-link from %s to unknown cell %s", f.cursor.Position, at)
		return
	}
	if len(f.trail) >= f.store.Len() {
		f.violate(ctx, "back-link loop through %s", prev.Position)
		return
	}

	f.trail = append(f.trail, prev)
	f.cursor = prev
	if _, more := prev.Previous(); more {
		return
	}
	if prev != f.start {
		f.violate(ctx, "back-link chain ends at %s, not at %s", prev.Position, f.start.Position)
		return
	}

	path := make(Path, len(f.trail))
	copy(path, f.trail)
	slices.Reverse(path)
	f.succeed(ctx, path)
}

// violate reports a broken internal invariant: a panic under
// WithStrictInvariants, an ErrInvalidState failure otherwise.
func (f *Finder) violate(ctx context.Context, format string, args ...any) {
	err := fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
	if f.opts.Strict {
		panic(err)
	}
	f.req.log.Error("search invariant violated", slog.String("error", err.Error()))
	f.fail(ctx, outcomeInvalidState, err)
}
