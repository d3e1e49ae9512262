// Package pathfinder runs incremental A* searches on a tile grid for one agent.
//
// A Finder is a resumable state machine. FindPath registers a request and
// moves the Finder from Idle to Searching; the host then calls Step once per
// scheduling turn (frame, tick, event-loop pass) until Step returns false.
// Exactly one of the request's callbacks fires, on the turn the outcome is
// known, after the Finder is back to Idle.
//
// Turns:
//
//   - 1 turn right after the request, doing no work (start yield).
//   - 1 turn per expansion: pop the cheapest frontier node, materialize its
//     8 neighbours, classify and relax them.
//   - 1 turn per reconstructed path step once the goal has entered the
//     frontier; the callback fires on the turn that reaches the start.
//
// Cost model:
//
//	step(u→v) = Distance(u, v) + u.Type.Weight()
//	priority  = g(v) + Distance(v, goal)
//
// The class weight charged is the one of the node being left, not the one
// being entered. Blocked neighbours are never relaxed or queued.
//
// Cancellation:
//
//	A new FindPath (or Cancel) supersedes the in-flight request. Its state is
//	discarded on the spot and its callbacks never fire; Check reports
//	ErrStaleRequest for the old Ticket.
//
// Errors delivered to FailedFunc:
//
//   - ErrUnreachable:    the frontier ran dry before the goal was queued.
//   - ErrOutOfBounds:    start or goal lies outside WithBounds.
//   - ErrExpansionLimit: WithMaxExpansions was exhausted.
//   - ErrInvalidState:   a broken back-link chain (panics under WithStrictInvariants).
//
// A Finder is single-threaded: FindPath, Step and Cancel must be called from
// the goroutine that drives it. Status may be read from anywhere.
package pathfinder
