// Package tilepath is an incremental, resumable A* pathfinder for agents on
// 8-connected tile maps, built to be driven one turn at a time by a
// simulation host.
//
// 🚀 What is tilepath?
//
//	A small stack of packages that together answer "how does this agent get
//	from here to there" without ever blocking the host for a whole search:
//		• gridgraph  – coordinates, octile distance, lazily materialized nodes
//		• terrain    – passability + door policy → node cost classes, ASCII maps
//		• frontier   – min-priority queue with decrease-key and FIFO ties
//		• pathfinder – the Finder state machine: FindPath, then Step per turn
//		• schedule   – host loop pacing any number of Finders with x/time/rate
//		• dijkstra   – exhaustive oracle over the same cost model
//		• builder    – deterministic terrain fixtures for tests and benchmarks
//		• config, telemetry, cmd/tilepath – YAML config, otel + slog, the CLI
//
// Turn model:
//
//	FindPath(start, goal, onFound, onFailed)   // resets, returns a Ticket
//	Step(ctx)                                  // start yield, no work
//	Step(ctx) ... Step(ctx)                    // one expansion per turn
//	Step(ctx) ... Step(ctx)                    // one back-link per turn
//	                                           // → onFound(path) / onFailed(err)
//
// A new FindPath supersedes the request in flight; its callbacks never fire.
//
// Quick ASCII example:
//
//	S..#....        S..#....
//	...#.##.   →    .*.#.##.
//	.......G        ..*****G
//
// Cost of a move is the octile distance (1 straight, 1.4 diagonal) plus the
// cost class of the cell being left: Open 0, Door 2.
//
//	go install github.com/katalvlaran/tilepath/cmd/tilepath@latest
package tilepath
