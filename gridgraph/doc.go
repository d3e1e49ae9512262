// Package gridgraph treats an unbounded 2D tile grid as a lazily built graph,
// holding the per-search vertex state used by incremental path searches.
//
// What:
//
//   - Coord identifies a tile; a Node is the search vertex for one Coord.
//   - Store materializes Nodes on demand, at most one per Coord.
//   - Expand fills a Node's 8-connected neighbour list exactly once.
//   - Distance is the octile metric shared by edge costs and the heuristic.
//
// Why:
//
//   - Agents in large worlds never need the whole grid; only the cells a
//     search actually touches are allocated.
//   - Back-links between Nodes are coordinate handles resolved through the
//     Store, so the search tree never owns its predecessors.
//
// Complexity:
//
//   - GetOrCreate, Lookup: O(1) average, Memory: O(1) per new node.
//   - Expand:              O(8) once per node.
//   - Backtrack:           O(L) for a path of L nodes.
//
// Errors:
//
//   - ErrBrokenChain: a previous-link points at a coordinate the Store no
//     longer knows, or the chain loops.
package gridgraph
