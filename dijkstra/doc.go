// Package dijkstra computes exact single-source costs on a tile grid with the
// same cost model as the pathfinder package, so the two can be compared.
//
// Overview:
//
//   - Cells are visited 8-connected in gridgraph.Offsets order.
//   - Entering v from u costs gridgraph.Distance(u, v) plus the class weight
//     of u; the source itself weighs 0.
//   - Blocked cells are never entered; every cell is classified once per run.
//
// When to use:
//
//   - As a verification oracle for incremental A* results.
//   - For cost fields ("distance from here to everywhere") on small maps.
//
// Complexity:
//
//   - Time:  O(C log C) for C cells inside the bounds or distance cap.
//   - Space: O(C) for distance, predecessor and classification maps, plus
//     up to 8·C heap entries under lazy decrease-key.
//
// Errors (sentinel):
//
//   - ErrNilClassifier:     the classifier is nil.
//   - ErrUnbounded:         neither WithBounds nor WithMaxDistance was set.
//   - ErrSourceOutOfBounds: the source lies outside WithBounds.
//   - ErrBadMaxDistance:    WithMaxDistance got a negative or NaN value (panics).
//
// Example usage:
//
//	dist, prev, err := dijkstra.Costs(cls, gridgraph.Coord{},
//	    dijkstra.WithBounds(m.Bounds()),
//	    dijkstra.WithReturnPath(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(dist[gridgraph.Coord{X: 4, Y: 4}], prev[gridgraph.Coord{X: 4, Y: 4}])
package dijkstra
