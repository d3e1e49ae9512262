// Package terrain answers "what does it cost to stand here?" for grid searches.
//
// What:
//
//   - Map is the host's spatial query service: passability of a cell and the
//     first blocking object on it.
//   - Classifier maps those two answers onto a gridgraph.NodeType.
//   - GridMap is an in-memory Map backed by a rectangular cell grid, loadable
//     from integer codes or ASCII art.
//   - Regions and Connected group traversable cells into 8-connected islands.
//
// Classification:
//
//   - impassable cell                       → Blocked
//   - passable cell with a blocking object  → Blocked
//   - otherwise                             → Open
//
// Doors are the exception to both Blocked rules: under DoorsTraversable a door
// object yields Door. The default policy, DoorsBlocked, keeps them closed to
// agents that cannot operate doors.
//
// ASCII legend (ParseASCII, GridMap.String):
//
//	.  open        #  wall        D  door        o  solid object
//	S  open, start marker         G  open, goal marker
//
// Row r of the text is y = r; column c is x = c.
//
// Errors:
//
//   - ErrNilMap:         NewClassifier without a Map.
//   - ErrEmptyGrid:      input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrUnknownCell:    an integer code or character has no Cell meaning.
//   - ErrOutOfRange:     Set outside the grid.
package terrain
