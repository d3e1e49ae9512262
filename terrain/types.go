package terrain

import (
	"errors"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Sentinel errors for terrain operations.
var (
	// ErrNilMap indicates a Classifier was requested without a Map.
	ErrNilMap = errors.New("terrain: map is nil")
	// ErrEmptyGrid indicates the input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("terrain: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("terrain: all rows must have the same length")
	// ErrUnknownCell indicates a cell code or glyph with no meaning.
	ErrUnknownCell = errors.New("terrain: unknown cell")
	// ErrOutOfRange indicates a coordinate outside the grid.
	ErrOutOfRange = errors.New("terrain: coordinate outside grid")
)

// Map is the spatial query service a search consults. Implementations must be
// side-effect free; answers may change between calls when the world changes.
type Map interface {
	// IsPassable reports whether the cell's floor can be walked on.
	IsPassable(c gridgraph.Coord) bool
	// FirstBlockingObject returns the first object on the cell that blocks movement.
	FirstBlockingObject(c gridgraph.Coord) (Object, bool)
}

// Object is anything placed on a cell that can block movement.
type Object interface {
	Kind() ObjectKind
}

// ObjectKind distinguishes doors from every other blocking object.
// An ObjectKind is itself an Object, which is enough for maps that carry no
// richer entity handles.
type ObjectKind int

const (
	// ObjectSolid blocks movement unconditionally.
	ObjectSolid ObjectKind = iota + 1
	// ObjectDoor blocks movement unless the door policy lets agents through.
	ObjectDoor
)

// Kind implements Object.
func (k ObjectKind) Kind() ObjectKind { return k }

func (k ObjectKind) String() string {
	switch k {
	case ObjectSolid:
		return "solid"
	case ObjectDoor:
		return "door"
	default:
		return "unknown"
	}
}

// DoorPolicy decides how door cells classify.
type DoorPolicy int

const (
	// DoorsBlocked classifies every door as Blocked.
	DoorsBlocked DoorPolicy = iota
	// DoorsTraversable classifies doors as gridgraph.Door.
	DoorsTraversable
)

func (p DoorPolicy) String() string {
	if p == DoorsTraversable {
		return "traversable"
	}
	return "blocked"
}

// Cell is the content of one GridMap tile.
type Cell int

const (
	// CellOpen is walkable floor.
	CellOpen Cell = iota
	// CellWall is impassable floor.
	CellWall
	// CellDoor is impassable floor holding a door object.
	CellDoor
	// CellObject is walkable floor holding a solid object.
	CellObject
)

// glyphs maps cells to their ASCII form; index is the Cell value.
var glyphs = [...]byte{'.', '#', 'D', 'o'}

// Glyph returns the ASCII character for c.
func (c Cell) Glyph() byte {
	if c < 0 || int(c) >= len(glyphs) {
		return '?'
	}
	return glyphs[c]
}

// MapFunc adapts plain functions to Map. A nil Passable treats every cell as
// passable; a nil Object reports no objects.
type MapFunc struct {
	Passable func(c gridgraph.Coord) bool
	Object   func(c gridgraph.Coord) (Object, bool)
}

// IsPassable implements Map.
func (f MapFunc) IsPassable(c gridgraph.Coord) bool {
	if f.Passable == nil {
		return true
	}
	return f.Passable(c)
}

// FirstBlockingObject implements Map.
func (f MapFunc) FirstBlockingObject(c gridgraph.Coord) (Object, bool) {
	if f.Object == nil {
		return nil, false
	}
	return f.Object(c)
}
