package terrain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// GridMap is an in-memory Map over a rectangular block of cells anchored at
// Origin. Everything outside the block is impassable.
// A GridMap is not safe for concurrent mutation; concurrent reads are fine.
type GridMap struct {
	origin        gridgraph.Coord
	width, height int
	cells         []Cell // row-major: cells[y*width+x], relative to origin
}

// Markers carries the optional S/G positions found by ParseASCII.
type Markers struct {
	Start, Goal       gridgraph.Coord
	HasStart, HasGoal bool
}

// NewGridMap builds a GridMap from a non-empty, rectangular cell block whose
// top-left cell sits at origin. The input is deep-copied.
// Returns ErrEmptyGrid or ErrNonRectangular on malformed input.
// Complexity: O(W×H) time and memory.
func NewGridMap(rows [][]Cell, origin gridgraph.Coord) (*GridMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([]Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rows[y][x] < CellOpen || rows[y][x] > CellObject {
				return nil, fmt.Errorf("%w: code %d at (%d,%d)", ErrUnknownCell, rows[y][x], x, y)
			}
			cells = append(cells, rows[y][x])
		}
	}

	return &GridMap{origin: origin, width: w, height: h, cells: cells}, nil
}

// NewEmptyGridMap returns a width×height all-open GridMap at origin.
func NewEmptyGridMap(width, height int, origin gridgraph.Coord) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	return &GridMap{origin: origin, width: width, height: height, cells: make([]Cell, width*height)}, nil
}

// From2D builds a GridMap at (0,0) from integer cell codes
// (0 open, 1 wall, 2 door, 3 object).
func From2D(values [][]int) (*GridMap, error) {
	rows := make([][]Cell, len(values))
	for y, row := range values {
		rows[y] = make([]Cell, len(row))
		for x, v := range row {
			rows[y][x] = Cell(v)
		}
	}
	return NewGridMap(rows, gridgraph.Coord{})
}

// ParseASCII reads a map drawn with the package legend. Blank trailing lines
// and carriage returns are ignored. S and G mark open cells and are reported
// through Markers.
func ParseASCII(r io.Reader) (*GridMap, Markers, error) {
	var (
		rows    [][]Cell
		markers Markers
	)
	sc := bufio.NewScanner(r)
	for y := 0; sc.Scan(); y++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			y--
			continue
		}
		row := make([]Cell, 0, len(line))
		for x := 0; x < len(line); x++ {
			switch ch := line[x]; ch {
			case '.':
				row = append(row, CellOpen)
			case '#':
				row = append(row, CellWall)
			case 'D':
				row = append(row, CellDoor)
			case 'o':
				row = append(row, CellObject)
			case 'S':
				markers.Start, markers.HasStart = gridgraph.Coord{X: x, Y: y}, true
				row = append(row, CellOpen)
			case 'G':
				markers.Goal, markers.HasGoal = gridgraph.Coord{X: x, Y: y}, true
				row = append(row, CellOpen)
			default:
				return nil, Markers{}, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownCell, ch, x, y)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, Markers{}, fmt.Errorf("terrain: read map: %w", err)
	}
	m, err := NewGridMap(rows, gridgraph.Coord{})
	if err != nil {
		return nil, Markers{}, err
	}

	return m, markers, nil
}

// Bounds returns the inclusive rectangle covered by the grid.
func (m *GridMap) Bounds() gridgraph.Rect {
	return gridgraph.Rect{
		Min: m.origin,
		Max: gridgraph.Coord{X: m.origin.X + m.width - 1, Y: m.origin.Y + m.height - 1},
	}
}

// index maps c to its row-major slot, or -1 outside the grid.
// Complexity: O(1).
func (m *GridMap) index(c gridgraph.Coord) int {
	x, y := c.X-m.origin.X, c.Y-m.origin.Y
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return -1
	}
	return y*m.width + x
}

// At returns the cell at c; false outside the grid.
func (m *GridMap) At(c gridgraph.Coord) (Cell, bool) {
	i := m.index(c)
	if i < 0 {
		return CellWall, false
	}
	return m.cells[i], true
}

// Set replaces the cell at c. Returns ErrOutOfRange outside the grid.
func (m *GridMap) Set(c gridgraph.Coord, cell Cell) error {
	if cell < CellOpen || cell > CellObject {
		return fmt.Errorf("%w: code %d", ErrUnknownCell, cell)
	}
	i := m.index(c)
	if i < 0 {
		return fmt.Errorf("%w: %s not in %s", ErrOutOfRange, c, m.Bounds())
	}
	m.cells[i] = cell

	return nil
}

// IsPassable implements Map: open and object-holding floor is walkable.
func (m *GridMap) IsPassable(c gridgraph.Coord) bool {
	cell, ok := m.At(c)
	return ok && (cell == CellOpen || cell == CellObject)
}

// FirstBlockingObject implements Map.
func (m *GridMap) FirstBlockingObject(c gridgraph.Coord) (Object, bool) {
	cell, ok := m.At(c)
	if !ok {
		return nil, false
	}
	switch cell {
	case CellDoor:
		return ObjectDoor, true
	case CellObject:
		return ObjectSolid, true
	default:
		return nil, false
	}
}

// Count returns how many cells hold the given content.
func (m *GridMap) Count(cell Cell) int {
	n := 0
	for _, c := range m.cells {
		if c == cell {
			n++
		}
	}
	return n
}

// String renders the grid with the ASCII legend, one row per line.
func (m *GridMap) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			sb.WriteByte(m.cells[y*m.width+x].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
