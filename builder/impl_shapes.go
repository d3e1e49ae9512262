// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// impl_shapes.go - wall-drawing constructors: Border, Wall, Ring.
//
// Contract:
//   • Shapes only ever write CellWall; they never clear cells.
//   • Wall endpoints must be on the map (ErrOutOfRange); Border and Ring
//     clip to the map instead.
//
// Determinism:
//   • Cells are written in a fixed order; repeated runs produce the same map.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

const (
	methodBorder = "Border"
	methodWall   = "Wall"
	methodRing   = "Ring"
)

// Border returns a Constructor that walls off the outermost rows and columns.
// Complexity: O(width + height).
func Border() Constructor {
	return func(m *terrain.GridMap, _ builderConfig) error {
		b := m.Bounds()
		for x := b.Min.X; x <= b.Max.X; x++ {
			_ = m.Set(gridgraph.Coord{X: x, Y: b.Min.Y}, terrain.CellWall)
			_ = m.Set(gridgraph.Coord{X: x, Y: b.Max.Y}, terrain.CellWall)
		}
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			_ = m.Set(gridgraph.Coord{X: b.Min.X, Y: y}, terrain.CellWall)
			_ = m.Set(gridgraph.Coord{X: b.Max.X, Y: y}, terrain.CellWall)
		}

		return nil
	}
}

// Wall returns a Constructor that draws a wall line from one cell to another,
// both inclusive, using Bresenham's algorithm. Horizontal and vertical walls
// are sealed; any diagonal step leaves a corner gap that 8-connected movers
// can cross.
// Complexity: O(max(|dx|,|dy|)).
func Wall(from, to gridgraph.Coord) Constructor {
	return func(m *terrain.GridMap, _ builderConfig) error {
		if err := validateInside(methodWall, m, from, to); err != nil {
			return err
		}
		for _, c := range line(from, to) {
			if err := m.Set(c, terrain.CellWall); err != nil {
				return fmt.Errorf("%s: %w", methodWall, err)
			}
		}

		return nil
	}
}

// Ring returns a Constructor that draws the square of cells at Chebyshev
// distance radius around center. The enclosed cells are untouched, so a ring
// seals them off from 8-connected movers. Cells off the map are skipped.
// Complexity: O(radius).
func Ring(center gridgraph.Coord, radius int) Constructor {
	return func(m *terrain.GridMap, _ builderConfig) error {
		if radius < minDim {
			return fmt.Errorf("%s: radius=%d < min=%d: %w", methodRing, radius, minDim, ErrBadDimensions)
		}
		for d := -radius; d <= radius; d++ {
			_ = m.Set(gridgraph.Coord{X: center.X + d, Y: center.Y - radius}, terrain.CellWall)
			_ = m.Set(gridgraph.Coord{X: center.X + d, Y: center.Y + radius}, terrain.CellWall)
			_ = m.Set(gridgraph.Coord{X: center.X - radius, Y: center.Y + d}, terrain.CellWall)
			_ = m.Set(gridgraph.Coord{X: center.X + radius, Y: center.Y + d}, terrain.CellWall)
		}

		return nil
	}
}

// line returns the Bresenham cells from a to b, both inclusive.
func line(a, b gridgraph.Coord) []gridgraph.Coord {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy

	out := make([]gridgraph.Coord, 0, max(dx, -dy)+1)
	for c := a; ; {
		out = append(out, c)
		if c == b {
			return out
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c.X += sx
		}
		if e2 <= dx {
			e += dx
			c.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
