// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// impl_cells.go - single-cell constructors: Door, Object, Clear.
//
// Contract:
//   • The coordinate must be on the map (else ErrOutOfRange).
//   • The previous cell content is overwritten.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

const (
	methodDoor   = "Door"
	methodObject = "Object"
	methodClear  = "Clear"
)

// Door returns a Constructor that places a door at c.
func Door(c gridgraph.Coord) Constructor {
	return setCell(methodDoor, c, terrain.CellDoor)
}

// Object returns a Constructor that places a solid object on the floor at c.
func Object(c gridgraph.Coord) Constructor {
	return setCell(methodObject, c, terrain.CellObject)
}

// Clear returns a Constructor that resets c to open floor. Useful after
// Scatter to keep start and goal cells free.
func Clear(c gridgraph.Coord) Constructor {
	return setCell(methodClear, c, terrain.CellOpen)
}

func setCell(method string, c gridgraph.Coord, cell terrain.Cell) Constructor {
	return func(m *terrain.GridMap, _ builderConfig) error {
		if err := validateInside(method, m, c); err != nil {
			return err
		}
		if err := m.Set(c, cell); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}

		return nil
	}
}
