// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// impl_scatter.go - implementation of Scatter(density) constructor.
//
// Canonical model:
//   • Each cell independently becomes a wall with probability density.
//   • Only open floor is converted; doors, objects and walls are left alone.
//
// Contract:
//   • 0 ≤ density ≤ 1 (else ErrInvalidProbability).
//   • cfg.rng must be non-nil (else ErrNeedRandSource), even for density ∈ {0,1}.
//
// Determinism:
//   • One draw per cell in row-major order, whatever the cell holds, so the
//     outcome for a given seed does not depend on earlier constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

const methodScatter = "Scatter"

// Scatter returns a Constructor that sprinkles random walls over open floor.
// Complexity: O(width·height) Bernoulli trials.
func Scatter(density float64) Constructor {
	return func(m *terrain.GridMap, cfg builderConfig) error {
		if err := validateProbability(methodScatter, density); err != nil {
			return err
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodScatter, ErrNeedRandSource)
		}

		b := m.Bounds()
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for x := b.Min.X; x <= b.Max.X; x++ {
				hit := cfg.rng.Float64() < density
				c := gridgraph.Coord{X: x, Y: y}
				if cell, _ := m.At(c); hit && cell == terrain.CellOpen {
					_ = m.Set(c, terrain.CellWall)
				}
			}
		}

		return nil
	}
}
