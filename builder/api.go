// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// api.go - thin public entry-point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildMap(width, height, opts, cons...). Creates an
//     all-open GridMap, resolves cfg, runs cons in order.
//   - Functional options (Option) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical maps.
//   - Constructors never panic; they return sentinel errors wrapped with context.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tilepath/terrain"
)

// Constructor applies a deterministic terrain mutation using the resolved
// builderConfig. Constructors validate their parameters before touching m.
type Constructor func(m *terrain.GridMap, cfg builderConfig) error

// BuildMap creates a width×height all-open GridMap anchored at the configured
// origin and applies all constructors in order. Any constructor error is
// wrapped with the context "BuildMap: %w" and returned immediately.
//
// Complexity:
//   - Allocation: O(width·height).
//   - Applying K constructors: Σ cost of each constructor.
//
// Errors:
//   - ErrBadDimensions when width or height is below 1.
//   - Constructor errors, checked with errors.Is against builder sentinels.
func BuildMap(width, height int, opts []Option, cons ...Constructor) (*terrain.GridMap, error) {
	if width < minDim || height < minDim {
		return nil, fmt.Errorf("BuildMap: %dx%d (each must be ≥ %d): %w",
			width, height, minDim, ErrBadDimensions)
	}

	cfg := newBuilderConfig(opts...)
	m, err := terrain.NewEmptyGridMap(width, height, cfg.origin)
	if err != nil {
		return nil, fmt.Errorf("BuildMap: %w", err)
	}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildMap: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err = fn(m, cfg); err != nil {
			return nil, fmt.Errorf("BuildMap: %w", err)
		}
	}

	return m, nil
}
