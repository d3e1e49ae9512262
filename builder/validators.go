// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// validators.go - parameter checks shared by constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

// Probability domain for Scatter.
const (
	probMin = 0.0
	probMax = 1.0
)

// validateInside ensures every coordinate lies on the map.
// Complexity: O(len(cs)).
func validateInside(method string, m *terrain.GridMap, cs ...gridgraph.Coord) error {
	b := m.Bounds()
	for _, c := range cs {
		if !b.Contains(c) {
			return fmt.Errorf("%s: %s not in %s: %w", method, c, b, ErrOutOfRange)
		}
	}

	return nil
}

// validateProbability enforces p ∈ [probMin, probMax].
func validateProbability(method string, p float64) error {
	if !(p >= probMin && p <= probMax) {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			method, p, probMin, probMax, ErrInvalidProbability)
	}

	return nil
}
