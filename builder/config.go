// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng    = nil      (stochastic constructors require WithSeed/WithRand)
//   • origin = (0,0)    (top-left cell of the map)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// minDim is the smallest accepted map side and ring radius.
const minDim = 1

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Coordinate of the map's top-left cell.
	origin gridgraph.Coord
}

// newBuilderConfig applies all options in order over the defaults.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...Option) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
