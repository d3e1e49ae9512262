// SPDX-License-Identifier: MIT
// Package: tilepath/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using `%w`.

package builder

import "errors"

// ErrBadDimensions indicates a map side or ring radius below the minimum.
var ErrBadDimensions = errors.New("builder: dimension too small")

// ErrOutOfRange indicates a constructor coordinate outside the map.
var ErrOutOfRange = errors.New("builder: coordinate outside map")

// ErrInvalidProbability indicates that a density is outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a constructor that could not be applied,
// such as a nil Constructor passed to BuildMap.
var ErrConstructFailed = errors.New("builder: construction failed")
