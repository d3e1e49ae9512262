// Package builder assembles deterministic terrain fixtures for tests,
// examples and the CLI's verification runs.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildMap:  allocate an all-open GridMap and apply constructors in order.
//     – Option:    WithSeed, WithRand, WithOrigin.
//   - Shapes (walls only):
//     – Border:    wall off the outermost ring of the map.
//     – Wall:      Bresenham wall line between two cells.
//     – Ring:      square wall ring at a Chebyshev radius, sealing its inside.
//     – Scatter:   seeded random walls over open floor.
//   - Single cells:
//     – Door, Object, Clear.
//
// Guarantees:
//
//   - Determinism: same size, options, seed and constructor order give the same map.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors return wrapped sentinel errors (ErrBadDimensions,
//     ErrOutOfRange, ErrInvalidProbability, ErrNeedRandSource) and never panic.
package builder
