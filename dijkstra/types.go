// Package dijkstra defines the options and errors of the exhaustive
// uniform-cost search over a tile grid.
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Sentinel errors returned by Costs and Distance.
var (
	// ErrNilClassifier indicates that a nil Classifier was passed.
	ErrNilClassifier = errors.New("dijkstra: classifier is nil")

	// ErrUnbounded indicates that neither WithBounds nor WithMaxDistance was
	// given, so the search could run forever on an infinite terrain.
	ErrUnbounded = errors.New("dijkstra: search needs bounds or a distance cap")

	// ErrSourceOutOfBounds indicates a source cell outside WithBounds.
	ErrSourceOutOfBounds = errors.New("dijkstra: source outside bounds")

	// ErrBadMaxDistance indicates that MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Classifier reports the traversal cost class of a cell.
type Classifier interface {
	Classify(c gridgraph.Coord) gridgraph.NodeType
}

// Options configures the search.
//
// Bounds      – cells outside are never entered; nil means unbounded.
// MaxDistance – cells whose distance would exceed it are not explored.
// ReturnPath  – if true, Costs also returns the predecessor map.
type Options struct {
	Bounds      *gridgraph.Rect
	MaxDistance float64
	ReturnPath  bool
}

// Option represents a functional option for configuring the search.
type Option func(*Options)

// WithBounds restricts exploration to r. Panics on an empty rectangle.
func WithBounds(r gridgraph.Rect) Option {
	if r.Empty() {
		panic("dijkstra: WithBounds(empty rect)")
	}
	return func(o *Options) {
		o.Bounds = &r
	}
}

// WithMaxDistance sets a distance cap.
// Panics on negative or NaN values with ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithReturnPath enables the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// DefaultOptions returns unbounded options with no distance cap and no
// predecessor map. Costs rejects them with ErrUnbounded unless a bound is set.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.Inf(1),
	}
}
