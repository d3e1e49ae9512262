package terrain

import (
	"github.com/katalvlaran/tilepath/gridgraph"
)

// Classifier turns Map answers into traversal cost classes.
// It keeps no cache: every call asks the Map again, so terrain changes made
// between calls are always seen.
type Classifier struct {
	m     Map
	doors DoorPolicy
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithDoorPolicy selects how door objects classify. Default: DoorsBlocked.
func WithDoorPolicy(p DoorPolicy) ClassifierOption {
	if p != DoorsBlocked && p != DoorsTraversable {
		panic("terrain: WithDoorPolicy(unknown policy)")
	}
	return func(c *Classifier) {
		c.doors = p
	}
}

// NewClassifier wraps m. Returns ErrNilMap when m is nil.
func NewClassifier(m Map, opts ...ClassifierOption) (*Classifier, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	c := &Classifier{m: m, doors: DoorsBlocked}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Doors returns the active door policy.
func (c *Classifier) Doors() DoorPolicy { return c.doors }

// Map returns the underlying spatial service.
func (c *Classifier) Map() Map { return c.m }

// Classify reports the cost class of pos.
// Complexity: one IsPassable call, plus one FirstBlockingObject call unless
// the cell is impassable while doors are blocked.
func (c *Classifier) Classify(pos gridgraph.Coord) gridgraph.NodeType {
	passable := c.m.IsPassable(pos)
	if !passable && c.doors == DoorsBlocked {
		return gridgraph.Blocked
	}
	obj, found := c.m.FirstBlockingObject(pos)
	if found && obj != nil && obj.Kind() == ObjectDoor {
		return c.doorType()
	}
	if !passable || found {
		return gridgraph.Blocked
	}

	return gridgraph.Open
}

// doorType is the single override point for door traversal.
func (c *Classifier) doorType() gridgraph.NodeType {
	if c.doors == DoorsTraversable {
		return gridgraph.Door
	}
	return gridgraph.Blocked
}
