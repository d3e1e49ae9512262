package terrain

import (
	"github.com/katalvlaran/tilepath/gridgraph"
)

// Regions finds all 8-connected islands of traversable cells inside bounds,
// as seen by c. Each region lists its cells in discovery order; regions are
// ordered by their first cell in row-major scan.
//
// Time:   O(W·H·8) classifications at most once per cell.
// Memory: O(W·H) for classification cache and output.
func Regions(c *Classifier, bounds gridgraph.Rect) [][]gridgraph.Coord {
	if bounds.Empty() {
		return nil
	}
	w := bounds.Width()
	total := w * bounds.Height()
	index := func(p gridgraph.Coord) int { return (p.Y-bounds.Min.Y)*w + (p.X - bounds.Min.X) }

	// Classification is done once per cell for the whole scan.
	walkable := make([]bool, total)
	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			p := gridgraph.Coord{X: x, Y: y}
			walkable[index(p)] = c.Classify(p).Traversable()
		}
	}

	seen := make([]bool, total)
	var regions [][]gridgraph.Coord
	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			p0 := gridgraph.Coord{X: x, Y: y}
			i0 := index(p0)
			if !walkable[i0] || seen[i0] {
				continue
			}
			// BFS to collect the region
			queue := []gridgraph.Coord{p0}
			seen[i0] = true
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				for _, d := range gridgraph.Offsets {
					v := u.Add(d)
					if !bounds.Contains(v) {
						continue
					}
					vi := index(v)
					if walkable[vi] && !seen[vi] {
						seen[vi] = true
						queue = append(queue, v)
					}
				}
			}
			regions = append(regions, queue)
		}
	}

	return regions
}

// Connected reports whether a and b are both traversable and share a region
// inside bounds. A search's start cell is never classified, so callers that
// mirror search semantics should treat a blocked start specially.
func Connected(c *Classifier, bounds gridgraph.Rect, a, b gridgraph.Coord) bool {
	for _, region := range Regions(c, bounds) {
		var hasA, hasB bool
		for _, p := range region {
			hasA = hasA || p == a
			hasB = hasB || p == b
		}
		if hasA || hasB {
			return hasA && hasB
		}
	}
	return false
}
