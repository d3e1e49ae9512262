package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/terrain"
)

var (
	errBadCoord   = errors.New("coordinate must look like x,y")
	errNoEndpoint = errors.New("missing endpoint")
)

// parseCoord parses "x,y" with optional spaces around either number.
func parseCoord(s string) (gridgraph.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", errBadCoord, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", errBadCoord, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridgraph.Coord{}, fmt.Errorf("%w: %q", errBadCoord, s)
	}
	return gridgraph.Coord{X: x, Y: y}, nil
}

// coordValue is a flag value holding an optional coordinate.
type coordValue struct {
	c   gridgraph.Coord
	set bool
}

func (v *coordValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%d,%d", v.c.X, v.c.Y)
}

func (v *coordValue) Set(s string) error {
	c, err := parseCoord(s)
	if err != nil {
		return err
	}
	v.c, v.set = c, true
	return nil
}

func (v *coordValue) Type() string { return "x,y" }

// endpoint picks the flag value, else the map marker.
func endpoint(v coordValue, marker gridgraph.Coord, hasMarker bool, what string) (gridgraph.Coord, error) {
	switch {
	case v.set:
		return v.c, nil
	case hasMarker:
		return marker, nil
	}
	return gridgraph.Coord{}, fmt.Errorf("%w: no --%s flag and no marker on the map", errNoEndpoint, what)
}

// renderPath draws m with the path on top: S and G at the ends, * between.
func renderPath(m *terrain.GridMap, p pathfinder.Path) string {
	overlay := make(map[gridgraph.Coord]byte, p.Len())
	for _, c := range p.Coords() {
		overlay[c] = '*'
	}
	if p.Len() > 0 {
		overlay[p.Start()] = 'S'
		overlay[p.Goal()] = 'G'
	}

	var sb strings.Builder
	b := m.Bounds()
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			c := gridgraph.Coord{X: x, Y: y}
			if g, ok := overlay[c]; ok {
				sb.WriteByte(g)
				continue
			}
			cell, _ := m.At(c)
			sb.WriteByte(cell.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
