package builder_test

import (
	"fmt"

	"github.com/katalvlaran/tilepath/builder"
	"github.com/katalvlaran/tilepath/gridgraph"
)

// ExampleBuildMap draws a walled room with a door in its dividing wall.
func ExampleBuildMap() {
	m, err := builder.BuildMap(7, 5, nil,
		builder.Border(),
		builder.Wall(gridgraph.Coord{X: 3, Y: 0}, gridgraph.Coord{X: 3, Y: 4}),
		builder.Door(gridgraph.Coord{X: 3, Y: 2}),
		builder.Object(gridgraph.Coord{X: 1, Y: 1}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(m)
	// Output:
	// #######
	// #o.#..#
	// #..D..#
	// #..#..#
	// #######
}
