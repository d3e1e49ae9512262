package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/terrain"
)

func newInspectCmd(a *app) *cobra.Command {
	var mapPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a map: cell counts and connected regions",
		Long: `Inspect prints the size and cell counts of a map, then its 8-connected
traversable regions under the configured door policy. When the map has
both S and G markers it also reports whether they share a region.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			m, markers, err := a.loadMap(mapPath)
			if err != nil {
				return err
			}
			cls, err := a.classifier(m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			b := m.Bounds()
			fmt.Fprintf(out, "size: %dx%d\n", b.Width(), b.Height())
			fmt.Fprintf(out, "cells: open=%d wall=%d door=%d object=%d\n",
				m.Count(terrain.CellOpen), m.Count(terrain.CellWall),
				m.Count(terrain.CellDoor), m.Count(terrain.CellObject))
			fmt.Fprintf(out, "doors: %s\n", cls.Doors())

			regions := terrain.Regions(cls, b)
			fmt.Fprintf(out, "regions: %d\n", len(regions))
			for i, r := range regions {
				fmt.Fprintf(out, "  %d: %d cells from %s\n", i+1, len(r), r[0])
			}
			if markers.HasStart && markers.HasGoal {
				fmt.Fprintf(out, "%s -> %s connected: %t\n",
					markers.Start, markers.Goal, terrain.Connected(cls, b, markers.Start, markers.Goal))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&mapPath, "map", "m", "", "ASCII map file (overrides map.path and map.rows)")
	return cmd
}
