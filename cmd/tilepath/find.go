package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/pathfinder"
)

type findFlags struct {
	mapPath string
	from    coordValue
	to      coordValue
	render  bool
}

func newFindCmd(a *app) *cobra.Command {
	f := &findFlags{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a path between two cells of a map",
		Long: `Find runs one request on a single Finder driven by the host loop and
prints the route, its cost, and the turns it took.

Endpoints default to the S and G markers of the map.

Examples:
  tilepath find --map level.txt
  tilepath find --map level.txt --from 0,0 --to 12,7
  TILEPATH_DOORS=traversable tilepath find --map level.txt`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			return a.find(cmd, f)
		}),
	}
	cmd.Flags().StringVarP(&f.mapPath, "map", "m", "", "ASCII map file (overrides map.path and map.rows)")
	cmd.Flags().Var(&f.from, "from", "start cell (default: S marker)")
	cmd.Flags().Var(&f.to, "to", "goal cell (default: G marker)")
	cmd.Flags().BoolVar(&f.render, "render", true, "print the map with the route drawn on it")
	return cmd
}

func (a *app) find(cmd *cobra.Command, f *findFlags) error {
	m, markers, err := a.loadMap(f.mapPath)
	if err != nil {
		return err
	}
	start, err := endpoint(f.from, markers.Start, markers.HasStart, "from")
	if err != nil {
		return err
	}
	goal, err := endpoint(f.to, markers.Goal, markers.HasGoal, "to")
	if err != nil {
		return err
	}

	cls, err := a.classifier(m)
	if err != nil {
		return err
	}
	finder, err := a.newFinder(cls, m.Bounds(), "find")
	if err != nil {
		return err
	}
	loop := a.newLoop()
	loop.Add(finder)

	var (
		path    pathfinder.Path
		failure error
	)
	ticket := finder.FindPath(start, goal,
		func(p pathfinder.Path) { path = p },
		func(err error) { failure = err },
	)
	turns, err := loop.RunUntilIdle(cmd.Context())
	if err != nil {
		finder.Cancel()
		return fmt.Errorf("request %s: %w", ticket.ID, err)
	}
	if failure != nil {
		return fmt.Errorf("no path %s -> %s: %w", start, goal, failure)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path: %s\n", path)
	fmt.Fprintf(out, "cost: %.1f steps: %d turns: %d explored: %d\n",
		path.Cost(), path.Len()-1, turns, finder.ExploredCount())
	if f.render {
		fmt.Fprint(out, renderPath(m, path))
	}
	return nil
}
