package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tilepath/builder"
	"github.com/katalvlaran/tilepath/dijkstra"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/schedule"
	"github.com/katalvlaran/tilepath/terrain"
)

const costEpsilon = 1e-9

var (
	errMismatch  = errors.New("finder disagrees with oracle")
	errBadVerify = errors.New("invalid verify flags")
)

type verifyFlags struct {
	seeds   int
	first   int64
	width   int
	height  int
	density float64
	workers int
}

func newVerifyCmd(a *app) *cobra.Command {
	f := &verifyFlags{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare Finder routes against the Dijkstra oracle on random maps",
		Long: `Verify builds seeded random maps, asks a Finder for a route from the
top-left to the bottom-right corner, and checks its cost against an
exhaustive Dijkstra search over the same terrain.

Doors are always blocked here so that every cell costs the same to
leave; under that cost model the first route to reach the goal is
optimal and the two must agree exactly.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			return a.verify(cmd, f)
		}),
	}
	cmd.Flags().IntVar(&f.seeds, "seeds", 50, "number of maps")
	cmd.Flags().Int64Var(&f.first, "first-seed", 1, "seed of the first map")
	cmd.Flags().IntVar(&f.width, "width", 32, "map width")
	cmd.Flags().IntVar(&f.height, "height", 24, "map height")
	cmd.Flags().Float64Var(&f.density, "density", 0.3, "wall probability per cell")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "maps checked concurrently")
	return cmd
}

func (a *app) verify(cmd *cobra.Command, f *verifyFlags) error {
	if f.seeds < 1 || f.workers < 1 {
		return fmt.Errorf("%w: seeds and workers must be >= 1", errBadVerify)
	}

	var reachable, unreachable atomic.Int64
	g, gCtx := errgroup.WithContext(cmd.Context())
	g.SetLimit(f.workers)
	for i := 0; i < f.seeds; i++ {
		seed := f.first + int64(i)
		g.Go(func() error {
			ok, err := a.verifySeed(gCtx, f, seed)
			if err != nil {
				return err
			}
			if ok {
				reachable.Add(1)
			} else {
				unreachable.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "verified %d maps (%dx%d, density %.2f): %d reachable, %d unreachable\n",
		f.seeds, f.width, f.height, f.density, reachable.Load(), unreachable.Load())
	return nil
}

// verifySeed checks one map and reports whether the goal was reachable.
func (a *app) verifySeed(ctx context.Context, f *verifyFlags, seed int64) (bool, error) {
	start := gridgraph.Coord{}
	goal := gridgraph.Coord{X: f.width - 1, Y: f.height - 1}
	m, err := builder.BuildMap(f.width, f.height,
		[]builder.Option{builder.WithSeed(seed)},
		builder.Scatter(f.density),
		builder.Clear(start),
		builder.Clear(goal),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errBadVerify, err)
	}
	cls, err := terrain.NewClassifier(m)
	if err != nil {
		return false, err
	}
	finder, err := a.newFinder(cls, m.Bounds(), fmt.Sprintf("seed-%d", seed))
	if err != nil {
		return false, err
	}

	var (
		path    pathfinder.Path
		failure error
	)
	finder.FindPath(start, goal,
		func(p pathfinder.Path) { path = p },
		func(err error) { failure = err },
	)
	if _, err = schedule.RunUntilIdle(ctx, finder, a.cfg.Loop.MaxTurns); err != nil {
		return false, fmt.Errorf("seed %d: %w", seed, err)
	}
	want, ok, err := dijkstra.Distance(cls, start, goal, dijkstra.WithBounds(m.Bounds()))
	if err != nil {
		return false, fmt.Errorf("seed %d: oracle: %w", seed, err)
	}

	switch {
	case !ok && errors.Is(failure, pathfinder.ErrUnreachable):
		return false, nil
	case ok && failure == nil && math.Abs(path.Cost()-want) < costEpsilon:
		return true, nil
	}
	return false, fmt.Errorf("%w: seed %d: finder cost=%.4f err=%v, oracle cost=%.4f reachable=%t",
		errMismatch, seed, path.Cost(), failure, want, ok)
}
