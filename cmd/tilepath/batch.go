package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/schedule"
)

var (
	errNoAgents     = errors.New("no agents configured")
	errAgentsFailed = errors.New("some agents found no path")
)

// agentResult is the outcome of one agent's request.
type agentResult struct {
	name  string
	path  pathfinder.Path
	err   error
	turns int
}

func newBatchCmd(a *app) *cobra.Command {
	var parallel bool
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every configured agent against one map",
		Long: `Batch gives each agent of the configuration its own Finder over the
shared map.

By default all Finders are stepped by one host loop, one turn each per
tick, honouring loop.turn_rate. With --parallel every agent runs unpaced
on its own goroutine.

Example config:
  map:
    path: level.txt
  agents:
    - name: scout
      start: {x: 0, y: 0}
      goal: {x: 12, y: 7}`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			return a.batch(cmd, parallel)
		}),
	}
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run agents concurrently instead of on one loop")
	return cmd
}

func (a *app) batch(cmd *cobra.Command, parallel bool) error {
	agents := a.cfg.Agents
	if len(agents) == 0 {
		return errNoAgents
	}
	m, _, err := a.cfg.LoadMap()
	if err != nil {
		return err
	}
	cls, err := a.classifier(m)
	if err != nil {
		return err
	}

	results := make([]agentResult, len(agents))
	if parallel {
		err = a.batchParallel(cmd.Context(), cls, m.Bounds(), agents, results)
	} else {
		err = a.batchShared(cmd.Context(), cls, m.Bounds(), agents, results)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(out, "%s: failed after %d turns: %v\n", r.name, r.turns, r.err)
			continue
		}
		fmt.Fprintf(out, "%s: cost=%.1f turns=%d path=%s\n", r.name, r.path.Cost(), r.turns, r.path)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errAgentsFailed, failed, len(agents))
	}
	return nil
}

// batchShared steps all Finders from a single host loop. Requests are posted
// so they are issued on the loop's own goroutine.
func (a *app) batchShared(ctx context.Context, cls pathfinder.Classifier, bounds gridgraph.Rect,
	agents []config.AgentConfig, results []agentResult) error {
	loop := a.newLoop()
	for i, ag := range agents {
		ag := ag
		f, err := a.newFinder(cls, bounds, ag.Name)
		if err != nil {
			return err
		}
		res := &results[i]
		res.name = ag.Name
		loop.Add(f)
		loop.Post(func() {
			f.FindPath(ag.Start, ag.Goal,
				func(p pathfinder.Path) { res.path, res.turns = p, loop.Turns()+1 },
				func(err error) { res.err, res.turns = err, loop.Turns()+1 },
			)
		})
	}

	if _, err := loop.RunUntilIdle(ctx); err != nil {
		return fmt.Errorf("batch loop: %w", err)
	}
	return nil
}

// batchParallel drives every Finder on its own goroutine.
func (a *app) batchParallel(ctx context.Context, cls pathfinder.Classifier, bounds gridgraph.Rect,
	agents []config.AgentConfig, results []agentResult) error {
	g, gCtx := errgroup.WithContext(ctx)
	for i, ag := range agents {
		i, ag := i, ag
		g.Go(func() error {
			f, err := a.newFinder(cls, bounds, ag.Name)
			if err != nil {
				return err
			}
			res := &results[i]
			res.name = ag.Name
			f.FindPath(ag.Start, ag.Goal,
				func(p pathfinder.Path) { res.path = p },
				func(err error) { res.err = err },
			)
			n, err := schedule.RunUntilIdle(gCtx, f, a.cfg.Loop.MaxTurns)
			res.turns = n
			if err != nil {
				return fmt.Errorf("agent %s: %w", ag.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
