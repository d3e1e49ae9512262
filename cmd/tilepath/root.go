package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/schedule"
	"github.com/katalvlaran/tilepath/telemetry"
	"github.com/katalvlaran/tilepath/terrain"
)

const flushTimeout = 5 * time.Second

// app is the state shared by all subcommands. The root pre-run fills cfg,
// logger and shutdown before any subcommand body runs.
type app struct {
	configPath string
	logLevel   string

	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tilepath",
		Short: "Turn-sliced A* pathfinding on tile maps",
		Long: `tilepath runs incremental A* requests the way a simulation host does:
one bounded turn at a time, driven by a paced loop.

Configuration is read from --config (YAML), then TILEPATH_LOG_LEVEL,
TILEPATH_TURN_RATE and TILEPATH_DOORS, then command-line flags.

Map legend:
  .  open floor      #  wall
  D  door            o  solid object
  S  start marker    G  goal marker`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newFindCmd(a),
		newBatchCmd(a),
		newVerifyCmd(a),
		newInspectCmd(a),
	)
	return root
}

// setup loads and validates configuration, then installs logging and telemetry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err = cfg.ApplyEnv(); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger, err := telemetry.NewLogger(level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TraceExporter:  cfg.Telemetry.Traces,
		MetricExporter: cfg.Telemetry.Metrics,
		Writer:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	a.cfg, a.logger, a.shutdown = cfg, logger, shutdown
	a.logger.Debug("configuration loaded",
		slog.String("config", a.configPath),
		slog.String("doors", cfg.Map.Doors),
		slog.Float64("turn_rate", cfg.Loop.TurnRate),
	)
	return nil
}

// run wraps a subcommand body so telemetry is flushed whether or not it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if a.shutdown == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			defer cancel()
			if serr := a.shutdown(ctx); serr != nil && err == nil {
				err = fmt.Errorf("flush telemetry: %w", serr)
			}
		}()
		return fn(cmd, args)
	}
}

// classifier builds a terrain classifier with the configured door policy.
func (a *app) classifier(m terrain.Map) (*terrain.Classifier, error) {
	policy, err := a.cfg.DoorPolicy()
	if err != nil {
		return nil, err
	}
	return terrain.NewClassifier(m, terrain.WithDoorPolicy(policy))
}

// newFinder builds a Finder confined to bounds with the configured limits.
func (a *app) newFinder(c pathfinder.Classifier, bounds gridgraph.Rect, agent string) (*pathfinder.Finder, error) {
	opts := []pathfinder.Option{
		pathfinder.WithLogger(a.logger.With(
			slog.String("component", "pathfinder"),
			slog.String("agent", agent),
		)),
		pathfinder.WithBounds(bounds),
		pathfinder.WithMaxExpansions(a.cfg.Search.MaxExpansions),
	}
	if a.cfg.Search.Strict {
		opts = append(opts, pathfinder.WithStrictInvariants())
	}
	return pathfinder.New(c, opts...)
}

// newLoop builds a host loop paced by loop.turn_rate and capped by loop.max_turns.
func (a *app) newLoop() *schedule.Loop {
	opts := []schedule.Option{
		schedule.WithLogger(a.logger.With(slog.String("component", "schedule"))),
		schedule.WithMaxTurns(a.cfg.Loop.MaxTurns),
	}
	if a.cfg.Loop.TurnRate > 0 {
		opts = append(opts, schedule.WithRate(a.cfg.Loop.TurnRate, a.cfg.Loop.Burst))
	}
	return schedule.NewLoop(opts...)
}

// loadMap reads the configured map, or path when it is not empty.
func (a *app) loadMap(path string) (*terrain.GridMap, terrain.Markers, error) {
	cfg := a.cfg
	if path != "" {
		cfg.Map.Path, cfg.Map.Rows = path, nil
	}
	return cfg.LoadMap()
}
