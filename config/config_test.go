package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

const sample = `
map:
  rows:
    - "S..#"
    - "..D."
    - "...G"
  doors: traversable
search:
  max_expansions: 5000
loop:
  turn_rate: 60
  burst: 2
logging:
  level: debug
  format: json
telemetry:
  traces: stdout
agents:
  - name: scout
    start: {x: 0, y: 0}
    goal: {x: 3, y: 2}
  - name: guard
    start: {x: 3, y: 0}
    goal: {x: 0, y: 2}
`

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilepath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	p, err := cfg.DoorPolicy()
	require.NoError(t, err)
	require.Equal(t, terrain.DoorsBlocked, p)

	_, _, err = cfg.LoadMap()
	require.ErrorIs(t, err, config.ErrNoMap)
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(write(t, sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 5000, cfg.Search.MaxExpansions)
	require.Equal(t, 60.0, cfg.Loop.TurnRate)
	require.Equal(t, 1_000_000, cfg.Loop.MaxTurns, "unset fields keep their defaults")
	require.Equal(t, config.ExporterStdout, cfg.Telemetry.Traces)
	require.Equal(t, config.ExporterNone, cfg.Telemetry.Metrics)
	require.Len(t, cfg.Agents, 2)
	require.Equal(t, gridgraph.Coord{X: 3, Y: 2}, cfg.Agents[0].Goal)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	p, err := cfg.DoorPolicy()
	require.NoError(t, err)
	require.Equal(t, terrain.DoorsTraversable, p)

	m, markers, err := cfg.LoadMap()
	require.NoError(t, err)
	require.Equal(t, gridgraph.Coord{X: 3, Y: 2}, markers.Goal)
	require.Equal(t, 1, m.Count(terrain.CellDoor))
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(write(t, "loop: [not, a, map]\n"))
	require.Error(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadMap_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.txt")
	require.NoError(t, os.WriteFile(path, []byte("S.\n.G\n"), 0o644))

	cfg := config.Default()
	cfg.Map.Path = path
	m, markers, err := cfg.LoadMap()
	require.NoError(t, err)
	require.True(t, markers.HasStart)
	require.Equal(t, 2, m.Bounds().Width())

	cfg.Map.Path = filepath.Join(dir, "nope.txt")
	_, _, err = cfg.LoadMap()
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvTurnRate, "30")
	t.Setenv(config.EnvDoors, "traversable")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, 30.0, cfg.Loop.TurnRate)
	require.Equal(t, config.DoorsTraversable, cfg.Map.Doors)
}

func TestApplyEnv_BadTurnRate(t *testing.T) {
	t.Setenv(config.EnvTurnRate, "fast")

	cfg := config.Default()
	cfg.Loop.TurnRate = 30
	err := cfg.ApplyEnv()
	require.ErrorIs(t, err, config.ErrInvalid)
	require.Contains(t, err.Error(), config.EnvTurnRate)
	require.Equal(t, 30.0, cfg.Loop.TurnRate)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"PathAndRows", func(c *config.Config) { c.Map.Path, c.Map.Rows = "x", []string{"."} }},
		{"Doors", func(c *config.Config) { c.Map.Doors = "ajar" }},
		{"MaxExpansions", func(c *config.Config) { c.Search.MaxExpansions = -1 }},
		{"TurnRate", func(c *config.Config) { c.Loop.TurnRate = -1 }},
		{"Burst", func(c *config.Config) { c.Loop.TurnRate, c.Loop.Burst = 10, 0 }},
		{"MaxTurns", func(c *config.Config) { c.Loop.MaxTurns = -5 }},
		{"Level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"Format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"Exporter", func(c *config.Config) { c.Telemetry.Metrics = "otlp" }},
		{"AgentName", func(c *config.Config) { c.Agents = []config.AgentConfig{{}} }},
		{"AgentDup", func(c *config.Config) {
			c.Agents = []config.AgentConfig{{Name: "a"}, {Name: "a"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}
