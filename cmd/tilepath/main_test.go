package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pathfinder"
	"github.com/katalvlaran/tilepath/schedule"
	"github.com/katalvlaran/tilepath/terrain"
)

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFind_Corridor(t *testing.T) {
	mapPath := writeFile(t, "corridor.txt", "S...G\n")

	out, err := execute(t, "find", "--map", mapPath)
	require.NoError(t, err)
	require.Equal(t,
		"path: (0,0) -> (1,0) -> (2,0) -> (3,0) -> (4,0)\n"+
			"cost: 4.0 steps: 4 turns: 9 explored: 4\n"+
			"S***G\n",
		out)
}

func TestFind_FlagsOverrideMarkers(t *testing.T) {
	mapPath := writeFile(t, "corridor.txt", "S...G\n")

	out, err := execute(t, "find", "--map", mapPath, "--from", "1,0", "--to", " 3, 0", "--render=false")
	require.NoError(t, err)
	require.Equal(t,
		"path: (1,0) -> (2,0) -> (3,0)\n"+
			"cost: 2.0 steps: 2 turns: 5 explored: 2\n",
		out)
}

func TestFind_Failures(t *testing.T) {
	walled := writeFile(t, "walled.txt", "S#G\n")
	_, err := execute(t, "find", "--map", walled)
	require.ErrorIs(t, err, pathfinder.ErrUnreachable)

	_, err = execute(t, "find", "--map", walled, "--to", "9,9")
	require.ErrorIs(t, err, pathfinder.ErrOutOfBounds)

	blank := writeFile(t, "blank.txt", "...\n")
	_, err = execute(t, "find", "--map", blank)
	require.ErrorIs(t, err, errNoEndpoint)

	_, err = execute(t, "find", "--map", blank, "--from", "1")
	require.Error(t, err)

	_, err = execute(t, "find")
	require.ErrorIs(t, err, config.ErrNoMap)
}

// TestFind_DoorPolicyFromEnv opens the door through TILEPATH_DOORS.
func TestFind_DoorPolicyFromEnv(t *testing.T) {
	mapPath := writeFile(t, "door.txt", "SD.G\n")

	_, err := execute(t, "find", "--map", mapPath)
	require.ErrorIs(t, err, pathfinder.ErrUnreachable)

	t.Setenv(config.EnvDoors, config.DoorsTraversable)
	out, err := execute(t, "find", "--map", mapPath, "--render=false")
	require.NoError(t, err)
	require.Contains(t, out, "path: (0,0) -> (1,0) -> (2,0) -> (3,0)\n")
	require.Contains(t, out, "cost: 5.0 ")
}

func TestRoot_InvalidConfig(t *testing.T) {
	mapPath := writeFile(t, "corridor.txt", "S...G\n")

	_, err := execute(t, "find", "--map", mapPath, "--log-level", "loud")
	require.ErrorIs(t, err, config.ErrInvalid)

	cfgPath := writeFile(t, "tilepath.yaml", "loop:\n  turn_rate: -1\n")
	_, err = execute(t, "--config", cfgPath, "find", "--map", mapPath)
	require.ErrorIs(t, err, config.ErrInvalid)

	t.Setenv(config.EnvTurnRate, "fast")
	_, err = execute(t, "find", "--map", mapPath)
	require.ErrorIs(t, err, config.ErrInvalid)
}

const batchConfig = `map:
  rows:
    - "....."
    - ".###."
    - "....."
agents:
  - name: east
    start: {x: 0, y: 0}
    goal: {x: 4, y: 0}
  - name: west
    start: {x: 4, y: 2}
    goal: {x: 0, y: 2}
`

func TestBatch(t *testing.T) {
	cfgPath := writeFile(t, "tilepath.yaml", batchConfig)
	want := "east: cost=4.0 turns=9 path=(0,0) -> (1,0) -> (2,0) -> (3,0) -> (4,0)\n" +
		"west: cost=4.0 turns=9 path=(4,2) -> (3,2) -> (2,2) -> (1,2) -> (0,2)\n"

	out, err := execute(t, "--config", cfgPath, "batch")
	require.NoError(t, err)
	require.Equal(t, want, out)

	out, err = execute(t, "--config", cfgPath, "batch", "--parallel")
	require.NoError(t, err)
	require.Equal(t, want, out)
}

func TestBatch_Failures(t *testing.T) {
	cfgPath := writeFile(t, "tilepath.yaml", batchConfig+`  - name: boxed
    start: {x: 0, y: 0}
    goal: {x: 2, y: 1}
`)
	out, err := execute(t, "--config", cfgPath, "batch")
	require.ErrorIs(t, err, errAgentsFailed)
	require.Contains(t, out, "boxed: failed after ")

	capped := writeFile(t, "capped.yaml", batchConfig+"loop:\n  max_turns: 3\n")
	_, err = execute(t, "--config", capped, "batch")
	require.ErrorIs(t, err, schedule.ErrTurnLimit)
	_, err = execute(t, "--config", capped, "batch", "--parallel")
	require.ErrorIs(t, err, schedule.ErrTurnLimit)

	noAgents := writeFile(t, "empty.yaml", "map:\n  rows: [\"..\"]\n")
	_, err = execute(t, "--config", noAgents, "batch")
	require.ErrorIs(t, err, errNoAgents)
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "--seeds", "8", "--width", "14", "--height", "10", "--workers", "3")
	require.NoError(t, err)
	require.Contains(t, out, "verified 8 maps (14x10, density 0.30): ")

	_, err = execute(t, "verify", "--seeds", "0")
	require.ErrorIs(t, err, errBadVerify)

	_, err = execute(t, "verify", "--density", "1.5")
	require.ErrorIs(t, err, errBadVerify)
}

func TestInspect(t *testing.T) {
	mapPath := writeFile(t, "islands.txt", "S.#G\n..#.\n")

	out, err := execute(t, "inspect", "--map", mapPath)
	require.NoError(t, err)
	require.Equal(t,
		"size: 4x2\n"+
			"cells: open=6 wall=2 door=0 object=0\n"+
			"doors: blocked\n"+
			"regions: 2\n"+
			"  1: 4 cells from (0,0)\n"+
			"  2: 2 cells from (3,0)\n"+
			"(0,0) -> (3,0) connected: false\n",
		out)
}

func TestParseCoord(t *testing.T) {
	c, err := parseCoord("3,-4")
	require.NoError(t, err)
	require.Equal(t, gridgraph.Coord{X: 3, Y: -4}, c)

	for _, bad := range []string{"", "3", "a,1", "1,b", "1;2"} {
		_, err = parseCoord(bad)
		require.ErrorIs(t, err, errBadCoord, bad)
	}

	var v coordValue
	require.Empty(t, v.String())
	require.NoError(t, v.Set("2,5"))
	require.Equal(t, "2,5", v.String())
	require.Equal(t, "x,y", v.Type())
}

func TestRenderPath(t *testing.T) {
	m, err := terrain.From2D([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 3},
	})
	require.NoError(t, err)
	store := gridgraph.NewStore()
	p := pathfinder.Path{
		store.GetOrCreate(gridgraph.Coord{X: 0, Y: 2}),
		store.GetOrCreate(gridgraph.Coord{X: 0, Y: 1}),
		store.GetOrCreate(gridgraph.Coord{X: 1, Y: 0}),
		store.GetOrCreate(gridgraph.Coord{X: 2, Y: 1}),
	}

	require.Equal(t, ".*.\n*#G\nSDo\n", renderPath(m, p))
	require.Equal(t, m.String(), renderPath(m, nil))
}
