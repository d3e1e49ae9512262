// Package config loads the tilepath CLI configuration: map source, search
// limits, loop pacing, logging, telemetry and the agents of a batch run.
//
// Precedence, lowest first: Default, the YAML file given to Load, then
// TILEPATH_* environment variables applied by ApplyEnv.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/terrain"
)

// Sentinel errors.
var (
	// ErrInvalid wraps every Validate failure.
	ErrInvalid = errors.New("config: invalid")

	// ErrNoMap indicates that neither map.path nor map.rows is set.
	ErrNoMap = errors.New("config: no map configured")
)

// Environment overrides.
const (
	EnvLogLevel = "TILEPATH_LOG_LEVEL"
	EnvTurnRate = "TILEPATH_TURN_RATE"
	EnvDoors    = "TILEPATH_DOORS"
)

// Door policy names.
const (
	DoorsBlocked     = "blocked"
	DoorsTraversable = "traversable"
)

// Exporter names for TelemetryConfig.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Config is the complete CLI configuration.
type Config struct {
	// Map selects the terrain.
	Map MapConfig `yaml:"map"`

	// Search contains per-request limits.
	Search SearchConfig `yaml:"search"`

	// Loop contains turn pacing settings.
	Loop LoopConfig `yaml:"loop"`

	// Logging contains slog handler settings.
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry selects otel exporters.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Agents are the requests of a batch run, one Finder each.
	Agents []AgentConfig `yaml:"agents"`
}

// MapConfig names an ASCII map file or carries the rows inline.
type MapConfig struct {
	Path  string   `yaml:"path"`
	Rows  []string `yaml:"rows"`
	Doors string   `yaml:"doors"`
}

// SearchConfig bounds a single request.
type SearchConfig struct {
	MaxExpansions int  `yaml:"max_expansions"`
	Strict        bool `yaml:"strict"`
}

// LoopConfig paces the host loop. TurnRate 0 means unpaced.
type LoopConfig struct {
	TurnRate float64 `yaml:"turn_rate"`
	Burst    int     `yaml:"burst"`
	MaxTurns int     `yaml:"max_turns"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig selects the trace and metric exporters.
type TelemetryConfig struct {
	Traces      string `yaml:"traces"`
	Metrics     string `yaml:"metrics"`
	ServiceName string `yaml:"service_name"`
}

// AgentConfig is one start/goal request.
type AgentConfig struct {
	Name  string          `yaml:"name"`
	Start gridgraph.Coord `yaml:"start"`
	Goal  gridgraph.Coord `yaml:"goal"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Map: MapConfig{
			Doors: DoorsBlocked,
		},
		Search: SearchConfig{
			MaxExpansions: 0,
		},
		Loop: LoopConfig{
			TurnRate: 0,
			Burst:    1,
			MaxTurns: 1_000_000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Traces:      ExporterNone,
			Metrics:     ExporterNone,
			ServiceName: "tilepath",
		},
	}
}

// Load reads the YAML file at path over Default. An empty path returns Default.
// The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from TILEPATH_* variables. An unparsable number
// fails with ErrInvalid and leaves the field unchanged; ranges and names are
// left to Validate.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvTurnRate); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvTurnRate, v)
		}
		c.Loop.TurnRate = f
	}
	if v := os.Getenv(EnvDoors); v != "" {
		c.Map.Doors = v
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Map.Path != "" && len(c.Map.Rows) > 0 {
		return fmt.Errorf("%w: map.path and map.rows are mutually exclusive", ErrInvalid)
	}
	if _, err := c.DoorPolicy(); err != nil {
		return err
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("%w: search.max_expansions must be >= 0", ErrInvalid)
	}
	if c.Loop.TurnRate < 0 {
		return fmt.Errorf("%w: loop.turn_rate must be >= 0", ErrInvalid)
	}
	if c.Loop.TurnRate > 0 && c.Loop.Burst < 1 {
		return fmt.Errorf("%w: loop.burst must be >= 1", ErrInvalid)
	}
	if c.Loop.MaxTurns < 0 {
		return fmt.Errorf("%w: loop.max_turns must be >= 0", ErrInvalid)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if f := c.Logging.Format; f != "text" && f != "json" {
		return fmt.Errorf("%w: logging.format %q (want text or json)", ErrInvalid, f)
	}
	for _, e := range []string{c.Telemetry.Traces, c.Telemetry.Metrics} {
		if e != ExporterNone && e != ExporterStdout {
			return fmt.Errorf("%w: telemetry exporter %q (want none or stdout)", ErrInvalid, e)
		}
	}

	seen := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agents[%d] has no name", ErrInvalid, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate agent %q", ErrInvalid, a.Name)
		}
		seen[a.Name] = true
	}

	return nil
}

// DoorPolicy maps map.doors to a terrain policy.
func (c Config) DoorPolicy() (terrain.DoorPolicy, error) {
	switch strings.ToLower(c.Map.Doors) {
	case DoorsBlocked, "":
		return terrain.DoorsBlocked, nil
	case DoorsTraversable:
		return terrain.DoorsTraversable, nil
	}
	return 0, fmt.Errorf("%w: map.doors %q (want blocked or traversable)", ErrInvalid, c.Map.Doors)
}

// LogLevel parses logging.level.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	return lvl, nil
}

// LoadMap parses the configured ASCII map.
func (c Config) LoadMap() (*terrain.GridMap, terrain.Markers, error) {
	switch {
	case c.Map.Path != "":
		f, err := os.Open(c.Map.Path)
		if err != nil {
			return nil, terrain.Markers{}, fmt.Errorf("open map: %w", err)
		}
		defer f.Close()
		return terrain.ParseASCII(f)
	case len(c.Map.Rows) > 0:
		return terrain.ParseASCII(strings.NewReader(strings.Join(c.Map.Rows, "\n")))
	}
	return nil, terrain.Markers{}, ErrNoMap
}
