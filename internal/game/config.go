package game

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Config holds every tuning constant of a session.
type Config struct {
	Maze       MazeConfig       `yaml:"maze"`
	Player     PlayerConfig     `yaml:"player"`
	Flashlight FlashlightConfig `yaml:"flashlight"`
	Pickups    PickupsConfig    `yaml:"pickups"`
	Stalker    StalkerConfig    `yaml:"stalker"`
}

type MazeConfig struct {
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
	CellSize int `yaml:"cell_size"`
	StartX   int `yaml:"start_x"`
	StartY   int `yaml:"start_y"`
}

type PlayerConfig struct {
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`
	MaxHealth      int     `yaml:"max_health"`
	InvulnerableMs float64 `yaml:"invulnerable_ms"`
}

type FlashlightConfig struct {
	HalfAngleDeg float64 `yaml:"half_angle_deg"`
	Range        float64 `yaml:"range"`
	MarchStep    float64 `yaml:"march_step"`
}

// PickupSpec is the count and same-kind Chebyshev spacing for one pickup kind.
type PickupSpec struct {
	Count      int `yaml:"count"`
	MinSpacing int `yaml:"min_spacing"`
}

type PickupsConfig struct {
	Attempts            int        `yaml:"attempts"`
	CollectRadius       float64    `yaml:"collect_radius"`
	Relics              PickupSpec `yaml:"relics"`
	Redirects           PickupSpec `yaml:"redirects"`
	StalkerItems        PickupSpec `yaml:"stalker_items"`
	RedirectAttempts    int        `yaml:"redirect_attempts"`
	RedirectMinDistance float64    `yaml:"redirect_min_distance"`
}

type StalkerConfig struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	Jitter        float64 `yaml:"jitter"`
	JitterScale   float64 `yaml:"jitter_scale"`
	HearingMs     float64 `yaml:"hearing_ms"`
	ForgetMs      float64 `yaml:"forget_ms"`
	WaypointReach float64 `yaml:"waypoint_reach"`
	WanderChance  float64 `yaml:"wander_chance"`
	CollectRadius float64 `yaml:"collect_radius"`

	SpawnAttempts    int     `yaml:"spawn_attempts"`
	SpawnMinDistance float64 `yaml:"spawn_min_distance"`

	PatrolMaxPoints     int     `yaml:"patrol_max_points"`
	PatrolAttempts      int     `yaml:"patrol_attempts"`
	PatrolMinSeparation float64 `yaml:"patrol_min_separation"`
	PatrolMinPoints     int     `yaml:"patrol_min_points"`

	TeleportChanceHeard   float64 `yaml:"teleport_chance_heard"`
	TeleportDistanceHeard float64 `yaml:"teleport_distance_heard"`
	TeleportChanceFar     float64 `yaml:"teleport_chance_far"`
	TeleportDistanceFar   float64 `yaml:"teleport_distance_far"`
	AmbushAttempts        int     `yaml:"ambush_attempts"`
	AmbushMinRadius       float64 `yaml:"ambush_min_radius"`
	AmbushMaxRadius       float64 `yaml:"ambush_max_radius"`

	GlowRise float64 `yaml:"glow_rise"`
	GlowFall float64 `yaml:"glow_fall"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		// The embedded file is part of the build; a decode failure is a programming error.
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Cone returns the flashlight cone shared by every visibility check.
func (c Config) Cone() Cone {
	return Cone{
		HalfAngle: c.Flashlight.HalfAngleDeg * math.Pi / 180.0,
		Range:     c.Flashlight.Range,
		Step:      c.Flashlight.MarchStep,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	m := c.Maze
	switch {
	case m.Cols < 3 || m.Rows < 3:
		return fmt.Errorf("maze must be at least 3x3, got %dx%d", m.Cols, m.Rows)
	case m.CellSize <= 0:
		return errors.New("maze.cell_size must be positive")
	case m.StartX%2 == 0 || m.StartY%2 == 0:
		return fmt.Errorf("maze start (%d,%d) must be odd-aligned", m.StartX, m.StartY)
	case m.StartX <= 0 || m.StartX >= m.Cols-1 || m.StartY <= 0 || m.StartY >= m.Rows-1:
		return fmt.Errorf("maze start (%d,%d) must be inside the border", m.StartX, m.StartY)
	}
	if c.Player.Radius <= 0 || c.Stalker.Radius <= 0 {
		return errors.New("actor radii must be positive")
	}
	if c.Player.Speed < 0 || c.Stalker.Speed < 0 {
		return errors.New("actor speeds must not be negative")
	}
	if c.Player.MaxHealth <= 0 {
		return errors.New("player.max_health must be positive")
	}
	if c.Flashlight.MarchStep <= 0 {
		return errors.New("flashlight.march_step must be positive")
	}
	if c.Flashlight.HalfAngleDeg <= 0 || c.Flashlight.HalfAngleDeg > 180 {
		return fmt.Errorf("flashlight.half_angle_deg %.1f out of (0,180]", c.Flashlight.HalfAngleDeg)
	}
	for name, spec := range map[string]PickupSpec{
		"relics":        c.Pickups.Relics,
		"redirects":     c.Pickups.Redirects,
		"stalker_items": c.Pickups.StalkerItems,
	} {
		if spec.Count < 0 || spec.MinSpacing < 0 {
			return fmt.Errorf("pickups.%s: count and min_spacing must not be negative", name)
		}
	}
	if c.Stalker.AmbushMaxRadius < c.Stalker.AmbushMinRadius {
		return errors.New("stalker.ambush_max_radius must be >= ambush_min_radius")
	}
	return nil
}
