// Package config provides configuration loading and access for the star field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/starfield/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all star field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" envPrefix:"SCREEN_"`
	StarField StarFieldConfig `yaml:"starfield"`
	Streak    StreakConfig    `yaml:"streak" envPrefix:"STREAK_"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width" env:"WIDTH"`
	Height    int  `yaml:"height" env:"HEIGHT"`
	TargetFPS int  `yaml:"target_fps" env:"TARGET_FPS"`
	Resizable bool `yaml:"resizable" env:"RESIZABLE"`
}

// StarFieldConfig holds twinkling star parameters.
type StarFieldConfig struct {
	PointCount      int     `yaml:"point_count" env:"POINT_COUNT"`
	RadiusMin       float64 `yaml:"radius_min"`
	RadiusMax       float64 `yaml:"radius_max"`
	TwinkleSpeedMin float64 `yaml:"twinkle_speed_min"`
	TwinkleSpeedMax float64 `yaml:"twinkle_speed_max"`
	PhaseRate       float64 `yaml:"phase_rate" env:"PHASE_RATE"` // Phase units per second
}

// StreakConfig holds shooting star parameters.
type StreakConfig struct {
	DirX       float64 `yaml:"dir_x"`
	DirY       float64 `yaml:"dir_y"`
	Length     float64 `yaml:"length"`
	SpeedMin   float64 `yaml:"speed_min"` // Pixels per second
	SpeedMax   float64 `yaml:"speed_max"`
	SpawnMinMs int64   `yaml:"spawn_min_ms" env:"SPAWN_MIN_MS"`
	SpawnMaxMs int64   `yaml:"spawn_max_ms" env:"SPAWN_MAX_MS"`
	Band       float64 `yaml:"band"` // Spawn within the top fraction of the viewport
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	Background  ColorConfig `yaml:"background"`   // Clear color
	StreakWidth float32     `yaml:"streak_width"` // Shooting star stroke width
	TermColumns int         `yaml:"term_columns"` // Braille preview width in characters
	TermRows    int         `yaml:"term_rows"`    // Braille preview height in characters
}

// ColorConfig is an RGB color.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window" env:"STATS_WINDOW"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameInterval time.Duration // Time between frames at Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies STARFIELD_* environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Environment wins over files; unset variables leave fields alone
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "STARFIELD_"}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the engine cannot draw from.
func (c *Config) validate() error {
	if c.StarField.PointCount < 0 {
		return fmt.Errorf("starfield.point_count must be >= 0, got %d", c.StarField.PointCount)
	}
	if c.StarField.RadiusMin < 0 {
		return fmt.Errorf("starfield.radius_min must be >= 0, got %g", c.StarField.RadiusMin)
	}
	if c.StarField.RadiusMax < c.StarField.RadiusMin {
		return fmt.Errorf("starfield.radius_max (%g) < radius_min (%g)", c.StarField.RadiusMax, c.StarField.RadiusMin)
	}
	if c.StarField.TwinkleSpeedMax < c.StarField.TwinkleSpeedMin {
		return fmt.Errorf("starfield.twinkle_speed_max (%g) < twinkle_speed_min (%g)", c.StarField.TwinkleSpeedMax, c.StarField.TwinkleSpeedMin)
	}
	// The phase must never run backwards.
	if c.StarField.PhaseRate <= 0 {
		return fmt.Errorf("starfield.phase_rate must be > 0, got %g", c.StarField.PhaseRate)
	}
	if c.Streak.Length < 0 {
		return fmt.Errorf("streak.length must be >= 0, got %g", c.Streak.Length)
	}
	if c.Streak.SpeedMin <= 0 {
		return fmt.Errorf("streak.speed_min must be > 0, got %g", c.Streak.SpeedMin)
	}
	if c.Streak.SpeedMax < c.Streak.SpeedMin {
		return fmt.Errorf("streak.speed_max (%g) < speed_min (%g)", c.Streak.SpeedMax, c.Streak.SpeedMin)
	}
	if c.Streak.SpawnMinMs < 0 {
		return fmt.Errorf("streak.spawn_min_ms must be >= 0, got %d", c.Streak.SpawnMinMs)
	}
	if c.Streak.SpawnMaxMs < c.Streak.SpawnMinMs {
		return fmt.Errorf("streak.spawn_max_ms (%d) < spawn_min_ms (%d)", c.Streak.SpawnMaxMs, c.Streak.SpawnMinMs)
	}
	if !(c.Streak.Band > 0 && c.Streak.Band <= 1) {
		return fmt.Errorf("streak.band must be in (0, 1], got %g", c.Streak.Band)
	}
	if c.Streak.DirX == 0 && c.Streak.DirY == 0 {
		return fmt.Errorf("streak direction must be non-zero")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameInterval = time.Second / time.Duration(fps)
}

// StarFieldParams converts the loaded settings into engine parameters.
func (c *Config) StarFieldParams() systems.StarFieldParams {
	return systems.StarFieldParams{
		PointCount:      c.StarField.PointCount,
		RadiusMin:       c.StarField.RadiusMin,
		RadiusMax:       c.StarField.RadiusMax,
		TwinkleSpeedMin: c.StarField.TwinkleSpeedMin,
		TwinkleSpeedMax: c.StarField.TwinkleSpeedMax,
		PhaseRate:       c.StarField.PhaseRate,
		Streak: systems.StreakParams{
			DirX:       c.Streak.DirX,
			DirY:       c.Streak.DirY,
			Length:     c.Streak.Length,
			SpeedMin:   c.Streak.SpeedMin,
			SpeedMax:   c.Streak.SpeedMax,
			SpawnMinMs: c.Streak.SpawnMinMs,
			SpawnMaxMs: c.Streak.SpawnMaxMs,
			Band:       c.Streak.Band,
		},
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
