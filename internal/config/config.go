// Package config loads ls-orrery settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "ls-orrery.yaml"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "LS_ORRERY_CONFIG"

// Config holds the application configuration.
type Config struct {
	Frame      FrameConfig      `yaml:"frame"`
	Kinematics KinematicsConfig `yaml:"kinematics"`
	Camera     CameraConfig     `yaml:"camera"`
	Effects    EffectsConfig    `yaml:"effects"`
	Audio      AudioConfig      `yaml:"audio"`
	Log        LogConfig        `yaml:"log"`
}

// FrameConfig sets the render tick cadence.
type FrameConfig struct {
	Interval Duration `yaml:"interval"`
}

// KinematicsConfig scales orbital motion and spin.
type KinematicsConfig struct {
	OrbitSpeedScale   float64  `yaml:"orbit_speed_scale"`
	RotationIncrement float64  `yaml:"rotation_increment"` // radians per nominal frame
	NominalFrame      Duration `yaml:"nominal_frame"`
}

// CameraConfig holds the projection and orbit control settings.
type CameraConfig struct {
	FOV           float64  `yaml:"fov"`
	Near          float64  `yaml:"near"`
	Far           float64  `yaml:"far"`
	StartDistance float64  `yaml:"start_distance"`
	MinDistance   float64  `yaml:"min_distance"`
	MaxDistance   float64  `yaml:"max_distance"`
	Damping       float64  `yaml:"damping"`
	FocusOffset   float64  `yaml:"focus_offset"`
	FocusDuration Duration `yaml:"focus_duration"`
}

// EffectsConfig holds both transient populations.
type EffectsConfig struct {
	ShootingStars SpawnConfig `yaml:"shooting_stars"`
	Comets        SpawnConfig `yaml:"comets"`
}

// SpawnConfig gates one population's spawn policy.
type SpawnConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Interval    Duration `yaml:"interval"`
	Probability float64  `yaml:"probability"`
	Batch       int      `yaml:"batch"`
}

// AudioConfig holds background music settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Frame: FrameConfig{
			Interval: Duration(16 * time.Millisecond),
		},
		Kinematics: KinematicsConfig{
			OrbitSpeedScale:   0.001,
			RotationIncrement: 0.005,
			NominalFrame:      Duration(time.Second / 60),
		},
		Camera: CameraConfig{
			FOV:           85,
			Near:          0.1,
			Far:           1000,
			StartDistance: 100,
			MinDistance:   12,
			MaxDistance:   1000,
			Damping:       0.25,
			FocusOffset:   40,
			FocusDuration: Duration(900 * time.Millisecond),
		},
		Effects: EffectsConfig{
			ShootingStars: SpawnConfig{
				Enabled:     true,
				Interval:    Duration(400 * time.Millisecond),
				Probability: 0.8,
				Batch:       3,
			},
			Comets: SpawnConfig{
				Enabled:     true,
				Interval:    Duration(2500 * time.Millisecond),
				Probability: 0.35,
				Batch:       1,
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Path:    "assets/space.mp3",
			Volume:  0.6,
		},
		Log: LogConfig{
			Path:  "ls-orrery.log",
			Level: "info",
		},
	}
}

// ResolvePath picks the config path: an explicit flag value wins, then
// the environment, then DefaultPath.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load overlays the file at path on the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.Validate()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# ls-orrery configuration\n# Durations: ns, us, ms, s, m, h (bare numbers are ms)\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate clamps out-of-range values back into range.
func (c *Config) Validate() {
	minInterval := Duration(time.Millisecond)
	clampDur := func(d *Duration, fallback Duration) {
		if *d <= 0 {
			*d = fallback
		} else if *d < minInterval {
			*d = minInterval
		}
	}
	def := DefaultConfig()

	// NaN slips through every range check below.
	finite := func(v *float64, fallback float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = fallback
		}
	}
	finite(&c.Kinematics.OrbitSpeedScale, def.Kinematics.OrbitSpeedScale)
	finite(&c.Kinematics.RotationIncrement, def.Kinematics.RotationIncrement)
	finite(&c.Effects.ShootingStars.Probability, def.Effects.ShootingStars.Probability)
	finite(&c.Effects.Comets.Probability, def.Effects.Comets.Probability)
	finite(&c.Camera.FOV, def.Camera.FOV)
	finite(&c.Camera.Near, def.Camera.Near)
	finite(&c.Camera.Far, def.Camera.Far)
	finite(&c.Camera.MinDistance, def.Camera.MinDistance)
	finite(&c.Camera.MaxDistance, def.Camera.MaxDistance)
	finite(&c.Camera.StartDistance, def.Camera.StartDistance)
	finite(&c.Camera.FocusOffset, def.Camera.FocusOffset)
	finite(&c.Camera.Damping, def.Camera.Damping)
	finite(&c.Audio.Volume, def.Audio.Volume)

	clampDur(&c.Frame.Interval, def.Frame.Interval)
	clampDur(&c.Kinematics.NominalFrame, def.Kinematics.NominalFrame)
	clampDur(&c.Camera.FocusDuration, def.Camera.FocusDuration)

	for _, s := range []*SpawnConfig{&c.Effects.ShootingStars, &c.Effects.Comets} {
		s.Probability = clamp(s.Probability, 0, 1)
		if s.Batch < 0 {
			s.Batch = 0
		}
	}
	clampDur(&c.Effects.ShootingStars.Interval, def.Effects.ShootingStars.Interval)
	clampDur(&c.Effects.Comets.Interval, def.Effects.Comets.Interval)

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 10000
	}
	if c.Camera.MinDistance < 0 {
		c.Camera.MinDistance = 0
	}
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		c.Camera.MaxDistance = c.Camera.MinDistance
	}
	c.Camera.StartDistance = clamp(c.Camera.StartDistance, c.Camera.MinDistance, c.Camera.MaxDistance)
	c.Camera.Damping = clamp(c.Camera.Damping, 0.01, 1)

	c.Audio.Volume = clamp(c.Audio.Volume, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
