// Package config provides the tunable rules for a game of cat catching.
// Rules are loaded from a JSON file layered over defaults, then overridden
// from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Mode names accepted by Config.Mode.
const (
	ModeScreen = "screen"
	ModeAR     = "ar"
)

// Config holds all rules for a game
type Config struct {
	Mode      string `json:"mode"`       // "screen" or "ar"
	AssetsDir string `json:"assets_dir"` // Directory holding cat.stl and the cat sprite

	Session  SessionConfig  `json:"session"`
	Movement MovementConfig `json:"movement"`
	Spawn    SpawnConfig    `json:"spawn"`
	Viewer   ViewerConfig   `json:"viewer"`
	Camera   CameraConfig   `json:"camera"`
	Window   WindowConfig   `json:"window"`
	Server   ServerConfig   `json:"server"`
}

// SessionConfig defines the countdown and catch feedback
type SessionConfig struct {
	DurationSeconds int     `json:"duration_seconds"` // Countdown start (e.g., 10)
	TickMillis      int     `json:"tick_millis"`      // Countdown step
	PulseMillis     int     `json:"pulse_millis"`     // Capture control pulse length
	PulseScale      float64 `json:"pulse_scale"`      // Capture control scale while pulsing
}

// MovementConfig defines the screen-space cat motion, in screen percent
type MovementConfig struct {
	TickMillis       int     `json:"tick_millis"`       // Simulation step (~60 Hz)
	MoveSpeed        float64 `json:"move_speed"`        // Smoothing factor while roaming
	HideSpeed        float64 `json:"hide_speed"`        // Smoothing factor while running to an edge
	HideChance       float64 `json:"hide_chance"`       // Probability per tick of starting to hide
	HideTicks        int     `json:"hide_ticks"`        // Ticks spent hidden
	RetargetDistance float64 `json:"retarget_distance"` // Distance at which a new target is drawn
	BoundsMin        float64 `json:"bounds_min"`        // Lower bound of the visible band
	BoundsMax        float64 `json:"bounds_max"`        // Upper bound of the visible band
	EdgeMin          float64 `json:"edge_min"`          // Off-screen exit coordinate (top/left)
	EdgeMax          float64 `json:"edge_max"`          // Off-screen exit coordinate (bottom/right)
	StartX           float64 `json:"start_x"`
	StartY           float64 `json:"start_y"`
}

// SpawnConfig defines where and how often AR cats appear
type SpawnConfig struct {
	IntervalMillis int     `json:"interval_millis"` // Time between waves
	MinPerWave     int     `json:"min_per_wave"`
	MaxPerWave     int     `json:"max_per_wave"`
	AngleSpread    float64 `json:"angle_spread"` // Radians, centred straight ahead
	DistanceMin    float64 `json:"distance_min"` // Metres
	DistanceMax    float64 `json:"distance_max"`
	HeightMin      float64 `json:"height_min"`
	HeightMax      float64 `json:"height_max"`
	CatScale       float64 `json:"cat_scale"` // Sprite edge length in metres
}

// ViewerConfig defines the decorative 3D cat inset
type ViewerConfig struct {
	MeshFile         string  `json:"mesh_file"`
	Size             int     `json:"size"`               // Square viewport in pixels
	FitSize          float64 `json:"fit_size"`           // Largest mesh dimension after normalising
	RotationPerFrame float64 `json:"rotation_per_frame"` // Radians
	BobAmplitude     float64 `json:"bob_amplitude"`
	BobFrequency     float64 `json:"bob_frequency"` // Radians per millisecond of wall clock
	CameraZ          float64 `json:"camera_z"`
	FOV              float64 `json:"fov"` // Degrees
	FrameMillis      int     `json:"frame_millis"`
}

// CameraConfig defines the AR scene projection
type CameraConfig struct {
	FOV  float64 `json:"fov"` // Vertical, degrees
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
}

// WindowConfig defines the desktop window
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// ServerConfig defines the static server for the browser build
type ServerConfig struct {
	Addr      string `json:"addr"`
	StaticDir string `json:"static_dir"`
}

// Default returns the standard game rules.
func Default() *Config {
	return &Config{
		Mode:      ModeScreen,
		AssetsDir: "assets",
		Session: SessionConfig{
			DurationSeconds: 10,
			TickMillis:      1000,
			PulseMillis:     200,
			PulseScale:      1.2,
		},
		Movement: MovementConfig{
			TickMillis:       16,
			MoveSpeed:        0.02,
			HideSpeed:        0.05,
			HideChance:       0.05,
			HideTicks:        60,
			RetargetDistance: 2,
			BoundsMin:        10,
			BoundsMax:        90,
			EdgeMin:          -10,
			EdgeMax:          110,
			StartX:           50,
			StartY:           50,
		},
		Spawn: SpawnConfig{
			IntervalMillis: 2000,
			MinPerWave:     1,
			MaxPerWave:     2,
			AngleSpread:    math.Pi,
			DistanceMin:    1,
			DistanceMax:    3,
			HeightMin:      0.5,
			HeightMax:      1.5,
			CatScale:       0.3,
		},
		Viewer: ViewerConfig{
			MeshFile:         "cat.stl",
			Size:             200,
			FitSize:          2,
			RotationPerFrame: 0.01,
			BobAmplitude:     0.1,
			BobFrequency:     0.001,
			CameraZ:          3,
			FOV:              50,
			FrameMillis:      16,
		},
		Camera: CameraConfig{
			FOV:  70,
			Near: 0.01,
			Far:  20,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "AR Cat Catch",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			StaticDir: "web",
		},
	}
}

// Load loads config from a JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default() // Start with defaults
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// FromEnv applies ARCATS_* environment overrides.
func FromEnv(cfg *Config) error {
	if v := os.Getenv("ARCATS_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("ARCATS_ASSETS"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("ARCATS_SESSION_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ARCATS_SESSION_SECONDS: %w", err)
		}
		cfg.Session.DurationSeconds = n
	}
	if v := os.Getenv("ARCATS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

// Validate rejects rules the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeScreen && c.Mode != ModeAR {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.Session.DurationSeconds <= 0 || c.Session.TickMillis <= 0 {
		errs = append(errs, errors.New("session duration and tick must be positive"))
	}
	if c.Movement.TickMillis <= 0 || c.Movement.HideTicks <= 0 {
		errs = append(errs, errors.New("movement tick and hide ticks must be positive"))
	}
	if c.Movement.BoundsMin >= c.Movement.BoundsMax {
		errs = append(errs, errors.New("movement bounds are inverted"))
	}
	if c.Movement.HideChance < 0 || c.Movement.HideChance > 1 {
		errs = append(errs, errors.New("hide chance must be within [0,1]"))
	}
	if c.Spawn.IntervalMillis <= 0 {
		errs = append(errs, errors.New("spawn interval must be positive"))
	}
	if c.Spawn.MinPerWave < 0 || c.Spawn.MinPerWave > c.Spawn.MaxPerWave {
		errs = append(errs, errors.New("spawn wave range is inverted"))
	}
	if c.Spawn.DistanceMin > c.Spawn.DistanceMax || c.Spawn.HeightMin > c.Spawn.HeightMax {
		errs = append(errs, errors.New("spawn distance or height range is inverted"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.New("camera clip planes are invalid"))
	}
	return errors.Join(errs...)
}

// Tick returns the countdown step.
func (s SessionConfig) Tick() time.Duration {
	return time.Duration(s.TickMillis) * time.Millisecond
}

// Pulse returns the capture pulse length.
func (s SessionConfig) Pulse() time.Duration {
	return time.Duration(s.PulseMillis) * time.Millisecond
}

// Tick returns the movement step.
func (m MovementConfig) Tick() time.Duration {
	return time.Duration(m.TickMillis) * time.Millisecond
}

// Interval returns the time between spawn waves.
func (s SpawnConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMillis) * time.Millisecond
}

// Frame returns the viewer animation step.
func (v ViewerConfig) Frame() time.Duration {
	return time.Duration(v.FrameMillis) * time.Millisecond
}
