// Package config holds the sandbox's tunable constants. Defaults reproduce the original demo; a YAML or TOML
// file can override any subset of them and command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window configures the native window and swapchain.
type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
	VSync  bool   `yaml:"vsync" toml:"vsync"`
}

// Camera configures the perspective camera and its orbit controller.
type Camera struct {
	FOV           float32    `yaml:"fov" toml:"fov"` // degrees
	Near          float32    `yaml:"near" toml:"near"`
	Far           float32    `yaml:"far" toml:"far"`
	Position      [3]float32 `yaml:"position" toml:"position"`
	Damping       bool       `yaml:"damping" toml:"damping"`
	DampingFactor float32    `yaml:"damping_factor" toml:"damping_factor"`
	AutoRotate    bool       `yaml:"auto_rotate" toml:"auto_rotate"`
	RotateSpeed   float32    `yaml:"rotate_speed" toml:"rotate_speed"`
	ZoomScale     float32    `yaml:"zoom_scale" toml:"zoom_scale"`
	PanSpeed      float32    `yaml:"pan_speed" toml:"pan_speed"`
}

// Light describes one light source. Kind is one of "directional", "ambient", "point".
type Light struct {
	Kind      string     `yaml:"kind" toml:"kind"`
	Color     [3]float32 `yaml:"color" toml:"color"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
	Position  [3]float32 `yaml:"position" toml:"position"`
	Helper    bool       `yaml:"helper" toml:"helper"`
}

// Box is the textured box mesh.
type Box struct {
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
	Depth  float32 `yaml:"depth" toml:"depth"`
}

// Textures names the three material maps. File names are relative to Dir.
type Textures struct {
	Dir          string `yaml:"dir" toml:"dir"`
	Color        string `yaml:"color" toml:"color"`
	Roughness    string `yaml:"roughness" toml:"roughness"`
	Normal       string `yaml:"normal" toml:"normal"`
	Watch        bool   `yaml:"watch" toml:"watch"`
	Workers      int    `yaml:"workers" toml:"workers"`
	MaxDimension int    `yaml:"max_dimension" toml:"max_dimension"`
}

// Config is the complete sandbox configuration.
type Config struct {
	Window     Window   `yaml:"window" toml:"window"`
	Camera     Camera   `yaml:"camera" toml:"camera"`
	Lights     []Light  `yaml:"lights" toml:"lights"`
	HelperSize float32  `yaml:"helper_size" toml:"helper_size"`
	Box        Box      `yaml:"box" toml:"box"`
	Textures   Textures `yaml:"textures" toml:"textures"`
	FPS        int      `yaml:"fps" toml:"fps"`
	LogLevel   string   `yaml:"log_level" toml:"log_level"`
	Profile    bool     `yaml:"profile" toml:"profile"`
	Panel      bool     `yaml:"panel" toml:"panel"`
}

// Default returns the configuration of the original demo scene.
func Default() Config {
	white := [3]float32{1, 1, 1}
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "oxy sandbox", VSync: true},
		Camera: Camera{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Position:      [3]float32{0, 0, 5},
			Damping:       true,
			DampingFactor: 0.01,
			AutoRotate:    false,
			RotateSpeed:   1,
			ZoomScale:     0.95,
			PanSpeed:      0.1,
		},
		Lights: []Light{
			{Kind: "directional", Color: white, Intensity: 3, Position: [3]float32{10, 10, 10}, Helper: true},
			{Kind: "ambient", Color: white, Intensity: 0.5},
			{Kind: "directional", Color: white, Intensity: 1, Position: [3]float32{5, 5, 5}, Helper: true},
			{Kind: "point", Color: white, Intensity: 1, Position: [3]float32{-5, -5, -5}, Helper: true},
		},
		HelperSize: 1,
		Box:        Box{Width: 3, Height: 1.8, Depth: 2},
		Textures: Textures{
			Dir:          ".",
			Color:        "text/color.jpg",
			Roughness:    "text/roughness.jpg",
			Normal:       "text/normal.jpg",
			Watch:        false,
			Workers:      3,
			MaxDimension: 4096,
		},
		FPS:      60,
		LogLevel: "info",
		Profile:  false,
		Panel:    true,
	}
}

// Load reads path on top of Default. The decoder is chosen by extension: .yaml/.yml or .toml.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the config file path, or "" for defaults only
//
// Returns:
//   - Config: the merged and validated configuration
//   - error: read, decode or validation failure
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(&cfg, filepath.Ext(path), data); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format named by ext (".yaml", ".yml" or ".toml").
// Fields missing from data keep their current values.
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}
}

// Validate checks the configuration for values the sandbox cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%v far=%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.DampingFactor <= 0 || c.Camera.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("damping factor %v must be in (0, 1]", c.Camera.DampingFactor))
	}
	if c.Box.Width <= 0 || c.Box.Height <= 0 || c.Box.Depth <= 0 {
		errs = append(errs, fmt.Errorf("box dimensions must be positive"))
	}
	for i, l := range c.Lights {
		switch l.Kind {
		case "directional", "point":
		case "ambient":
			if l.Helper {
				errs = append(errs, fmt.Errorf("light %d: ambient lights cannot have helpers", i))
			}
		default:
			errs = append(errs, fmt.Errorf("light %d: unknown kind %q", i, l.Kind))
		}
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.Textures.Workers <= 0 {
		errs = append(errs, fmt.Errorf("texture workers %d must be positive", c.Textures.Workers))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
