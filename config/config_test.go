package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Lights, 4)
	helpers := 0
	for _, l := range cfg.Lights {
		if l.Helper {
			helpers++
		}
	}
	assert.Equal(t, 3, helpers)
	assert.Equal(t, Box{Width: 3, Height: 1.8, Depth: 2}, cfg.Box)
	assert.Equal(t, float32(0.01), cfg.Camera.DampingFactor)
	assert.False(t, cfg.Camera.AutoRotate)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
  height: 600
camera:
  damping_factor: 0.05
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, float32(0.05), cfg.Camera.DampingFactor)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Box, cfg.Box)
	assert.Equal(t, Default().Camera.FOV, cfg.Camera.FOV)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
fps = 30

[box]
width = 1.0
height = 1.0
depth = 1.0

[textures]
dir = "assets"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, Box{Width: 1, Height: 1, Depth: 1}, cfg.Box)
	assert.Equal(t, "assets", cfg.Textures.Dir)
	assert.Equal(t, "text/color.jpg", cfg.Textures.Color)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"damping zero", func(c *Config) { c.Camera.DampingFactor = 0 }},
		{"flat box", func(c *Config) { c.Box.Depth = 0 }},
		{"unknown light", func(c *Config) { c.Lights[0].Kind = "spot" }},
		{"ambient helper", func(c *Config) { c.Lights[1].Helper = true }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"no workers", func(c *Config) { c.Textures.Workers = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("nope")
	assert.Error(t, err)
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	f := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"-width", "640", "-watch", "-config", "x.yaml"}))

	cfg := Default()
	cfg.Window.Height = 999
	f.Apply(&cfg)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 999, cfg.Window.Height)
	assert.True(t, cfg.Textures.Watch)
	assert.Equal(t, "x.yaml", f.ConfigPath)
}
