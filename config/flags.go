package config

import (
	"flag"
)

// Flags is the set of command-line overrides. Only flags the user actually passed are applied.
type Flags struct {
	fs *flag.FlagSet

	ConfigPath string
	width      int
	height     int
	fps        int
	logLevel   string
	textureDir string
	watch      bool
	profile    bool
	panel      bool
}

// NewFlags registers the sandbox flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	def := Default()
	fs.StringVar(&f.ConfigPath, "config", "", "path to a YAML or TOML config file")
	fs.IntVar(&f.width, "width", def.Window.Width, "window width in pixels")
	fs.IntVar(&f.height, "height", def.Window.Height, "window height in pixels")
	fs.IntVar(&f.fps, "fps", def.FPS, "frame rate cap")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&f.textureDir, "textures", def.Textures.Dir, "directory containing the text/ texture folder")
	fs.BoolVar(&f.watch, "watch", def.Textures.Watch, "reload textures when their files change")
	fs.BoolVar(&f.profile, "profile", def.Profile, "log frame rate and memory statistics")
	fs.BoolVar(&f.panel, "panel", def.Panel, "draw the parameter panel in the terminal")
	return f
}

// Apply copies every explicitly set flag onto cfg.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Window.Width = f.width
		case "height":
			cfg.Window.Height = f.height
		case "fps":
			cfg.FPS = f.fps
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "textures":
			cfg.Textures.Dir = f.textureDir
		case "watch":
			cfg.Textures.Watch = f.watch
		case "profile":
			cfg.Profile = f.profile
		case "panel":
			cfg.Panel = f.panel
		}
	})
}
