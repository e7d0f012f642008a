package app

import "log/slog"

// BuildOption is a functional option applied to the Context during Build.
type BuildOption func(*Context)

// WithLogger sets the logger handed to the panel and used for build events.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - BuildOption: a function that applies the logger option to a Context
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithViewport sets the drawable size the camera aspect and the controller's drag scale start from.
// Pass the framebuffer size, which differs from the configured window size on HiDPI displays.
// Non-positive sizes keep the configured window size.
//
// Parameters:
//   - width: the framebuffer width in pixels
//   - height: the framebuffer height in pixels
//
// Returns:
//   - BuildOption: a function that applies the viewport option to a Context
func WithViewport(width, height int) BuildOption {
	return func(c *Context) {
		if width > 0 && height > 0 {
			c.viewportWidth, c.viewportHeight = width, height
		}
	}
}
