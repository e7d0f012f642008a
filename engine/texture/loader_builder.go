package texture

import (
	"io/fs"
	"log/slog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS is an option builder that sets the file system image names are resolved against.
//
// Parameters:
//   - fsys: the file system to read from
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithWorkers is an option builder that sets how many decodes may run concurrently.
// Values below one are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMaxDimension is an option builder that sets the largest texture side; bigger images are downscaled.
// Zero disables downscaling.
//
// Parameters:
//   - n: the maximum width or height in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the dimension option to a loader
func WithMaxDimension(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n >= 0 {
			l.maxDim = n
		}
	}
}

// WithLogger is an option builder that sets the loader's logger.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOnSettled is an option builder that registers a callback run on the worker goroutine after each handle
// settles. The callback must not touch the scene; post to the render loop instead.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - LoaderBuilderOption: a function that applies the callback option to a loader
func WithOnSettled(fn func(*Handle)) LoaderBuilderOption {
	return func(l *loader) {
		l.onSettled = fn
	}
}
