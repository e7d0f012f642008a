// Package texture loads material map images off the render goroutine. Every load yields a Handle future that the
// render loop applies exactly once when it completes.
package texture

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// ErrClosed is the failure reason of handles requested after Close.
var ErrClosed = errors.New("texture loader closed")

// DefaultMaxDimension is the largest texture side uploaded without downscaling.
const DefaultMaxDimension = 4096

// loader is the implementation of the Loader interface.
type loader struct {
	mu       sync.Mutex
	closed   bool
	nextID   int
	inFlight int

	fsys      fs.FS
	workers   int
	maxDim    int
	logger    *slog.Logger
	onSettled func(*Handle)

	pool     worker.DynamicWorkerPool
	pending  sync.WaitGroup
	stopOnce sync.Once
}

// Loader defines the public-facing interface for asynchronous texture loading.
// Loads run on a bounded worker pool; results are delivered through Handles.
type Loader interface {
	// Load starts decoding the named image and returns immediately.
	//
	// Parameters:
	//   - name: slash-separated path of the image inside the loader's file system
	//
	// Returns:
	//   - *Handle: a pending handle that settles when the decode finishes
	Load(name string) *Handle

	// Pending returns the number of loads that have not settled yet.
	//
	// Returns:
	//   - int: outstanding load count
	Pending() int

	// Close refuses new loads, waits for in-flight loads to settle and stops the worker pool.
	// Safe to call more than once.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the provided options applied.
// Without WithFS the loader reads from the current working directory.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a ready loader backed by its own worker pool
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers: 3,
		maxDim:  DefaultMaxDimension,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(".")
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(name string) *Handle {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		h := Failed(name, fmt.Errorf("load %s: %w", name, ErrClosed))
		l.settled(h)
		return h
	}
	id := l.nextID
	l.nextID++
	l.inFlight++
	l.pending.Add(1)
	l.mu.Unlock()

	h := newHandle(name)
	l.logger.Debug("texture load queued", "name", name, "task", id)
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.pending.Done()
			start := time.Now()

			data, err := l.read(name)

			l.mu.Lock()
			l.inFlight--
			l.mu.Unlock()
			h.resolve(data, err)

			if err != nil {
				l.logger.Warn("texture load failed", "name", name, "err", err)
			} else {
				l.logger.Info("texture loaded", "name", name, "width", data.Width, "height", data.Height, "took", time.Since(start))
			}
			l.settled(h)
			// Failures travel through the handle.
			return nil, nil
		},
	})
	return h
}

func (l *loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

func (l *loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.pending.Wait()
	l.stopOnce.Do(func() {
		l.pool.Stop()
		l.logger.Debug("texture loader stopped")
	})
}

func (l *loader) read(name string) (*common.TextureStagingData, error) {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Decode(name, raw, l.maxDim)
}

func (l *loader) settled(h *Handle) {
	if l.onSettled != nil {
		l.onSettled(h)
	}
}
