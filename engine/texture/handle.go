package texture

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// State is the lifecycle position of a texture Handle.
type State int32

const (
	// StatePending means the load has been submitted but has not finished.
	StatePending State = iota
	// StateLoaded means the pixels are decoded and waiting to be applied.
	StateLoaded
	// StateApplied means Apply has consumed the pixels. Terminal.
	StateApplied
	// StateFailed means the load failed; Err holds the reason. Terminal.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle is a future for one texture load.
// It moves pending -> loaded -> applied, or pending -> failed, and never backwards.
type Handle struct {
	name string
	done chan struct{}

	mu    sync.Mutex
	state State
	data  *common.TextureStagingData
	err   error
}

func newHandle(name string) *Handle {
	return &Handle{name: name, done: make(chan struct{})}
}

// Resolved returns a handle that is already loaded with data.
func Resolved(name string, data *common.TextureStagingData) *Handle {
	h := newHandle(name)
	h.resolve(data, nil)
	return h
}

// Failed returns a handle that has already failed with err.
func Failed(name string, err error) *Handle {
	h := newHandle(name)
	h.resolve(nil, err)
	return h
}

// Name returns the path the handle was loaded from.
func (h *Handle) Name() string {
	return h.name
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done is closed once the load has settled (loaded or failed).
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the load error, or nil if the load has not failed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Data returns the decoded pixels once loaded, nil before that or after a failure.
func (h *Handle) Data() *common.TextureStagingData {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.data
}

// Wait blocks until the load settles or ctx is done.
//
// Parameters:
//   - ctx: bounds the wait
//
// Returns:
//   - *common.TextureStagingData: the decoded pixels
//   - error: the load error, or ctx.Err() if the wait was cut short
func (h *Handle) Wait(ctx context.Context) (*common.TextureStagingData, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.data, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Apply hands the decoded pixels to fn and moves the handle to applied.
// fn runs at most once over the lifetime of the handle, and only from the loaded state.
//
// Parameters:
//   - fn: consumer of the decoded pixels
//
// Returns:
//   - bool: true if fn was called by this invocation
func (h *Handle) Apply(fn func(*common.TextureStagingData)) bool {
	h.mu.Lock()
	if h.state != StateLoaded {
		h.mu.Unlock()
		return false
	}
	h.state = StateApplied
	data := h.data
	h.mu.Unlock()

	fn(data)
	return true
}

// resolve settles the handle. Only the first call has any effect.
func (h *Handle) resolve(data *common.TextureStagingData, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePending {
		return
	}
	if err != nil {
		h.state = StateFailed
		h.err = err
	} else {
		h.state = StateLoaded
		h.data = data
	}
	close(h.done)
}
