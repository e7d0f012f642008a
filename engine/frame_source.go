package engine

import (
	"sync"
	"time"
)

// FrameSource paces the render loop. Each value received from C starts one frame.
type FrameSource interface {
	// C returns the channel that delivers frame signals.
	C() <-chan time.Time

	// Stop releases the source. No further signals are delivered.
	Stop()
}

type tickerFrameSource struct {
	ticker *time.Ticker
}

var _ FrameSource = &tickerFrameSource{}

// NewTickerFrameSource creates a FrameSource that fires fps times per second.
// Values <= 0 are treated as 60.
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - FrameSource: the ticker-backed source
func NewTickerFrameSource(fps float64) FrameSource {
	if fps <= 0 {
		fps = 60
	}
	return &tickerFrameSource{ticker: time.NewTicker(time.Duration(float64(time.Second) / fps))}
}

func (t *tickerFrameSource) C() <-chan time.Time {
	return t.ticker.C
}

func (t *tickerFrameSource) Stop() {
	t.ticker.Stop()
}

// ManualFrameSource delivers a frame signal only when Tick is called. Used for headless stepping and tests.
type ManualFrameSource struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
	now      time.Time
}

var _ FrameSource = &ManualFrameSource{}

// NewManualFrameSource creates a ManualFrameSource whose clock starts at the current time.
func NewManualFrameSource() *ManualFrameSource {
	return &ManualFrameSource{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
		now:     time.Now(),
	}
}

func (m *ManualFrameSource) C() <-chan time.Time {
	return m.ch
}

func (m *ManualFrameSource) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopped)
	})
}

// Tick advances the clock by dt and blocks until the loop accepts the signal.
// Because the loop only receives between frames, a second Tick returns after the first frame is done.
//
// Parameters:
//   - dt: the simulated frame duration
//
// Returns:
//   - bool: false if the source was stopped before the signal was accepted
func (m *ManualFrameSource) Tick(dt time.Duration) bool {
	m.now = m.now.Add(dt)
	select {
	case m.ch <- m.now:
		return true
	case <-m.stopped:
		return false
	}
}
