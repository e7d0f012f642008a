package texture

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLoadedThenApplied(t *testing.T) {
	data := common.SolidTexture(1, 2, 3, 4)
	h := newHandle("a.png")
	assert.Equal(t, StatePending, h.State())
	assert.False(t, h.Apply(func(*common.TextureStagingData) { t.Fatal("applied while pending") }))

	h.resolve(data, nil)
	assert.Equal(t, StateLoaded, h.State())
	select {
	case <-h.Done():
	default:
		t.Fatal("done not closed after resolve")
	}

	var got *common.TextureStagingData
	assert.True(t, h.Apply(func(d *common.TextureStagingData) { got = d }))
	assert.Same(t, data, got)
	assert.Equal(t, StateApplied, h.State())

	assert.False(t, h.Apply(func(*common.TextureStagingData) { t.Fatal("applied twice") }))
}

func TestHandleApplyExactlyOnceConcurrent(t *testing.T) {
	h := Resolved("a.png", common.SolidTexture(0, 0, 0, 0))

	var calls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Apply(func(*common.TextureStagingData) { calls.Add(1) })
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandleFailed(t *testing.T) {
	boom := errors.New("boom")
	h := Failed("a.png", boom)
	assert.Equal(t, StateFailed, h.State())
	assert.ErrorIs(t, h.Err(), boom)
	assert.Nil(t, h.Data())
	assert.False(t, h.Apply(func(*common.TextureStagingData) { t.Fatal("applied a failed handle") }))

	// A settled handle ignores further resolution.
	h.resolve(common.SolidTexture(0, 0, 0, 0), nil)
	assert.Equal(t, StateFailed, h.State())
}

func TestHandleWait(t *testing.T) {
	h := newHandle("a.png")
	go func() {
		time.Sleep(10 * time.Millisecond)
		h.resolve(common.SolidTexture(9, 9, 9, 9), nil)
	}()
	data, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9, 9}, data.Pixels)
}

func TestHandleWaitCancelled(t *testing.T) {
	h := newHandle("a.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatePending, h.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "applied", StateApplied.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
