package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	mu            sync.Mutex
	width, height int
	resizes       int
	renders       int
	fail          bool
	panicOnRender bool
	lastRoughness float32
	colorMapSet   bool
	normalMapSet  bool
}

func (r *fakeRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.resizes++
}

func (r *fakeRenderer) Render(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panicOnRender {
		panic("surface lost")
	}
	r.renders++
	for _, m := range s.Meshes() {
		mat := m.Material()
		r.lastRoughness = mat.Params().Roughness
		r.colorMapSet = mat.Map(material.MapColor) != nil
		r.normalMapSet = mat.Map(material.MapNormal) != nil
	}
	if r.fail {
		return errors.New("surface outdated")
	}
	return nil
}

type harness struct {
	t      *testing.T
	eng    Engine
	src    *ManualFrameSource
	r      *fakeRenderer
	scene  scene.Scene
	mesh   mesh.Mesh
	cam    camera.Camera
	done   chan struct{}
	errCh  chan error
	cancel context.CancelFunc
}

func newHarness(t *testing.T, mat material.Material) *harness {
	t.Helper()
	ctrl := camera.NewOrbitController(common.V3(0, 0, 5), common.V3(0, 0, 0))
	cam := camera.NewCamera(camera.WithAspect(16.0/9.0), camera.WithController(ctrl))
	s := scene.NewScene(scene.WithCamera(cam))
	if mat == nil {
		mat = material.NewMaterial()
	}
	m := mesh.NewMesh(mesh.WithMaterial(mat))
	s.Add(m)

	h := &harness{
		t:     t,
		src:   NewManualFrameSource(),
		r:     &fakeRenderer{},
		scene: s,
		mesh:  m,
		cam:   cam,
		done:  make(chan struct{}, 64),
		errCh: make(chan error, 1),
	}
	h.eng = NewEngine(s, h.r,
		WithFrameSource(h.src),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithFrameCallback(func(float32) { h.done <- struct{}{} }),
	)
	return h
}

func (h *harness) start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.errCh <- h.eng.Run(ctx) }()
}

func (h *harness) step() {
	h.t.Helper()
	require.True(h.t, h.src.Tick(16*time.Millisecond))
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		h.t.Fatal("frame did not complete")
	}
}

func (h *harness) stop() error {
	h.cancel()
	select {
	case err := <-h.errCh:
		return err
	case <-time.After(2 * time.Second):
		h.t.Fatal("loop did not stop")
		return nil
	}
}

func TestRunLifecycle(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, LoopIdle, h.eng.State())

	h.start()
	h.step()
	assert.Equal(t, LoopRunning, h.eng.State())
	assert.ErrorIs(t, h.eng.Run(context.Background()), ErrAlreadyRunning)

	require.NoError(t, h.stop())
	assert.Equal(t, LoopStopped, h.eng.State())
	assert.Equal(t, uint64(1), h.eng.Frames())
	assert.ErrorIs(t, h.eng.Run(context.Background()), ErrAlreadyRunning)
	assert.False(t, h.src.Tick(time.Millisecond))
}

func TestQuitStopsLoop(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	h.step()
	h.eng.Quit()
	h.eng.Quit()
	select {
	case err := <-h.errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, LoopStopped, h.eng.State())
}

func TestPostedWorkIsVisibleInNextFrame(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	defer h.stop()

	var order []int
	h.eng.Post(func() { order = append(order, 1) })
	h.eng.Post(func() {
		order = append(order, 2)
		h.mesh.Material().Params().Roughness = 0.42
	})
	h.eng.Post(nil)
	h.step()

	assert.Equal(t, []int{1, 2}, order)
	h.r.mu.Lock()
	assert.Equal(t, float32(0.42), h.r.lastRoughness)
	h.r.mu.Unlock()
}

func TestResizeChangesOnlyAspectAndSurface(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	defer h.stop()
	h.step()

	ctrl := h.cam.Controller()
	view := h.cam.ViewMatrix()
	fov, near, far := h.cam.Fov(), h.cam.Near(), h.cam.Far()
	px, py, pz := ctrl.Position()
	pos, rot, scale := *h.mesh.Position(), *h.mesh.Rotation(), *h.mesh.Scale()
	params := *h.mesh.Material().Params()

	h.eng.Resize(800, 400)
	h.eng.Resize(0, 300)
	h.step()

	h.r.mu.Lock()
	assert.Equal(t, 800, h.r.width)
	assert.Equal(t, 400, h.r.height)
	assert.Equal(t, 1, h.r.resizes)
	h.r.mu.Unlock()
	assert.Equal(t, float32(2), h.cam.Aspect())
	assert.Equal(t, float32(400), ctrl.ViewportHeight())

	assert.Equal(t, view, h.cam.ViewMatrix())
	assert.Equal(t, fov, h.cam.Fov())
	assert.Equal(t, near, h.cam.Near())
	assert.Equal(t, far, h.cam.Far())
	x, y, z := ctrl.Position()
	assert.Equal(t, [3]float32{px, py, pz}, [3]float32{x, y, z})
	assert.Equal(t, pos, *h.mesh.Position())
	assert.Equal(t, rot, *h.mesh.Rotation())
	assert.Equal(t, scale, *h.mesh.Scale())
	assert.Equal(t, params, *h.mesh.Material().Params())
}

func TestFailedTextureStillRenders(t *testing.T) {
	mat := material.NewMaterial(
		material.WithMap(material.MapColor, texture.Resolved("color.jpg", common.SolidTexture(200, 100, 50, 255))),
		material.WithMap(material.MapNormal, texture.Failed("normal.jpg", errors.New("decode failed"))),
	)
	h := newHarness(t, mat)
	h.start()
	defer h.stop()

	h.step()
	h.step()

	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	assert.Equal(t, 2, h.r.renders)
	assert.True(t, h.r.colorMapSet)
	assert.False(t, h.r.normalMapSet)
}

func TestRenderErrorsAreCounted(t *testing.T) {
	h := newHarness(t, nil)
	h.r.fail = true
	h.start()
	defer h.stop()

	h.step()
	h.step()
	assert.Equal(t, uint64(2), h.eng.RenderErrors())
	assert.Equal(t, uint64(2), h.eng.Frames())
	assert.Equal(t, LoopRunning, h.eng.State())
}

func TestPanicStopsLoop(t *testing.T) {
	h := newHarness(t, nil)
	h.r.panicOnRender = true
	h.start()

	require.True(t, h.src.Tick(16*time.Millisecond))
	select {
	case err := <-h.errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "surface lost")
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, LoopStopped, h.eng.State())
}

func TestDragInertiaRunsThroughLoop(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	defer h.stop()

	ctrl := h.cam.Controller()
	start := ctrl.Azimuth()
	h.eng.Post(func() { ctrl.Rotate(100, 0) })
	h.step()
	first := ctrl.Azimuth()
	assert.Less(t, first, start)

	h.step()
	assert.Less(t, ctrl.Azimuth(), first)
}

func TestTickerFrameSource(t *testing.T) {
	fs := NewTickerFrameSource(1000)
	defer fs.Stop()
	select {
	case <-fs.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
}

func TestLoopStateString(t *testing.T) {
	assert.Equal(t, "idle", LoopIdle.String())
	assert.Equal(t, "running", LoopRunning.String())
	assert.Equal(t, "stopped", LoopStopped.String())
}
