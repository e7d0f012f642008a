package app

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/panel"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader settles every load immediately; names listed in fail settle as failed.
type fakeLoader struct {
	mu    sync.Mutex
	loads []string
	fail  map[string]bool
}

func (f *fakeLoader) Load(name string) *texture.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, name)
	if f.fail[name] {
		return texture.Failed(name, errors.New("decode failed"))
	}
	return texture.Resolved(name, common.SolidTexture(10, 20, 30, 255))
}

func (f *fakeLoader) Pending() int { return 0 }
func (f *fakeLoader) Close()       {}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func build(t *testing.T, loader texture.Loader) *Context {
	t.Helper()
	c, err := Build(config.Default(), loader, WithLogger(quietLogger()))
	require.NoError(t, err)
	return c
}

func TestBuildDefaultScene(t *testing.T) {
	loader := &fakeLoader{}
	c := build(t, loader)

	assert.Equal(t, 1, c.Scene.CountKind(scene.KindMesh))
	assert.Equal(t, 4, c.Scene.CountKind(scene.KindLight))
	assert.Equal(t, 3, c.Scene.CountKind(scene.KindHelper))
	assert.Equal(t, 8, c.Scene.Count())
	assert.Len(t, c.Lights, 4)
	assert.Len(t, c.Helpers, 3)

	kinds := []light.LightType{light.LightTypeDirectional, light.LightTypeAmbient, light.LightTypeDirectional, light.LightTypePoint}
	for i, l := range c.Lights {
		assert.Equal(t, kinds[i], l.Type())
	}
	assert.Equal(t, float32(3), c.Lights[0].Intensity())
	assert.Equal(t, common.V3(-5, -5, -5), c.Lights[3].Position())

	assert.Same(t, c.Camera, c.Scene.Camera())
	assert.InDelta(t, 1280.0/720.0, c.Camera.Aspect(), 1e-6)
	x, y, z := c.Controller.Position()
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 5, z, 1e-5)

	assert.Equal(t, []string{"text/color.jpg", "text/roughness.jpg", "text/normal.jpg"}, loader.loads)
	for _, slot := range material.MapSlots {
		require.NotNil(t, c.Material.Handle(slot), slot.String())
		assert.Nil(t, c.Material.Map(slot), "maps are applied by the render loop, not by Build")
	}
	assert.ElementsMatch(t, loader.loads, c.TextureNames())

	g := c.Mesh.Geometry()
	require.NotEmpty(t, g.Vertices)
	assert.Equal(t, material.DefaultParams(), *c.Material.Params())
}

func TestBuildPanelBindings(t *testing.T) {
	c := build(t, &fakeLoader{})

	folders := c.Panel.Folders()
	require.Len(t, folders, 2)
	assert.Equal(t, "Material", folders[0].Name())
	assert.Equal(t, "Mesh", folders[1].Name())
	assert.True(t, folders[0].Open())
	assert.True(t, folders[1].Open())

	labels := func(f *panel.Folder) []string {
		var out []string
		for _, b := range f.Bindings() {
			out = append(out, b.Label())
		}
		return out
	}
	assert.Equal(t, []string{"roughness", "metalness", "wireframe", "transparent", "opacity", "normalScale"}, labels(folders[0]))
	assert.Equal(t, []string{
		"position.x", "position.y", "position.z",
		"rotation.x", "rotation.y", "rotation.z",
		"scale.x", "scale.y", "scale.z",
	}, labels(folders[1]))

	lo, hi, ok := folders[0].Bindings()[5].Range()
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)
	assert.Equal(t, 0.01, folders[0].Bindings()[5].Step())
	assert.Equal(t, panel.KindBool, folders[0].Bindings()[2].Kind())
}

func TestBuildUsesFramebufferViewport(t *testing.T) {
	c, err := Build(config.Default(), &fakeLoader{}, WithLogger(quietLogger()), WithViewport(2560, 1600))
	require.NoError(t, err)
	assert.InDelta(t, 2560.0/1600.0, c.Camera.Aspect(), 1e-6)
	assert.Equal(t, float32(1600), c.Controller.ViewportHeight())

	c, err = Build(config.Default(), &fakeLoader{}, WithLogger(quietLogger()), WithViewport(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1280.0/720.0, c.Camera.Aspect(), 1e-6)
	assert.Equal(t, float32(720), c.Controller.ViewportHeight())
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	cfg := config.Default()
	cfg.Box.Width = 0
	_, err := Build(cfg, &fakeLoader{})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = Build(config.Default(), nil)
	assert.ErrorIs(t, err, ErrNoLoader)
}

func TestBuildWithoutHelpers(t *testing.T) {
	cfg := config.Default()
	for i := range cfg.Lights {
		cfg.Lights[i].Helper = false
	}
	c, err := Build(cfg, &fakeLoader{}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Zero(t, c.Scene.CountKind(scene.KindHelper))
	assert.Empty(t, c.Helpers)
}

// Every value inside a binding's range lands in the bound field unchanged.
func TestPanelSetStoresInRangeValues(t *testing.T) {
	c := build(t, &fakeLoader{})
	fields := map[string]*float32{
		"roughness":   &c.Material.Params().Roughness,
		"metalness":   &c.Material.Params().Metalness,
		"opacity":     &c.Material.Params().Opacity,
		"normalScale": &c.Material.Params().NormalScale,
		"position.x":  &c.Mesh.Position().X,
		"rotation.y":  &c.Mesh.Rotation().Y,
		"scale.z":     &c.Mesh.Scale().Z,
	}
	for _, f := range c.Panel.Folders() {
		for _, b := range f.Bindings() {
			field, ok := fields[b.Label()]
			if !ok {
				continue
			}
			lo, hi, _ := b.Range()
			for _, v := range []float64{lo, hi, lo + (hi-lo)*0.37} {
				b.Set(v)
				assert.Equal(t, float32(v), *field, "%s = %v", b.Label(), v)
			}
		}
	}
}

func TestWireframeRoundTripKeepsScalars(t *testing.T) {
	c := build(t, &fakeLoader{})
	params := c.Material.Params()
	params.Roughness, params.Metalness, params.Opacity = 0.25, 0.75, 0.5
	before := *params

	wire := c.Panel.Folder("Material").Bindings()[2]
	require.Equal(t, "wireframe", wire.Label())
	wire.Toggle()
	assert.True(t, params.Wireframe)
	wire.Toggle()
	assert.Equal(t, before, *params)
}

func TestFailedTextureLeavesMapUnset(t *testing.T) {
	loader := &fakeLoader{fail: map[string]bool{"text/normal.jpg": true}}
	c := build(t, loader)

	assert.Equal(t, 2, c.Scene.ApplyTextures())
	assert.NotNil(t, c.Material.Map(material.MapColor))
	assert.NotNil(t, c.Material.Map(material.MapRoughness))
	assert.Nil(t, c.Material.Map(material.MapNormal))
	assert.Equal(t, texture.StateFailed, c.Material.Handle(material.MapNormal).State())
}

func TestReloadTexture(t *testing.T) {
	loader := &fakeLoader{}
	c := build(t, loader)
	c.Scene.ApplyTextures()
	first := c.Material.MapVersion(material.MapRoughness)

	assert.True(t, c.ReloadTexture("text/roughness.jpg"))
	assert.Equal(t, "text/roughness.jpg", loader.loads[len(loader.loads)-1])
	assert.Equal(t, 1, c.Scene.ApplyTextures())
	assert.Greater(t, c.Material.MapVersion(material.MapRoughness), first)

	assert.False(t, c.ReloadTexture("text/unknown.jpg"))
}
