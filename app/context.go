// Package app assembles the sandbox: the demo scene, its parameter panel and the input bindings that drive them.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/panel"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
	"github.com/chewxy/math32"
)

// ErrNoLoader is returned by Build when no texture loader is supplied.
var ErrNoLoader = errors.New("no texture loader")

// autoRotateSpeed matches three.js OrbitControls' default: one turn every 30 seconds at 60 fps.
const autoRotateSpeed = 2

// Context is everything Build creates. It replaces the demo's globals: the render loop owns it once the
// engine starts, and other goroutines reach it only through engine.Post.
type Context struct {
	Config     config.Config
	Scene      scene.Scene
	Camera     camera.Camera
	Controller camera.CameraController
	Mesh       mesh.Mesh
	Material   material.Material
	Lights     []light.Light
	Helpers    []*light.Helper
	Panel      panel.Panel

	loader   texture.Loader
	textures map[string]material.MapSlot
	logger   *slog.Logger

	viewportWidth, viewportHeight int
}

// Build creates the demo scene from cfg: a camera with an orbit controller, the configured lights and their
// helpers, and a box mesh with a standard material whose three maps start loading immediately.
// The loads are not awaited; the render loop applies each one as it completes.
//
// Parameters:
//   - cfg: the configuration, validated before anything is built
//   - loader: the texture loader the three material maps are requested from
//   - options: variadic list of BuildOption functions
//
// Returns:
//   - *Context: the assembled application
//   - error: a config.ErrInvalid wrapped error, ErrNoLoader, or a helper creation failure
func Build(cfg config.Config, loader texture.Loader, options ...BuildOption) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, ErrNoLoader
	}

	c := &Context{
		Config:   cfg,
		loader:   loader,
		textures: make(map[string]material.MapSlot, len(material.MapSlots)),
		logger:   slog.Default(),

		viewportWidth:  cfg.Window.Width,
		viewportHeight: cfg.Window.Height,
	}
	for _, opt := range options {
		opt(c)
	}

	c.buildCamera()
	c.Scene = scene.NewScene(scene.WithName("basic learning"), scene.WithCamera(c.Camera))

	for i, lc := range cfg.Lights {
		if err := c.addLight(lc); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	c.Material = material.NewMaterial(material.WithName("standard"))
	c.Mesh = mesh.NewMesh(
		mesh.WithName("box"),
		mesh.WithGeometry(geometry.Box(cfg.Box.Width, cfg.Box.Height, cfg.Box.Depth)),
		mesh.WithMaterial(c.Material),
	)
	c.Scene.Add(c.Mesh)

	names := [len(material.MapSlots)]string{
		material.MapColor:     cfg.Textures.Color,
		material.MapRoughness: cfg.Textures.Roughness,
		material.MapNormal:    cfg.Textures.Normal,
	}
	for _, slot := range material.MapSlots {
		c.textures[names[slot]] = slot
		c.Material.SetMap(slot, loader.Load(names[slot]))
	}

	c.buildPanel()

	c.logger.Info("scene built",
		"meshes", c.Scene.CountKind(scene.KindMesh),
		"lights", c.Scene.CountKind(scene.KindLight),
		"helpers", c.Scene.CountKind(scene.KindHelper),
	)
	return c, nil
}

func (c *Context) buildCamera() {
	cc := c.Config.Camera
	eye := common.V3(cc.Position[0], cc.Position[1], cc.Position[2])
	c.Controller = camera.NewOrbitController(eye, common.V3(0, 0, 0),
		camera.WithDamping(cc.Damping, cc.DampingFactor),
		camera.WithAutoRotate(cc.AutoRotate, autoRotateSpeed),
		camera.WithRotateSpeed(cc.RotateSpeed),
		camera.WithZoomScale(cc.ZoomScale),
		camera.WithPanSpeed(cc.PanSpeed),
		camera.WithViewportHeight(float32(c.viewportHeight)),
	)
	c.Camera = camera.NewCamera(
		camera.WithFov(cc.FOV*math32.Pi/180),
		camera.WithAspect(float32(c.viewportWidth)/float32(c.viewportHeight)),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
		camera.WithController(c.Controller),
	)
}

func (c *Context) addLight(lc config.Light) error {
	kind, ok := light.ParseLightType(lc.Kind)
	if !ok {
		return fmt.Errorf("%w: unknown light kind %q", config.ErrInvalid, lc.Kind)
	}
	l := light.NewLight(kind,
		light.WithColor(lc.Color[0], lc.Color[1], lc.Color[2]),
		light.WithIntensity(lc.Intensity),
		light.WithPosition(lc.Position[0], lc.Position[1], lc.Position[2]),
		light.WithTarget(0, 0, 0),
	)
	c.Scene.Add(l)
	c.Lights = append(c.Lights, l)

	if !lc.Helper {
		return nil
	}
	h, err := light.NewHelper(l, c.Config.HelperSize)
	if err != nil {
		return err
	}
	c.Scene.Add(h)
	c.Helpers = append(c.Helpers, h)
	return nil
}

// buildPanel binds the material parameters and the mesh transform.
func (c *Context) buildPanel() {
	c.Panel = panel.NewPanel(panel.WithTitle("Controls"), panel.WithLogger(c.logger))

	params := c.Material.Params()
	mat := c.Panel.AddFolder("Material")
	mat.Add(params, "roughness", panel.WithRange(0, 1), panel.WithStep(0.01))
	mat.Add(params, "metalness", panel.WithRange(0, 1), panel.WithStep(0.01))
	mat.Add(params, "wireframe")
	mat.Add(params, "transparent")
	mat.Add(params, "opacity", panel.WithRange(0, 1), panel.WithStep(0.01))
	mat.Add(params, "normalScale", panel.WithRange(0, 2), panel.WithStep(0.01))

	m := c.Panel.AddFolder("Mesh")
	transforms := []struct {
		name   string
		vec    *common.Vec3
		lo, hi float64
		step   float64
	}{
		{"position", c.Mesh.Position(), -10, 10, 0.1},
		{"rotation", c.Mesh.Rotation(), 0, 2 * math.Pi, 0.01},
		{"scale", c.Mesh.Scale(), 0.1, 5, 0.1},
	}
	for _, t := range transforms {
		for _, axis := range []string{"x", "y", "z"} {
			m.Add(t.vec, axis, panel.WithRange(t.lo, t.hi), panel.WithStep(t.step), panel.WithLabel(t.name+"."+axis))
		}
	}
}

// TextureNames returns the names of the three material maps, in no particular order.
func (c *Context) TextureNames() []string {
	names := make([]string, 0, len(c.textures))
	for name := range c.textures {
		names = append(names, name)
	}
	return names
}

// ReloadTexture starts a fresh load of a material map and attaches the new handle. The previous pixels stay
// bound until the new load is applied, and stay for good if it fails. Must run on the render goroutine.
//
// Parameters:
//   - name: one of TextureNames
//
// Returns:
//   - bool: false if name is not a material map
func (c *Context) ReloadTexture(name string) bool {
	slot, ok := c.textures[name]
	if !ok {
		return false
	}
	c.Material.SetMap(slot, c.loader.Load(name))
	c.logger.Info("texture reload requested", "slot", slot.String(), "name", name)
	return true
}
