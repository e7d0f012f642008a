// Package renderer draws a scene with WebGPU: lit meshes with their material maps, then light helper lines.
package renderer

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoCamera is returned by Render when the scene has no camera.
var ErrNoCamera = errors.New("scene has no camera")

// minLineCapacity is the smallest helper line buffer, in vertices.
const minLineCapacity = 64

// meshResources are the GPU resources the renderer keeps for one scene mesh.
type meshResources struct {
	geometry *geometry.Geometry

	solid  bind_group_provider.BindGroupProvider
	wire   bind_group_provider.BindGroupProvider
	object bind_group_provider.BindGroupProvider
	maps   bind_group_provider.BindGroupProvider

	// mapVersions are the material map versions last uploaded; mapsReady is false until the first upload.
	mapVersions [len(material.MapSlots)]uint64
	mapsReady   bool
}

func (m *meshResources) release() {
	for _, p := range []bind_group_provider.BindGroupProvider{m.solid, m.wire, m.object, m.maps} {
		if p != nil {
			p.Release()
		}
	}
}

// draw is one indexed draw queued for the current frame.
type draw struct {
	pipelineKey string
	transparent bool
	// distance from the camera, used to order transparent draws back to front
	distance float32
	res      *meshResources
	buffers  bind_group_provider.BindGroupProvider
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	logger  *slog.Logger

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [3]float64

	pipelineCache map[string]pipeline.Pipeline
	frame         bind_group_provider.BindGroupProvider
	samplers      bind_group_provider.BindGroupProvider
	lines         bind_group_provider.BindGroupProvider
	lineCapacity  int
	meshes        map[uint64]*meshResources
}

// Renderer draws a scene.Scene to a window surface.
//
// Every call must come from the goroutine that runs the render loop. Render uploads whatever changed since
// the previous frame (transforms, material parameters, newly applied texture maps), draws opaque meshes,
// then transparent meshes back to front, then light helpers.
type Renderer interface {
	// Resize reconfigures the surface for a new size. A zero or negative size pauses drawing until the next
	// valid size, which is what a minimized window reports.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Render draws one frame of the scene and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: ErrNoCamera, or an error from the GPU backend
	Render(s scene.Scene) error

	// PresentMode returns the active present mode.
	PresentMode() PresentMode

	// SetPresentMode switches the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Pipeline retrieves the cached Pipeline associated with the given key, or nil if not found.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// Release frees every GPU resource, including the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer for a window surface.
// The surface descriptor is platform-specific and is typically obtained from Window.SurfaceDescriptor().
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device is available, or a pipeline fails to build
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)
	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.msaa, r.clearColor)
	if err != nil {
		return nil, err
	}
	if err := r.setup(backend, width, height); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        slog.Default(),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    [3]float64{0.1, 0.1, 0.1},
		pipelineCache: make(map[string]pipeline.Pipeline),
		frame:         bind_group_provider.NewBindGroupProvider("Frame"),
		samplers:      bind_group_provider.NewBindGroupProvider("Samplers"),
		lines:         bind_group_provider.NewBindGroupProvider("Helper Lines"),
		meshes:        make(map[uint64]*meshResources),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// setup wires a backend: configures the surface, registers every pipeline variant and creates the frame
// uniforms and the shared map sampler.
func (r *renderer) setup(backend RendererBackend, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend = backend
	r.width, r.height = width, height
	backend.SetPresentMode(r.presentMode)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid initial surface size %dx%d", width, height)
	}
	if err := backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	pipelines := []pipeline.Pipeline{newLinePipeline()}
	for _, wireframe := range []bool{false, true} {
		for _, transparent := range []bool{false, true} {
			pipelines = append(pipelines, newLitPipeline(wireframe, transparent))
		}
	}
	for _, p := range pipelines {
		if err := backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	if err := backend.InitBindGroup(r.frame, groupFrame); err != nil {
		return fmt.Errorf("frame bind group: %w", err)
	}
	if err := backend.InitSampler(r.samplers, 0, common.DefaultSampler()); err != nil {
		return fmt.Errorf("map sampler: %w", err)
	}

	r.logger.Info("renderer ready",
		"width", width,
		"height", height,
		"present_mode", r.presentMode.String(),
		"msaa", uint32(r.msaa),
		"pipelines", len(r.pipelineCache),
	)
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 || r.backend == nil {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Warn("renderer resize failed", "width", width, "height", height, "error", err)
	}
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) PresentMode() PresentMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presentMode
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	if r.backend == nil {
		return
	}
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			r.logger.Warn("renderer present mode change failed", "mode", mode.String(), "error", err)
		}
	}
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Render(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil {
		return errors.New("renderer not initialized")
	}
	if s == nil {
		return errors.New("nil scene")
	}
	cam := s.Camera()
	if cam == nil {
		return ErrNoCamera
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	cu := cam.Uniform()
	lightBlock, _ := light.MarshalLights(s.Lights())
	writes := []bind_group_provider.BufferWrite{
		{Provider: r.frame, Binding: 0, Data: cu.Marshal()},
		{Provider: r.frame, Binding: 1, Data: lightBlock},
	}

	meshes := s.Meshes()
	draws := make([]draw, 0, len(meshes))
	live := make(map[uint64]struct{}, len(meshes))
	eye := common.V3(cu.CameraPosition[0], cu.CameraPosition[1], cu.CameraPosition[2])
	for _, m := range meshes {
		live[m.ID()] = struct{}{}
		if !m.Enabled() {
			continue
		}
		d, err := r.prepareMesh(m, eye, &writes)
		if err != nil {
			return err
		}
		draws = append(draws, d)
	}
	r.prune(live)
	sortDraws(draws)

	lines := helperLines(s.Helpers())
	if err := r.ensureLineCapacity(len(lines)); err != nil {
		return err
	}

	r.backend.WriteBuffers(writes)
	if len(lines) > 0 {
		r.backend.WriteVertices(r.lines, geometry.MarshalLines(lines))
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, d := range draws {
		r.backend.DrawIndexed(r.pipelineCache[d.pipelineKey], d.buffers, []bind_group_provider.BindGroupProvider{r.frame, d.res.object, d.res.maps})
	}
	if len(lines) > 0 {
		r.backend.Draw(r.pipelineCache[linePipelineKey], r.lines, uint32(len(lines)), []bind_group_provider.BindGroupProvider{r.frame})
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

// prepareMesh makes sure the mesh's GPU resources exist and are current, stages its uniform writes and
// returns the draw for this frame.
func (r *renderer) prepareMesh(m mesh.Mesh, eye common.Vec3, writes *[]bind_group_provider.BufferWrite) (draw, error) {
	res, err := r.meshResources(m)
	if err != nil {
		return draw{}, err
	}
	mat := m.Material()
	params := mat.Params()

	buffers := res.solid
	if params.Wireframe {
		if res.wire == nil {
			wire := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Mesh %d Wireframe", m.ID()))
			indices := geometry.WireframeIndices(res.geometry.Indices)
			if err := r.backend.InitMeshBuffers(wire, geometry.MarshalVertices(res.geometry.Vertices), geometry.MarshalIndices(indices), len(indices)); err != nil {
				return draw{}, fmt.Errorf("mesh %d wireframe buffers: %w", m.ID(), err)
			}
			res.wire = wire
		}
		buffers = res.wire
	}

	if err := r.syncMaps(m.ID(), res, mat); err != nil {
		return draw{}, err
	}

	ou := mesh.ObjectUniform(m)
	mu := mat.Uniform()
	*writes = append(*writes,
		bind_group_provider.BufferWrite{Provider: res.object, Binding: 0, Data: ou.Marshal()},
		bind_group_provider.BufferWrite{Provider: res.object, Binding: 1, Data: mu.Marshal()},
	)

	pos := m.Position()
	return draw{
		pipelineKey: litPipelineKey(params.Wireframe, params.Transparent),
		transparent: params.Transparent,
		distance:    pos.Sub(eye).Length(),
		res:         res,
		buffers:     buffers,
	}, nil
}

// meshResources returns the resources for a mesh, creating them on first sight or when its geometry was swapped.
func (r *renderer) meshResources(m mesh.Mesh) (*meshResources, error) {
	g := m.Geometry()
	if res, ok := r.meshes[m.ID()]; ok {
		if res.geometry == g {
			return res, nil
		}
		res.release()
		delete(r.meshes, m.ID())
	}
	if g == nil || len(g.Indices) == 0 {
		return nil, fmt.Errorf("mesh %d has no geometry", m.ID())
	}

	label := fmt.Sprintf("Mesh %d", m.ID())
	res := &meshResources{
		geometry: g,
		solid:    bind_group_provider.NewBindGroupProvider(label),
		object:   bind_group_provider.NewBindGroupProvider(label + " Object"),
		maps: bind_group_provider.NewBindGroupProvider(label+" Maps",
			bind_group_provider.WithSampler(0, r.samplers.Sampler(0)),
		),
	}
	if err := r.backend.InitMeshBuffers(res.solid, geometry.MarshalVertices(g.Vertices), geometry.MarshalIndices(g.Indices), len(g.Indices)); err != nil {
		res.release()
		return nil, fmt.Errorf("%s buffers: %w", label, err)
	}
	if err := r.backend.InitBindGroup(res.object, groupObject); err != nil {
		res.release()
		return nil, fmt.Errorf("%s object bind group: %w", label, err)
	}
	r.meshes[m.ID()] = res
	r.logger.Debug("renderer uploaded mesh", "id", m.ID(), "name", m.Name(), "vertices", len(g.Vertices), "indices", len(g.Indices))
	return res, nil
}

// syncMaps re-uploads every material map whose version moved since the last upload and rebuilds the maps
// bind group. Unset maps, and maps whose upload fails, are bound to a neutral 1x1 fallback.
func (r *renderer) syncMaps(id uint64, res *meshResources, mat material.Material) error {
	dirty := false
	for i, slot := range material.MapSlots {
		version := mat.MapVersion(slot)
		if res.mapsReady && version == res.mapVersions[i] {
			continue
		}
		binding := int(mapBinding(slot))
		srgb := slot == material.MapColor
		data := mapOrFallback(mat.Map(slot), slot)
		if err := r.backend.InitTextureView(res.maps, binding, *data, srgb); err != nil {
			r.logger.Warn("renderer map upload failed, using fallback", "id", id, "slot", slot.String(), "error", err)
			if err := r.backend.InitTextureView(res.maps, binding, *fallbackMap(slot), srgb); err != nil {
				return fmt.Errorf("mesh %d %s fallback map: %w", id, slot, err)
			}
		} else if data != fallbackMap(slot) {
			r.logger.Debug("renderer uploaded map", "id", id, "slot", slot.String(), "width", data.Width, "height", data.Height)
		}
		res.mapVersions[i] = version
		dirty = true
	}
	res.mapsReady = true
	if !dirty {
		return nil
	}
	if err := r.backend.InitBindGroup(res.maps, groupMaps); err != nil {
		return fmt.Errorf("mesh %d maps bind group: %w", id, err)
	}
	return nil
}

func (r *renderer) ensureLineCapacity(n int) error {
	if n <= r.lineCapacity {
		return nil
	}
	capacity := max(n, 2*r.lineCapacity, minLineCapacity)
	if err := r.backend.InitVertexBuffer(r.lines, uint64(capacity*geometry.LineVertexSize)); err != nil {
		return fmt.Errorf("helper line buffer: %w", err)
	}
	r.lineCapacity = capacity
	return nil
}

// prune releases the resources of meshes no longer in the scene.
func (r *renderer) prune(live map[uint64]struct{}) {
	for id, res := range r.meshes {
		if _, ok := live[id]; ok {
			continue
		}
		res.release()
		delete(r.meshes, id)
		r.logger.Debug("renderer released mesh", "id", id)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, res := range r.meshes {
		res.release()
		delete(r.meshes, id)
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.frame.Release()
	r.lines.Release()
	r.lineCapacity = 0
	if s := r.samplers.Sampler(0); s != nil {
		s.Release()
	}
	r.samplers.Release()
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

var fallbackMaps = [len(material.MapSlots)]*common.TextureStagingData{
	material.MapColor:     common.SolidTexture(255, 255, 255, 255),
	material.MapRoughness: common.SolidTexture(255, 255, 255, 255),
	material.MapNormal:    common.SolidTexture(128, 128, 255, 255),
}

// fallbackMap is the neutral texture for a slot: white albedo, full roughness, flat normal.
func fallbackMap(slot material.MapSlot) *common.TextureStagingData {
	return fallbackMaps[slot]
}

func mapOrFallback(data *common.TextureStagingData, slot material.MapSlot) *common.TextureStagingData {
	if data.Valid() {
		return data
	}
	return fallbackMap(slot)
}

// sortDraws keeps opaque draws in scene order ahead of transparent ones, which are ordered back to front.
func sortDraws(draws []draw) {
	slices.SortStableFunc(draws, func(a, b draw) int {
		switch {
		case a.transparent != b.transparent:
			if a.transparent {
				return 1
			}
			return -1
		case a.transparent:
			return cmp.Compare(b.distance, a.distance)
		default:
			return 0
		}
	})
}

// helperLines concatenates every helper's line list.
func helperLines(helpers []*light.Helper) []geometry.LineVertex {
	var out []geometry.LineVertex
	for _, h := range helpers {
		if h == nil {
			continue
		}
		out = append(out, h.Lines()...)
	}
	return out
}
