package renderer

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// layoutGroup identifies one of the fixed bind group layouts shared by every pipeline.
type layoutGroup int

const (
	// groupFrame holds the camera (binding 0) and light block (binding 1), written once per frame.
	groupFrame layoutGroup = iota
	// groupObject holds the object transform (binding 0) and material parameters (binding 1).
	groupObject
	// groupMaps holds the map sampler (binding 0) and the color, roughness and normal textures (bindings 1-3).
	groupMaps

	layoutGroupCount
)

func (g layoutGroup) String() string {
	switch g {
	case groupFrame:
		return "Frame"
	case groupObject:
		return "Object"
	case groupMaps:
		return "Maps"
	default:
		return "Unknown"
	}
}

// RendererBackend is the GPU API the renderer drives. The renderer decides what to draw and in which
// order; the backend owns the device and turns those decisions into GPU work.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and the MSAA and depth targets for a surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if any target could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the GPU pipeline for p against the first p.BindGroupCount() shared layouts
	// and stores it back on p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the shader module, layout or pipeline could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates vertex and index buffers from raw bytes and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffers on
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices in indexData
	//
	// Returns:
	//   - error: an error if either buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitVertexBuffer creates an empty, writable vertex buffer of the given size and stores it on the provider,
	// replacing any previous one.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffer on
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	InitVertexBuffer(provider bind_group_provider.BindGroupProvider, size uint64) error

	// InitTextureView uploads staging pixels into a new texture and stores it and its view on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the texture on
	//   - binding: the binding index of the texture
	//   - data: the RGBA pixels
	//   - srgb: true for color data, false for linear data such as roughness and normal maps
	//
	// Returns:
	//   - error: an error if the texture could not be created
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, data common.TextureStagingData, srgb bool) error

	// InitSampler creates a sampler and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the sampler on
	//   - binding: the binding index of the sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if the sampler could not be created
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// InitBindGroup builds the provider's bind group against one of the shared layouts. Missing uniform buffers
	// are created at their layout size; textures and samplers must already be on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the resources
	//   - group: the layout to build against
	//
	// Returns:
	//   - error: an error if a resource is missing or the bind group could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, group layoutGroup) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to perform, in order
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// WriteVertices writes raw bytes to the start of the provider's vertex buffer.
	//
	// Parameters:
	//   - provider: the BindGroupProvider whose vertex buffer is written
	//   - data: the bytes to write
	WriteVertices(provider bind_group_provider.BindGroupProvider, data []byte)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawIndexed encodes an indexed draw of the provider's mesh buffers.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at groups 0..n-1
	DrawIndexed(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// Draw encodes a non-indexed draw of the first vertexCount vertices of the provider's vertex buffer.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - vertexProvider: the provider holding the vertex buffer
	//   - vertexCount: the number of vertices to draw
	//   - bindGroups: providers whose bind groups are set at groups 0..n-1
	Draw(p pipeline.Pipeline, vertexProvider bind_group_provider.BindGroupProvider, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees the device, surface and render targets.
	Release()
}
