package renderer

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer/shaders"
	"github.com/cogentcore/webgpu/wgpu"
)

const linePipelineKey = "helper_lines"

// layoutDescriptor returns the fixed layout of one bind group. Every lit pipeline uses all three groups;
// the line pipeline only uses groupFrame.
func layoutDescriptor(g layoutGroup) wgpu.BindGroupLayoutDescriptor {
	stages := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	uniform := func(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: stages,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		}
	}
	texture := func(binding uint32) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		}
	}

	switch g {
	case groupFrame:
		var cu camera.GPUCameraUniform
		return wgpu.BindGroupLayoutDescriptor{
			Label: "Frame Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniform(0, uint64(cu.Size())),
				uniform(1, light.GPULightBlockSize),
			},
		}
	case groupObject:
		var mp material.GPUMaterialParams
		return wgpu.BindGroupLayoutDescriptor{
			Label: "Object Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniform(0, mesh.GPUObjectUniformSize),
				uniform(1, uint64(mp.Size())),
			},
		}
	case groupMaps:
		entries := []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		}}
		for _, slot := range material.MapSlots {
			entries = append(entries, texture(mapBinding(slot)))
		}
		return wgpu.BindGroupLayoutDescriptor{
			Label:   "Maps Layout",
			Entries: entries,
		}
	default:
		return wgpu.BindGroupLayoutDescriptor{}
	}
}

// mapBinding is the groupMaps binding of a material slot; binding 0 is the sampler.
func mapBinding(slot material.MapSlot) uint32 {
	return uint32(slot) + 1
}

func litVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: geometry.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
		},
	}
}

func lineVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: geometry.LineVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
		},
	}
}

// litPipelineKey names the lit pipeline variant for a material's wireframe and transparent flags.
func litPipelineKey(wireframe, transparent bool) string {
	key := "lit"
	if wireframe {
		key += "_wire"
	}
	if transparent {
		key += "_blend"
	}
	return key
}

// newLitPipeline describes a lit pipeline variant. Wireframe variants draw the edge index list as lines;
// transparent variants blend and leave the depth buffer untouched.
func newLitPipeline(wireframe, transparent bool) pipeline.Pipeline {
	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithShader(shaders.Lit, "vs_main", "fs_main"),
		pipeline.WithVertexLayouts(litVertexLayout()),
		pipeline.WithBindGroupCount(int(layoutGroupCount)),
		pipeline.WithBlendEnabled(transparent),
		pipeline.WithDepthWriteEnabled(!transparent),
	}
	if wireframe {
		opts = append(opts,
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
			pipeline.WithCullMode(wgpu.CullModeNone),
		)
	}
	return pipeline.NewPipeline(litPipelineKey(wireframe, transparent), opts...)
}

func newLinePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(linePipelineKey,
		pipeline.WithShader(shaders.Line, "vs_main", "fs_main"),
		pipeline.WithVertexLayouts(lineVertexLayout()),
		pipeline.WithBindGroupCount(1),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
}
