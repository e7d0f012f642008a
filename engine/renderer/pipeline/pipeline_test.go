package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("lit")
	assert.Equal(t, "lit", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.Equal(t, 1, p.BindGroupCount())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Nil(t, p.RenderPipeline())
	assert.NotNil(t, p.BlendState())
	p.Release()
}

func TestOptions(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 28, StepMode: wgpu.VertexStepModeVertex}
	p := NewPipeline("line",
		WithShader("// wgsl", "vert", "frag"),
		WithVertexLayouts(layout),
		WithBindGroupCount(3),
		WithBindGroupCount(0),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeNone),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
	)
	assert.Equal(t, "// wgsl", p.ShaderSource())
	assert.Equal(t, "vert", p.VertexEntryPoint())
	assert.Equal(t, "frag", p.FragmentEntryPoint())
	assert.Equal(t, []wgpu.VertexBufferLayout{layout}, p.VertexLayouts())
	assert.Equal(t, 3, p.BindGroupCount())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
}
