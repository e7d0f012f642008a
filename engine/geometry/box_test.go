package geometry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(a [3]float32) common.Vec3 {
	return common.V3(a[0], a[1], a[2])
}

func TestBoxCounts(t *testing.T) {
	g := Box(3, 1.8, 2)
	assert.Len(t, g.Vertices, 24)
	assert.Len(t, g.Indices, 36)
	for _, idx := range g.Indices {
		assert.Less(t, idx, uint32(len(g.Vertices)))
	}
}

func TestBoxExtents(t *testing.T) {
	g := Box(3, 1.8, 2)
	var lo, hi common.Vec3
	for _, v := range g.Vertices {
		p := vec(v.Position)
		lo = common.V3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = common.V3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	assert.InDelta(t, -1.5, lo.X, 1e-6)
	assert.InDelta(t, 1.5, hi.X, 1e-6)
	assert.InDelta(t, -0.9, lo.Y, 1e-6)
	assert.InDelta(t, 0.9, hi.Y, 1e-6)
	assert.InDelta(t, -1, lo.Z, 1e-6)
	assert.InDelta(t, 1, hi.Z, 1e-6)
}

func TestBoxWindingMatchesNormals(t *testing.T) {
	g := Box(3, 1.8, 2)
	for i := 0; i < len(g.Indices); i += 3 {
		a := vec(g.Vertices[g.Indices[i]].Position)
		b := vec(g.Vertices[g.Indices[i+1]].Position)
		c := vec(g.Vertices[g.Indices[i+2]].Position)
		n := vec(g.Vertices[g.Indices[i]].Normal)

		face := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.InDelta(t, 1, face.Dot(n), 1e-5, "triangle %d winds away from its normal", i/3)
	}
}

func TestBoxUVsAndTangents(t *testing.T) {
	g := Box(1, 1, 1)
	for _, v := range g.Vertices {
		assert.GreaterOrEqual(t, v.TexCoord[0], float32(0))
		assert.LessOrEqual(t, v.TexCoord[0], float32(1))
		assert.GreaterOrEqual(t, v.TexCoord[1], float32(0))
		assert.LessOrEqual(t, v.TexCoord[1], float32(1))

		tangent := common.V3(v.Tangent[0], v.Tangent[1], v.Tangent[2])
		assert.InDelta(t, 0, tangent.Dot(vec(v.Normal)), 1e-6)
		assert.Equal(t, float32(1), v.Tangent[3])
	}
}

func TestWireframeIndices(t *testing.T) {
	g := Box(1, 1, 1)
	lines := WireframeIndices(g.Indices)
	// Four sides and one diagonal per face; faces share no vertices.
	require.Len(t, lines, 6*5*2)

	seen := map[[2]uint32]bool{}
	for i := 0; i < len(lines); i += 2 {
		e := [2]uint32{lines[i], lines[i+1]}
		assert.Less(t, e[0], e[1])
		assert.False(t, seen[e], "edge %v repeated", e)
		seen[e] = true
	}
}

func TestMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}}
	assert.Equal(t, GPUVertexSize, v.Size())
	assert.Len(t, v.Marshal(), GPUVertexSize)

	g := Box(1, 1, 1)
	assert.Len(t, MarshalVertices(g.Vertices), 24*GPUVertexSize)
	assert.Len(t, MarshalIndices(g.Indices), 36*4)

	l := []LineVertex{{}, {}}
	assert.Len(t, MarshalLines(l), 2*LineVertexSize)
}
