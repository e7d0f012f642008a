package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshDefaults(t *testing.T) {
	m := NewMesh()
	require.NotNil(t, m.Geometry())
	require.NotNil(t, m.Material())
	assert.True(t, m.Enabled())
	assert.Equal(t, common.V3(1, 1, 1), *m.Scale())
	assert.Equal(t, common.Vec3{}, *m.Position())

	var id [16]float32
	common.Identity(id[:])
	assert.Equal(t, id, m.ModelMatrix())
}

func TestNewMeshOptions(t *testing.T) {
	mat := material.NewMaterial(material.WithName("box"))
	g := geometry.Box(3, 1.8, 2)
	m := NewMesh(
		WithName("box"),
		WithGeometry(g),
		WithMaterial(mat),
		WithPosition(1, 2, 3),
		WithRotation(0.1, 0.2, 0.3),
		WithScale(2, 2, 2),
		WithEnabled(false),
	)
	assert.Equal(t, "box", m.Name())
	assert.Same(t, g, m.Geometry())
	assert.Equal(t, mat, m.Material())
	assert.Equal(t, common.V3(1, 2, 3), *m.Position())
	assert.Equal(t, common.V3(0.1, 0.2, 0.3), *m.Rotation())
	assert.False(t, m.Enabled())
}

func TestTransformPointersAreLive(t *testing.T) {
	m := NewMesh()
	m.Position().X = 4
	m.Scale().Y = 3

	mm := m.ModelMatrix()
	assert.Equal(t, float32(4), mm[12])
	assert.Equal(t, float32(3), mm[5])
}

func TestID(t *testing.T) {
	m := NewMesh()
	m.SetID(7)
	assert.Equal(t, uint64(7), m.ID())
}
