package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{ id uint64 }

func (m *marker) ID() uint64      { return m.id }
func (m *marker) SetID(id uint64) { m.id = id }

func TestAddAssignsIDsInOrder(t *testing.T) {
	s := NewScene(WithName("main"))
	assert.Equal(t, "main", s.Name())

	m := mesh.NewMesh()
	l := light.NewLight(light.LightTypePoint)
	h, err := light.NewHelper(l, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), s.Add(m))
	assert.Equal(t, uint64(2), s.Add(l))
	assert.Equal(t, uint64(3), s.Add(h))
	assert.Equal(t, uint64(0), s.Add(nil))

	// Re-adding a member is a no-op.
	assert.Equal(t, uint64(1), s.Add(m))
	assert.Equal(t, 3, s.Count())

	objs := s.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, m, objs[0])
	assert.Equal(t, l, objs[1])
	assert.Equal(t, h, objs[2])
	assert.Equal(t, l, s.Get(2))
	assert.Nil(t, s.Get(99))
}

func TestCountKindAndFilters(t *testing.T) {
	s := NewScene()
	s.Add(mesh.NewMesh())
	for _, lt := range []light.LightType{light.LightTypeDirectional, light.LightTypeAmbient, light.LightTypeDirectional, light.LightTypePoint} {
		l := light.NewLight(lt)
		s.Add(l)
		if h, err := light.NewHelper(l, 1); err == nil {
			s.Add(h)
		}
	}
	s.Add(&marker{})

	assert.Equal(t, 1, s.CountKind(KindMesh))
	assert.Equal(t, 4, s.CountKind(KindLight))
	assert.Equal(t, 3, s.CountKind(KindHelper))
	assert.Equal(t, 1, s.CountKind(KindOther))
	assert.Len(t, s.Meshes(), 1)
	assert.Len(t, s.Lights(), 4)
	assert.Len(t, s.Helpers(), 3)
	assert.Equal(t, "helper", KindHelper.String())
}

func TestRemoveAndClear(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene(WithCamera(cam))
	a, b := s.Add(&marker{}), s.Add(&marker{})

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	require.Len(t, s.Objects(), 1)
	assert.Equal(t, b, s.Objects()[0].ID())

	// IDs are not reused.
	assert.Equal(t, uint64(3), s.Add(&marker{}))

	s.Clear()
	assert.Zero(t, s.Count())
	assert.Equal(t, cam, s.Camera())
}

func TestApplyTexturesSkipsFailures(t *testing.T) {
	mat := material.NewMaterial(
		material.WithMap(material.MapColor, texture.Resolved("color.jpg", common.SolidTexture(255, 255, 255, 255))),
		material.WithMap(material.MapNormal, texture.Failed("normal.jpg", errors.New("no such file"))),
	)
	s := NewScene()
	s.Add(mesh.NewMesh(mesh.WithMaterial(mat)))

	assert.Equal(t, 1, s.ApplyTextures())
	assert.Equal(t, 0, s.ApplyTextures())
	assert.NotNil(t, mat.Map(material.MapColor))
	assert.Nil(t, mat.Map(material.MapNormal))
}

func TestConcurrentAdd(t *testing.T) {
	s := NewScene()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(&marker{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Count())

	seen := map[uint64]bool{}
	for _, o := range s.Objects() {
		assert.False(t, seen[o.ID()])
		seen[o.ID()] = true
	}
}
