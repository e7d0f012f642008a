// Package mesh provides drawable objects: box geometry paired with a material and an editable transform.
package mesh

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
)

type mesh struct {
	id       uint64
	enabled  atomic.Bool
	name     string
	geometry *geometry.Geometry
	material material.Material

	position common.Vec3
	rotation common.Vec3
	scale    common.Vec3
}

// Mesh defines the interface for a drawable scene entity.
// Position, rotation and scale are exposed as pointers into the mesh so the parameter panel can edit them in place;
// the model matrix is rebuilt from them on every read.
type Mesh interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this mesh is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the mesh is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Name returns the mesh's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Geometry returns the mesh's vertex data.
	//
	// Returns:
	//   - *geometry.Geometry: the geometry, never nil for meshes built with NewMesh
	Geometry() *geometry.Geometry

	// Material returns the mesh's material.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Position returns the live translation vector.
	//
	// Returns:
	//   - *common.Vec3: pointer to the position
	Position() *common.Vec3

	// Rotation returns the live XYZ Euler rotation in radians.
	//
	// Returns:
	//   - *common.Vec3: pointer to the rotation
	Rotation() *common.Vec3

	// Scale returns the live scale vector.
	//
	// Returns:
	//   - *common.Vec3: pointer to the scale
	Scale() *common.Vec3

	// ModelMatrix builds the model matrix from the current transform.
	//
	// Returns:
	//   - [16]float32: column-major model matrix
	ModelMatrix() [16]float32
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh configured with the provided options.
// Without WithGeometry the mesh is a unit box; without WithMaterial it gets a default material.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: a new Mesh instance
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{
		scale: common.V3(1, 1, 1),
	}
	m.enabled.Store(true)
	for _, opt := range options {
		opt(m)
	}
	if m.geometry == nil {
		m.geometry = geometry.Box(1, 1, 1)
	}
	if m.material == nil {
		m.material = material.NewMaterial()
	}
	return m
}

func (m *mesh) ID() uint64 {
	return m.id
}

func (m *mesh) SetID(id uint64) {
	m.id = id
}

func (m *mesh) Enabled() bool {
	return m.enabled.Load()
}

func (m *mesh) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Geometry() *geometry.Geometry {
	return m.geometry
}

func (m *mesh) Material() material.Material {
	return m.material
}

func (m *mesh) Position() *common.Vec3 {
	return &m.position
}

func (m *mesh) Rotation() *common.Vec3 {
	return &m.rotation
}

func (m *mesh) Scale() *common.Vec3 {
	return &m.scale
}

func (m *mesh) ModelMatrix() [16]float32 {
	var out [16]float32
	common.BuildModelMatrix(out[:], m.position, m.rotation, m.scale)
	return out
}
