package mesh

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the mesh's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the mesh's vertex data.
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - MeshBuilderOption: a function that applies the geometry option to a mesh
func WithGeometry(g *geometry.Geometry) MeshBuilderOption {
	return func(m *mesh) {
		m.geometry = g
	}
}

// WithMaterial is an option builder that sets the mesh's material.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - MeshBuilderOption: a function that applies the material option to a mesh
func WithMaterial(mat material.Material) MeshBuilderOption {
	return func(m *mesh) {
		m.material = mat
	}
}

// WithPosition is an option builder that sets the initial position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: a function that applies the position option to a mesh
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.position.Set(x, y, z)
	}
}

// WithRotation is an option builder that sets the initial XYZ Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - MeshBuilderOption: a function that applies the rotation option to a mesh
func WithRotation(rx, ry, rz float32) MeshBuilderOption {
	return func(m *mesh) {
		m.rotation.Set(rx, ry, rz)
	}
}

// WithScale is an option builder that sets the initial scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - MeshBuilderOption: a function that applies the scale option to a mesh
func WithScale(sx, sy, sz float32) MeshBuilderOption {
	return func(m *mesh) {
		m.scale.Set(sx, sy, sz)
	}
}

// WithEnabled is an option builder that sets whether the mesh starts enabled.
//
// Parameters:
//   - enabled: true to draw the mesh
//
// Returns:
//   - MeshBuilderOption: a function that applies the enabled option to a mesh
func WithEnabled(enabled bool) MeshBuilderOption {
	return func(m *mesh) {
		m.enabled.Store(enabled)
	}
}
