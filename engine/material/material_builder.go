package material

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithParams is an option builder that replaces the whole parameter block.
//
// Parameters:
//   - p: the initial parameters
//
// Returns:
//   - MaterialBuilderOption: a function that applies the parameters option to a material
func WithParams(p Params) MaterialBuilderOption {
	return func(m *material) {
		m.params = p
	}
}

// WithBaseColor is an option builder that sets the albedo/diffuse RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.BaseColor = color
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Roughness = roughness
	}
}

// WithMap is an option builder that attaches a texture handle to a map slot.
//
// Parameters:
//   - slot: the map slot
//   - h: the texture handle
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(slot MapSlot, h *texture.Handle) MaterialBuilderOption {
	return func(m *material) {
		if slot.valid() {
			m.maps[slot].handle = h
		}
	}
}
