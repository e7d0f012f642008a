// Package material describes surface appearance: scalar PBR parameters edited live by the panel and three
// texture map slots filled asynchronously by texture handles.
package material

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/texture"
)

// MapSlot identifies one of the material's texture maps.
type MapSlot int

const (
	// MapColor is the albedo map.
	MapColor MapSlot = iota
	// MapRoughness is the roughness map; its green channel scales Params.Roughness.
	MapRoughness
	// MapNormal is the tangent-space normal map.
	MapNormal

	mapSlotCount
)

// MapSlots lists every slot in binding order.
var MapSlots = [mapSlotCount]MapSlot{MapColor, MapRoughness, MapNormal}

func (s MapSlot) String() string {
	switch s {
	case MapColor:
		return "color"
	case MapRoughness:
		return "roughness"
	case MapNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Params holds the material's live scalar and boolean parameters. Fields are exported so the
// parameter panel can bind to them by name.
type Params struct {
	Roughness   float32
	Metalness   float32
	Opacity     float32
	NormalScale float32
	Wireframe   bool
	Transparent bool
	BaseColor   [4]float32
}

// DefaultParams returns the standard material defaults: fully rough, non-metallic, opaque.
func DefaultParams() Params {
	return Params{
		Roughness:   1,
		Metalness:   0,
		Opacity:     1,
		NormalScale: 1,
		BaseColor:   [4]float32{1, 1, 1, 1},
	}
}

type mapSlot struct {
	handle  *texture.Handle
	data    *common.TextureStagingData
	version uint64
}

// material is the implementation of the Material interface.
type material struct {
	name   string
	params Params
	maps   [mapSlotCount]mapSlot
}

// Material defines the interface for a standard PBR surface material.
//
// A Material is owned by the render goroutine: Params edits, SetMap and ApplyMaps all happen there.
// Texture handles settle on worker goroutines, but their pixels only reach the material through ApplyMaps.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Params retrieves a pointer to the live parameters. Writes through it are visible to the next frame.
	//
	// Returns:
	//   - *Params: the live parameter block
	Params() *Params

	// SetMap attaches a texture handle to a slot. Any previously applied pixels stay bound until the new
	// handle is applied, so a reload never flashes the fallback texture.
	//
	// Parameters:
	//   - slot: the map slot
	//   - h: the texture handle, nil to detach
	SetMap(slot MapSlot, h *texture.Handle)

	// Handle retrieves the texture handle attached to a slot.
	//
	// Parameters:
	//   - slot: the map slot
	//
	// Returns:
	//   - *texture.Handle: the handle, or nil if none is attached
	Handle(slot MapSlot) *texture.Handle

	// Map retrieves the pixels applied to a slot.
	//
	// Parameters:
	//   - slot: the map slot
	//
	// Returns:
	//   - *common.TextureStagingData: the applied pixels, or nil if the map is unset
	Map(slot MapSlot) *common.TextureStagingData

	// MapVersion retrieves a counter bumped every time new pixels are applied to a slot.
	// Renderers compare it against their uploaded version to decide when to re-upload.
	//
	// Parameters:
	//   - slot: the map slot
	//
	// Returns:
	//   - uint64: the slot version, zero while unset
	MapVersion(slot MapSlot) uint64

	// ApplyMaps moves every loaded handle into its slot. Pending and failed handles are left alone.
	//
	// Returns:
	//   - int: the number of maps applied by this call
	ApplyMaps() int

	// Uniform builds the GPU uniform block for the current parameters.
	//
	// Returns:
	//   - GPUMaterialParams: the uniform block
	Uniform() GPUMaterialParams
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		params: DefaultParams(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Params() *Params {
	return &m.params
}

func (m *material) SetMap(slot MapSlot, h *texture.Handle) {
	if !slot.valid() {
		return
	}
	m.maps[slot].handle = h
	if h == nil {
		m.maps[slot].data = nil
		m.maps[slot].version++
	}
}

func (m *material) Handle(slot MapSlot) *texture.Handle {
	if !slot.valid() {
		return nil
	}
	return m.maps[slot].handle
}

func (m *material) Map(slot MapSlot) *common.TextureStagingData {
	if !slot.valid() {
		return nil
	}
	return m.maps[slot].data
}

func (m *material) MapVersion(slot MapSlot) uint64 {
	if !slot.valid() {
		return 0
	}
	return m.maps[slot].version
}

func (m *material) ApplyMaps() int {
	applied := 0
	for i := range m.maps {
		s := &m.maps[i]
		if s.handle == nil {
			continue
		}
		if s.handle.Apply(func(data *common.TextureStagingData) {
			s.data = data
			s.version++
		}) {
			applied++
		}
	}
	return applied
}

func (m *material) Uniform() GPUMaterialParams {
	p := m.params
	opacity := float32(1)
	if p.Transparent {
		opacity = common.Clamp(p.Opacity, 0, 1)
	}
	return GPUMaterialParams{
		BaseColor:   p.BaseColor,
		Roughness:   p.Roughness,
		Metalness:   p.Metalness,
		Opacity:     opacity,
		NormalScale: p.NormalScale,
	}
}

func (s MapSlot) valid() bool {
	return s >= 0 && s < mapSlotCount
}
