package light

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
)

// ErrNoHelper is returned when a helper is requested for a light type that has no visual representation.
var ErrNoHelper = errors.New("light type has no helper")

// Helper draws a wireframe marker for a light. It holds no geometry of its own: Lines derives the
// vertices from the light's current state, so the marker follows the light without any update call.
type Helper struct {
	id    uint64
	light Light
	size  float32
}

// NewHelper creates a debug helper for a directional or point light.
//
// Parameters:
//   - l: the light to mirror
//   - size: half-extent of the directional square, or radius of the point marker
//
// Returns:
//   - *Helper: the helper
//   - error: ErrNoHelper for ambient or nil lights
func NewHelper(l Light, size float32) (*Helper, error) {
	if l == nil {
		return nil, fmt.Errorf("nil light: %w", ErrNoHelper)
	}
	if l.Type() == LightTypeAmbient {
		return nil, fmt.Errorf("%s light: %w", l.Type(), ErrNoHelper)
	}
	if size <= 0 {
		size = 1
	}
	return &Helper{light: l, size: size}, nil
}

// ID returns the helper's scene identifier.
func (h *Helper) ID() uint64 {
	return h.id
}

// SetID sets the helper's scene identifier.
func (h *Helper) SetID(id uint64) {
	h.id = id
}

// Light returns the mirrored light.
func (h *Helper) Light() Light {
	return h.light
}

// Size returns the helper's size.
func (h *Helper) Size() float32 {
	return h.size
}

// Lines returns the helper outline as a line list in world space, colored like the light.
// A disabled light yields no lines.
func (h *Helper) Lines() []geometry.LineVertex {
	if !h.light.Enabled() {
		return nil
	}
	c := h.light.Color()
	color := [4]float32{c[0], c[1], c[2], 1}

	var pts []common.Vec3
	switch h.light.Type() {
	case LightTypeDirectional:
		pts = h.directionalLines()
	case LightTypePoint:
		pts = h.pointLines()
	}

	out := make([]geometry.LineVertex, len(pts))
	for i, p := range pts {
		out[i] = geometry.LineVertex{Position: p.Array(), Color: color}
	}
	return out
}

// directionalLines is a square facing the target plus a line from the light to the target.
func (h *Helper) directionalLines() []common.Vec3 {
	pos := h.light.Position()
	forward := h.light.Direction()
	right := forward.Cross(common.V3(0, 1, 0)).Normalize()
	if right == (common.Vec3{}) {
		right = common.V3(1, 0, 0)
	}
	up := right.Cross(forward)

	r, u := right.Scale(h.size), up.Scale(h.size)
	corners := [4]common.Vec3{
		pos.Sub(r).Add(u),
		pos.Add(r).Add(u),
		pos.Add(r).Sub(u),
		pos.Sub(r).Sub(u),
	}
	pts := make([]common.Vec3, 0, 10)
	for i := range corners {
		pts = append(pts, corners[i], corners[(i+1)%4])
	}
	return append(pts, pos, h.light.Target())
}

// pointLines is the twelve edges of an octahedron of radius size, the shape of a two-ring wire sphere.
func (h *Helper) pointLines() []common.Vec3 {
	pos := h.light.Position()
	s := h.size
	top, bottom := pos.Add(common.V3(0, s, 0)), pos.Add(common.V3(0, -s, 0))
	ring := [4]common.Vec3{
		pos.Add(common.V3(s, 0, 0)),
		pos.Add(common.V3(0, 0, s)),
		pos.Add(common.V3(-s, 0, 0)),
		pos.Add(common.V3(0, 0, -s)),
	}
	pts := make([]common.Vec3, 0, 24)
	for i := range ring {
		next := ring[(i+1)%4]
		pts = append(pts, ring[i], next, ring[i], top, ring[i], bottom)
	}
	return pts
}
