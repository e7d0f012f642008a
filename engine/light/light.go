package light

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant light shining from its position toward its target.
	// Only the direction matters for shading; there is no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// A range of zero means the light never cuts off.
	LightTypePoint

	// LightTypeAmbient represents uniform light from every direction. It has no position
	// and is folded into the ambient term of the light buffer header.
	LightTypeAmbient
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// ParseLightType maps a config name to a LightType.
//
// Parameters:
//   - s: "directional", "point" or "ambient"
//
// Returns:
//   - LightType: the parsed type
//   - bool: false if s names no known type
func ParseLightType(s string) (LightType, bool) {
	switch s {
	case "directional":
		return LightTypeDirectional, true
	case "point":
		return LightTypePoint, true
	case "ambient":
		return LightTypeAmbient, true
	default:
		return 0, false
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	id         uint64
	lightType  LightType
	position   common.Vec3
	target     common.Vec3
	color      [3]float32
	intensity  float32
	lightRange float32
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; properties that do not apply to a type (position of an ambient
// light, range of a directional light) are stored but ignored by the shader.
type Light interface {
	// ID returns the light's scene identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the light's scene identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Target returns the point a directional light shines toward. Defaults to the origin.
	//
	// Returns:
	//   - common.Vec3: the target
	Target() common.Vec3

	// Direction returns the normalized direction light travels: from position toward target.
	// Falls back to straight down when position and target coincide.
	//
	// Returns:
	//   - common.Vec3: unit direction
	Direction() common.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the cutoff distance of a point light, zero for no cutoff.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point a directional light shines toward.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the cutoff distance of a point light.
	//
	// Parameters:
	//   - lightRange: the range value, zero for no cutoff
	SetRange(lightRange float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// GPU converts the light into its shader representation.
	//
	// Returns:
	//   - GPULight: the packed light
	GPU() GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, unit intensity and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) ID() uint64 {
	return l.id
}

func (l *lightImpl) SetID(id uint64) {
	l.id = id
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Target() common.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() common.Vec3 {
	d := l.target.Sub(l.position).Normalize()
	if d == (common.Vec3{}) {
		return common.V3(0, -1, 0)
	}
	return d
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position.Set(x, y, z)
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.target.Set(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) GPU() GPULight {
	return GPULight{
		Position:   l.position.Array(),
		LightType:  uint32(l.lightType),
		Color:      l.color,
		Intensity:  l.intensity,
		Direction:  l.Direction().Array(),
		LightRange: l.lightRange,
	}
}
