package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of light slots in the lit shader's uniform block. Ambient lights do not
// occupy a slot; they are summed into the header.
const MaxGPULights = 8

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly.
// Size: 48 bytes (uniform array stride is a multiple of 16).
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position
	LightType  uint32     // offset 12: 0 = directional, 1 = point
	Color      [3]float32 // offset 16: RGB color
	Intensity  float32    // offset 28: scalar multiplier
	Direction  [3]float32 // offset 32: normalized travel direction
	LightRange float32    // offset 44: point light cutoff, 0 = none
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	return buf
}

// GPULightHeader is the header at the start of the light uniform block.
// Contains the summed ambient color and the active light count.
// Size: 16 bytes (vec3 + u32).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: scene ambient RGB, pre-multiplied by intensity
	LightCount   uint32     // offset 12: number of active lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(h.AmbientColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(h.AmbientColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(h.AmbientColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// GPULightBlockSize is the byte size of the uniform produced by MarshalLights.
const GPULightBlockSize = 16 + MaxGPULights*48

// MarshalLights packs lights into the lit shader's uniform block: a header followed by MaxGPULights slots.
// Disabled lights are skipped, ambient lights are summed into the header and lights beyond MaxGPULights are dropped.
//
// Parameters:
//   - lights: the scene's lights in any order
//
// Returns:
//   - []byte: GPULightBlockSize bytes ready for upload
//   - GPULightHeader: the header that was written, for inspection
func MarshalLights(lights []Light) ([]byte, GPULightHeader) {
	buf := make([]byte, GPULightBlockSize)
	var header GPULightHeader
	slot := 0
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeAmbient {
			c := l.Color()
			for i := range header.AmbientColor {
				header.AmbientColor[i] += c[i] * l.Intensity()
			}
			continue
		}
		if slot >= MaxGPULights {
			continue
		}
		g := l.GPU()
		copy(buf[16+slot*48:], g.Marshal())
		slot++
	}
	header.LightCount = uint32(slot)
	copy(buf[0:16], header.Marshal())
	return buf, header
}
