package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned uniform for the lit fragment shader.
// Matches the WGSL MaterialParams struct layout exactly.
// Size: 32 bytes (two vec4<f32>, std140 aligned).
type GPUMaterialParams struct {
	BaseColor   [4]float32 // offset  0: RGBA albedo multiplier (16 bytes)
	Roughness   float32    // offset 16: roughness factor (4 bytes)
	Metalness   float32    // offset 20: metalness factor (4 bytes)
	Opacity     float32    // offset 24: alpha, forced to 1 unless transparent (4 bytes)
	NormalScale float32    // offset 28: normal map strength (4 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.BaseColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.BaseColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.BaseColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.BaseColor[3]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Metalness))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Opacity))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.NormalScale))
	return buf
}
