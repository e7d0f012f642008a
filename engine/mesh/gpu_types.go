package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// GPUObjectUniform is the per-object uniform read by the lit shader's vertex stage.
// Matches the WGSL Object struct layout exactly.
// Size: 128 bytes (two mat4x4<f32>).
type GPUObjectUniform struct {
	Model  [16]float32 // offset  0: model matrix (64 bytes)
	Normal [16]float32 // offset 64: inverse-transpose of the model matrix (64 bytes)
}

// GPUObjectUniformSize is the byte size of GPUObjectUniform.
const GPUObjectUniformSize = 128

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, GPUObjectUniformSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// ObjectUniform builds the GPU uniform for a mesh's current transform.
//
// Parameters:
//   - m: the mesh
//
// Returns:
//   - GPUObjectUniform: model and normal matrices
func ObjectUniform(m Mesh) GPUObjectUniform {
	u := GPUObjectUniform{Model: m.ModelMatrix()}
	common.NormalMatrix(u.Normal[:], u.Model[:])
	return u
}
