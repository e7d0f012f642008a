package geometry

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertex is the GPU-aligned representation of a single lit mesh vertex.
// Matches the VertexInput struct of the lit shader.
// Size: 48 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
	Tangent  [4]float32 // offset 32: tangent vector (xyz) + handedness (w) for normal mapping (16 bytes)
}

// GPUVertexSize is the stride of GPUVertex in a vertex buffer.
const GPUVertexSize = 48

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	putFloats(buf[0:], g.Position[:]...)
	putFloats(buf[12:], g.Normal[:]...)
	putFloats(buf[24:], g.TexCoord[:]...)
	putFloats(buf[32:], g.Tangent[:]...)
	return buf
}

// LineVertex is a single vertex of a debug line list (light helpers, wireframe overlays).
// Size: 28 bytes.
type LineVertex struct {
	Position [3]float32 // offset  0: world space position (12 bytes)
	Color    [4]float32 // offset 12: RGBA line color (16 bytes)
}

// LineVertexSize is the stride of LineVertex in a vertex buffer.
const LineVertexSize = 28

// Marshal serializes the LineVertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (l *LineVertex) Marshal() []byte {
	buf := make([]byte, LineVertexSize)
	putFloats(buf[0:], l.Position[:]...)
	putFloats(buf[12:], l.Color[:]...)
	return buf
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
func MarshalVertices(verts []GPUVertex) []byte {
	buf := make([]byte, 0, len(verts)*GPUVertexSize)
	for i := range verts {
		buf = append(buf, verts[i].Marshal()...)
	}
	return buf
}

// MarshalLines packs a line vertex slice into one contiguous buffer.
func MarshalLines(verts []LineVertex) []byte {
	buf := make([]byte, 0, len(verts)*LineVertexSize)
	for i := range verts {
		buf = append(buf, verts[i].Marshal()...)
	}
	return buf
}

// MarshalIndices packs uint32 indices little-endian.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
