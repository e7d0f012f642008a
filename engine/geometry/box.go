// Package geometry builds the vertex and index data for the primitive shapes the sandbox draws.
package geometry

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// Geometry is indexed triangle-list vertex data in model space.
type Geometry struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// boxFace describes one side of a box: its outward normal and the directions in which u and v grow.
// right x up == normal, so the corner order below winds counter-clockwise seen from outside.
type boxFace struct {
	normal, right, up common.Vec3
}

// Face order matches three.js BoxGeometry: +x, -x, +y, -y, +z, -z.
var boxFaces = [6]boxFace{
	{normal: common.V3(1, 0, 0), right: common.V3(0, 0, -1), up: common.V3(0, 1, 0)},
	{normal: common.V3(-1, 0, 0), right: common.V3(0, 0, 1), up: common.V3(0, 1, 0)},
	{normal: common.V3(0, 1, 0), right: common.V3(1, 0, 0), up: common.V3(0, 0, -1)},
	{normal: common.V3(0, -1, 0), right: common.V3(1, 0, 0), up: common.V3(0, 0, 1)},
	{normal: common.V3(0, 0, 1), right: common.V3(1, 0, 0), up: common.V3(0, 1, 0)},
	{normal: common.V3(0, 0, -1), right: common.V3(-1, 0, 0), up: common.V3(0, 1, 0)},
}

// Box builds an axis-aligned box centered on the origin. Each face owns four vertices so normals,
// UVs and tangents stay flat per face; every face maps the full texture.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - *Geometry: 24 vertices and 36 indices
func Box(width, height, depth float32) *Geometry {
	half := common.V3(width/2, height/2, depth/2)
	g := &Geometry{
		Vertices: make([]GPUVertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(g.Vertices))
		center := mulComponents(f.normal, half)
		right := mulComponents(f.right, half)
		up := mulComponents(f.up, half)
		for _, c := range corners {
			pos := center.Add(right.Scale(c[0])).Add(up.Scale(c[1]))
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: pos.Array(),
				Normal:   f.normal.Array(),
				// Texture rows start at the top, so v runs opposite to up.
				TexCoord: [2]float32{(c[0] + 1) / 2, (1 - c[1]) / 2},
				Tangent:  [4]float32{f.right.X, f.right.Y, f.right.Z, 1},
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// WireframeIndices converts a triangle list into a line list containing every distinct triangle edge once.
//
// Parameters:
//   - triangles: triangle-list indices
//
// Returns:
//   - []uint32: line-list indices
func WireframeIndices(triangles []uint32) []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(triangles))
	lines := make([]uint32, 0, len(triangles)*2)
	for i := 0; i+2 < len(triangles); i += 3 {
		tri := [3]uint32{triangles[i], triangles[i+1], triangles[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			lines = append(lines, a, b)
		}
	}
	return lines
}

func mulComponents(a, b common.Vec3) common.Vec3 {
	return common.V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z)
}
