// Package mesh provides CPU-side mesh data types shared by the geometry
// pipeline and the renderer.
package mesh

import (
	"github.com/xglobaltents/3D-App/pkg/formats"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, tangent and texture
// coordinates. Tangent W carries the bitangent sign for normal mapping.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [4]float32
	TexCoord [2]float32
}

// Mesh holds mesh data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Size returns the extent of the bounds per axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Expand grows the bounds to include point p.
func (b *Bounds) Expand(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	out.Expand(other.Min)
	out.Expand(other.Max)
	return out
}

// IsEmpty reports whether the bounds contain no points.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// FromGLB converts a parsed GLB mesh into an engine mesh.
// Missing normals default to +Y so lighting stays defined.
func FromGLB(src formats.GLBMesh) *Mesh {
	m := &Mesh{
		Name:     src.Name,
		Vertices: make([]Vertex, len(src.Positions)),
		Indices:  append([]uint32(nil), src.Indices...),
	}
	for i, p := range src.Positions {
		v := Vertex{Position: p, Normal: [3]float32{0, 1, 0}}
		if i < len(src.Normals) {
			v.Normal = src.Normals[i]
		}
		if i < len(src.Tangents) {
			v.Tangent = src.Tangents[i]
		}
		if i < len(src.TexCoords) {
			v.TexCoord = src.TexCoords[i]
		}
		m.Vertices[i] = v
	}
	m.RecomputeBounds()
	return m
}

// Clone returns a deep copy. The copy owns its vertex and index buffers, so
// destructive edits never reach the source mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:     m.Name,
		Vertices: append([]Vertex(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
		Bounds:   m.Bounds,
	}
}

// Transform applies matrix t to every vertex in place and refreshes bounds.
// Normals and tangents are rotated and renormalized.
func (m *Mesh) Transform(t math.Mat4) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = t.TransformPoint(v.Position)
		v.Normal = normalizeArr(t.TransformDirection(v.Normal))
		if v.Tangent != ([4]float32{}) {
			d := normalizeArr(t.TransformDirection([3]float32{v.Tangent[0], v.Tangent[1], v.Tangent[2]}))
			v.Tangent = [4]float32{d[0], d[1], d[2], v.Tangent[3]}
		}
	}
	m.RecomputeBounds()
}

// RecomputeBounds rebuilds the bounding box from vertex positions.
func (m *Mesh) RecomputeBounds() {
	b := EmptyBounds()
	for i := range m.Vertices {
		b.Expand(m.Vertices[i].Position)
	}
	if len(m.Vertices) == 0 {
		b = Bounds{}
	}
	m.Bounds = b
}

func normalizeArr(d [3]float32) [3]float32 {
	v := math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Normalize()
	return [3]float32{v.X, v.Y, v.Z}
}
