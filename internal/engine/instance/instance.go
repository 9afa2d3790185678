// Package instance converts placement transforms into packed matrix buffers
// for GPU instancing.
package instance

import (
	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// Transform describes one repetition of a template mesh. Rotation is an Euler
// XYZ triple in radians; a zero Scale means the template's own scale. All
// fields are plain numbers so saved configurations can serialize them as-is.
type Transform struct {
	Position math.Vec3 `yaml:"position"`
	Rotation math.Vec3 `yaml:"rotation,omitempty"`
	Scale    math.Vec3 `yaml:"scale,omitempty"`
	Mirrored bool      `yaml:"mirrored,omitempty"`
}

// Matrix returns the world matrix for this transform, composed scale first,
// rotation second, translation last.
func (t Transform) Matrix() math.Mat4 {
	scale := t.Scale
	if scale == (math.Vec3{}) {
		scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return math.Compose(scale, t.Rotation, t.Position)
}

// Pack builds one 4x4 column-major matrix per transform into a flat buffer,
// 16 floats per instance, ready for an instanced vertex attribute.
func Pack(transforms []Transform) []float32 {
	buf := make([]float32, 0, len(transforms)*16)
	for _, t := range transforms {
		m := t.Matrix()
		buf = append(buf, m[:]...)
	}
	return buf
}

// Batch pairs a template mesh with the packed instance buffer that repeats
// it. One batch produces exactly one instanced draw call regardless of Count.
type Batch struct {
	Template *mesh.Mesh
	Matrices []float32
	Count    int

	// Bounds spans every instance, not just the template's local box, so
	// culling cannot hide instances far from the origin.
	Bounds mesh.Bounds
}

// NewBatch creates a batch for the template repeated at each transform.
// An empty transform list is a no-op and returns nil.
func NewBatch(template *mesh.Mesh, transforms []Transform) *Batch {
	if template == nil || len(transforms) == 0 {
		return nil
	}

	b := &Batch{
		Template: template,
		Matrices: Pack(transforms),
		Count:    len(transforms),
		Bounds:   aggregateBounds(template.Bounds, transforms),
	}
	return b
}

// aggregateBounds unions the template bounds transformed by every instance
// matrix, using the eight box corners.
func aggregateBounds(local mesh.Bounds, transforms []Transform) mesh.Bounds {
	out := mesh.EmptyBounds()
	corners := boxCorners(local)
	for _, t := range transforms {
		m := t.Matrix()
		for _, c := range corners {
			out.Expand(m.TransformPoint(c))
		}
	}
	return out
}

func boxCorners(b mesh.Bounds) [8][3]float32 {
	return [8][3]float32{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}
