package geometry

import (
	gomath "math"

	"github.com/xglobaltents/3D-App/internal/engine/mesh"
)

// MiterOptions controls top-face selection and drop clamping for miter cuts.
type MiterOptions struct {
	// TopTolerance is the fraction of the mesh's vertical extent within which
	// a vertex counts as part of the top face. Tuned against the authored
	// asset corpus; tight enough to exclude side walls, loose enough to
	// survive import noise.
	TopTolerance float32

	// MinDrop and MaxDrop clamp the vertical displacement in meters, guarding
	// against degenerate slopes.
	MinDrop float32
	MaxDrop float32
}

// DefaultMiterOptions returns the clamp range and tolerance used by the
// standard frame parts.
func DefaultMiterOptions() MiterOptions {
	return MiterOptions{
		TopTolerance: 0.001,
		MinDrop:      0.01,
		MaxDrop:      0.12,
	}
}

// MiterDrop returns the clamped vertical displacement for a miter cut across
// a part of the given width. Non-finite or non-positive slopes clamp to
// MinDrop.
func (o MiterOptions) MiterDrop(slope, width float32) float32 {
	drop := slope * width
	if gomath.IsNaN(float64(drop)) || gomath.IsInf(float64(drop), 0) || drop < o.MinDrop {
		return o.MinDrop
	}
	if drop > o.MaxDrop {
		return o.MaxDrop
	}
	return drop
}

// ApplyMiterCut slices the mesh's flat top face into a sloped cut in model
// space. Vertices within the top tolerance of the maximum height are lowered
// proportionally to their horizontal distance from the inner edge:
//
//	drop = slope * distanceFromInnerEdge
//
// outerSign selects which X side is the outer edge (+1: +X outer, -1: -X
// outer) so left and right parts slope outward-and-downward symmetrically.
// Normals are left untouched: at the shallow cut angles involved the authored
// normals remain visually correct, and flat renormalization degrades shading.
//
// The mesh is mutated destructively; callers must pass an owned clone, never
// a cached template.
func ApplyMiterCut(m *mesh.Mesh, slope float32, outerSign int, opts MiterOptions) {
	if m == nil || len(m.Vertices) == 0 {
		return
	}
	if gomath.IsNaN(float64(slope)) || gomath.IsInf(float64(slope), 0) {
		return
	}
	if slope < 0 {
		slope = -slope
	}

	size := m.Bounds.Size()
	if size[1] <= scaleEpsilon || size[0] <= scaleEpsilon {
		return
	}
	topCutoff := m.Bounds.Max[1] - size[1]*opts.TopTolerance

	// The inner edge is the X extreme opposite the outer sign.
	innerX := m.Bounds.Max[0]
	if outerSign >= 0 {
		innerX = m.Bounds.Min[0]
	}

	maxDrop := opts.MiterDrop(slope, size[0])
	effectiveSlope := maxDrop / size[0]

	for i := range m.Vertices {
		v := &m.Vertices[i]
		if v.Position[1] < topCutoff {
			continue
		}
		dist := v.Position[0] - innerX
		if dist < 0 {
			dist = -dist
		}
		v.Position[1] -= effectiveSlope * dist
	}
	m.RecomputeBounds()
}
