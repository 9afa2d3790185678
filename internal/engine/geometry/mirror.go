package geometry

import (
	"github.com/xglobaltents/3D-App/internal/engine/mesh"
)

// MirrorX returns a mirror-image clone of the mesh across the YZ plane.
// Position and normal X components are negated (tangents too, preserving the
// bitangent sign), and triangle winding is reversed to compensate for the
// handedness flip. The result has outward-facing normals and correct backface
// culling, unlike negative-scale mirroring which silently breaks both.
func MirrorX(m *mesh.Mesh) *mesh.Mesh {
	out := m.Clone()

	for i := range out.Vertices {
		v := &out.Vertices[i]
		v.Position[0] = -v.Position[0]
		v.Normal[0] = -v.Normal[0]
		if v.Tangent != ([4]float32{}) {
			v.Tangent[0] = -v.Tangent[0]
		}
	}

	// Swap the 2nd and 3rd index of each triangle
	for i := 0; i+2 < len(out.Indices); i += 3 {
		out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
	}

	out.RecomputeBounds()
	return out
}
