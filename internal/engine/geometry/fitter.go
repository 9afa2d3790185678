// Package geometry fits imported meshes to physical target dimensions and
// applies model-space edits (miter cuts, mirroring).
package geometry

import (
	"sync"

	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// scaleEpsilon guards against division by a degenerate axis extent.
const scaleEpsilon = 1e-6

// Axis identifies one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// MeasureBounds computes the union axis-aligned bounding box of the given
// meshes with transform applied to every vertex. Meshes without vertices are
// skipped. The meshes themselves are not modified.
func MeasureBounds(meshes []*mesh.Mesh, transform math.Mat4) mesh.Bounds {
	b := mesh.EmptyBounds()
	any := false
	for _, m := range meshes {
		if m == nil || len(m.Vertices) == 0 {
			continue
		}
		any = true
		for i := range m.Vertices {
			b.Expand(transform.TransformPoint(m.Vertices[i].Position))
		}
	}
	if !any {
		return mesh.Bounds{}
	}
	return b
}

// Fitter memoizes bounds measurements by caller-supplied key. Measuring is
// O(vertices) and specifications rarely change per frame, so repeated frames
// for the same profile dimensions hit the cache.
type Fitter struct {
	mu    sync.Mutex
	cache map[string]mesh.Bounds
}

// NewFitter creates an empty fitter.
func NewFitter() *Fitter {
	return &Fitter{cache: make(map[string]mesh.Bounds)}
}

// MeasureCached measures bounds, memoized by key. An empty key bypasses the
// cache.
func (f *Fitter) MeasureCached(key string, meshes []*mesh.Mesh, transform math.Mat4) mesh.Bounds {
	if key == "" {
		return MeasureBounds(meshes, transform)
	}
	f.mu.Lock()
	if b, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return b
	}
	f.mu.Unlock()

	b := MeasureBounds(meshes, transform)

	f.mu.Lock()
	f.cache[key] = b
	f.mu.Unlock()
	return b
}

// Invalidate drops one cached measurement.
func (f *Fitter) Invalidate(key string) {
	f.mu.Lock()
	delete(f.cache, key)
	f.mu.Unlock()
}

// InvalidateAll drops every cached measurement.
func (f *Fitter) InvalidateAll() {
	f.mu.Lock()
	f.cache = make(map[string]mesh.Bounds)
	f.mu.Unlock()
}

// AxisScale returns the per-axis factors mapping raw onto target. Axes with a
// raw extent at or below epsilon keep scale 1.
func AxisScale(raw, target [3]float32) [3]float32 {
	var s [3]float32
	for i := 0; i < 3; i++ {
		if raw[i] > scaleEpsilon {
			s[i] = target[i] / raw[i]
		} else {
			s[i] = 1
		}
	}
	return s
}

// UniformScale returns a single factor derived from the dominant axis, for
// geometry whose authored proportions must be preserved.
func UniformScale(raw, target [3]float32, dominant Axis) float32 {
	if raw[dominant] <= scaleEpsilon {
		return 1
	}
	return target[dominant] / raw[dominant]
}

// FlattenOrientation bakes a canonical-frame rotation into the mesh vertices.
// Imported assets are authored in arbitrary frames (commonly Z-up); the
// pipeline normalizes orientation first, measures second, scales third.
func FlattenOrientation(m *mesh.Mesh, rotation math.Mat4) {
	m.Transform(rotation)
}

// ZUpToYUp is the canonical-frame rotation for Z-up authored assets.
func ZUpToYUp() math.Mat4 {
	return math.RotateX(-halfPi)
}

const halfPi = 1.5707963267948966
