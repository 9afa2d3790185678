package scene

import (
	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/internal/engine/lighting"
	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// Scene is the named root all configurator output is parented under. It owns
// the instanced renderer and the union bounds of the current batches.
type Scene struct {
	ID       string
	Env      lighting.Environment
	renderer *Renderer
	bounds   mesh.Bounds
}

// NewScene creates a scene with the given id and environment preset.
func NewScene(id string, env lighting.Environment) (*Scene, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Scene{ID: id, Env: env, renderer: r}, nil
}

// SetBatches replaces the scene content and refreshes the union bounds used
// for camera fitting. GL thread only.
func (s *Scene) SetBatches(batches []*instance.Batch) {
	s.renderer.SetBatches(batches)

	b := mesh.EmptyBounds()
	for _, batch := range batches {
		if batch != nil {
			b = b.Union(batch.Bounds)
		}
	}
	if b.IsEmpty() {
		b = mesh.Bounds{}
	}
	s.bounds = b
}

// Bounds returns the union bounds of all rendered instances.
func (s *Scene) Bounds() mesh.Bounds {
	return s.bounds
}

// Render draws the scene with the given camera matrix.
func (s *Scene) Render(viewProj math.Mat4) {
	s.renderer.Render(viewProj, s.Env)
}

// DrawCalls returns the current per-frame instanced draw call count.
func (s *Scene) DrawCalls() int {
	return s.renderer.DrawCalls()
}

// Destroy releases all GPU resources owned by the scene.
func (s *Scene) Destroy() {
	s.renderer.Destroy()
}
