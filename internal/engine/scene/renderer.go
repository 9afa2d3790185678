// Package scene renders instanced tent geometry under a named root.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/internal/engine/lighting"
	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/internal/engine/shader"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// gpuBatch holds the GPU resources for one instance batch. The instance
// matrix buffer is written once (STATIC_DRAW) and frozen; tent geometry is
// static once placed.
type gpuBatch struct {
	vao           uint32
	vbo           uint32
	ebo           uint32
	instanceVBO   uint32
	indexCount    int32
	instanceCount int32
}

// Renderer draws instanced frame parts: one DrawElementsInstanced call per
// batch regardless of instance count. Batches bypass frustum culling; their
// aggregate bounds already guarantee they are primary content.
type Renderer struct {
	program      uint32
	locViewProj  int32
	locLightDir  int32
	locAmbient   int32
	locDiffuse   int32
	locBaseColor int32

	batches []gpuBatch

	// BaseColor tints the frame; environment presets adjust lighting only.
	BaseColor [3]float32
}

// NewRenderer compiles the instanced frame shader.
func NewRenderer() (*Renderer, error) {
	program, err := shader.CompileProgram(frameVertexShader, frameFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("frame shader: %w", err)
	}

	return &Renderer{
		program:      program,
		locViewProj:  shader.GetUniform(program, "uViewProj"),
		locLightDir:  shader.GetUniform(program, "uLightDir"),
		locAmbient:   shader.GetUniform(program, "uAmbient"),
		locDiffuse:   shader.GetUniform(program, "uDiffuse"),
		locBaseColor: shader.GetUniform(program, "uBaseColor"),
		BaseColor:    [3]float32{0.78, 0.78, 0.80},
	}, nil
}

// SetBatches replaces the rendered batch set, disposing previous GPU
// resources first. Must be called on the GL thread.
func (r *Renderer) SetBatches(batches []*instance.Batch) {
	r.clearBatches()
	for _, b := range batches {
		if b == nil || b.Count == 0 || len(b.Template.Vertices) == 0 {
			continue
		}
		r.batches = append(r.batches, uploadBatch(b))
	}
}

func uploadBatch(b *instance.Batch) gpuBatch {
	var g gpuBatch

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	// Template vertex buffer
	vertices := b.Template.Vertices
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// Tangent
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)
	// TexCoord
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, int32(vertexSize), 10*4)
	gl.EnableVertexAttribArray(3)

	// Per-instance world matrices: four vec4 columns, advancing per instance
	gl.GenBuffers(1, &g.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Matrices)*4, unsafe.Pointer(&b.Matrices[0]), gl.STATIC_DRAW)
	for col := uint32(0); col < 4; col++ {
		attr := 4 + col
		gl.VertexAttribPointerWithOffset(attr, 4, gl.FLOAT, false, 16*4, uintptr(col*16))
		gl.EnableVertexAttribArray(attr)
		gl.VertexAttribDivisor(attr, 1)
	}

	indices := b.Template.Indices
	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	g.indexCount = int32(len(indices))
	g.instanceCount = int32(b.Count)
	gl.BindVertexArray(0)
	return g
}

// Render draws every batch with the given camera and environment.
func (r *Renderer) Render(viewProj math.Mat4, env lighting.Environment) {
	if len(r.batches) == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())

	dir := env.SunDirection()
	gl.Uniform3f(r.locLightDir, dir[0], dir[1], dir[2])
	gl.Uniform3f(r.locAmbient, env.Ambient[0], env.Ambient[1], env.Ambient[2])
	gl.Uniform3f(r.locDiffuse, env.Diffuse[0], env.Diffuse[1], env.Diffuse[2])
	gl.Uniform3f(r.locBaseColor, r.BaseColor[0], r.BaseColor[1], r.BaseColor[2])

	for _, g := range r.batches {
		gl.BindVertexArray(g.vao)
		gl.DrawElementsInstanced(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil, g.instanceCount)
	}
	gl.BindVertexArray(0)
}

// DrawCalls returns the number of instanced draw calls per frame.
func (r *Renderer) DrawCalls() int {
	return len(r.batches)
}

func (r *Renderer) clearBatches() {
	for _, g := range r.batches {
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
		}
		if g.vbo != 0 {
			gl.DeleteBuffers(1, &g.vbo)
		}
		if g.instanceVBO != 0 {
			gl.DeleteBuffers(1, &g.instanceVBO)
		}
		if g.ebo != 0 {
			gl.DeleteBuffers(1, &g.ebo)
		}
	}
	r.batches = nil
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	r.clearBatches()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
