package mesh

import (
	"testing"

	"github.com/xglobaltents/3D-App/pkg/formats"
	"github.com/xglobaltents/3D-App/pkg/math"
)

func boxMesh() *Mesh {
	m := &Mesh{
		Name: "box",
		Vertices: []Vertex{
			{Position: [3]float32{-1, 0, -1}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{1, 0, -1}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{1, 2, 1}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{-1, 2, 1}, Normal: [3]float32{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.RecomputeBounds()
	return m
}

func TestBoundsExpand(t *testing.T) {
	b := EmptyBounds()
	b.Expand([3]float32{1, 2, 3})
	b.Expand([3]float32{-1, 0, -3})

	if b.Min != [3]float32{-1, 0, -3} {
		t.Errorf("wrong min: %v", b.Min)
	}
	if b.Max != [3]float32{1, 2, 3} {
		t.Errorf("wrong max: %v", b.Max)
	}
	if s := b.Size(); s != [3]float32{2, 2, 6} {
		t.Errorf("wrong size: %v", s)
	}
	if c := b.Center(); c != [3]float32{0, 1, 0} {
		t.Errorf("wrong center: %v", c)
	}
}

func TestBoundsEmpty(t *testing.T) {
	if !EmptyBounds().IsEmpty() {
		t.Error("EmptyBounds should report empty")
	}
	b := EmptyBounds()
	b.Expand([3]float32{0, 0, 0})
	if b.IsEmpty() {
		t.Error("bounds with a point should not be empty")
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}}
	b := Bounds{Min: [3]float32{-2, 0, 0}, Max: [3]float32{0, 3, 0.5}}
	u := a.Union(b)

	if u.Min != [3]float32{-2, 0, 0} {
		t.Errorf("wrong union min: %v", u.Min)
	}
	if u.Max != [3]float32{1, 3, 1} {
		t.Errorf("wrong union max: %v", u.Max)
	}
}

func TestFromGLB(t *testing.T) {
	src := formats.GLBMesh{
		Name: "panel",
		Positions: [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
		},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		TexCoords: [][2]float32{{0, 0}, {1, 0}, {1, 1}},
		Indices:   []uint32{0, 1, 2},
	}

	m := FromGLB(src)
	if len(m.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(m.Vertices))
	}
	if m.Vertices[1].Normal != [3]float32{0, 0, 1} {
		t.Errorf("normal not carried over: %v", m.Vertices[1].Normal)
	}
	if m.Vertices[2].TexCoord != [2]float32{1, 1} {
		t.Errorf("texcoord not carried over: %v", m.Vertices[2].TexCoord)
	}
	if m.Bounds.Max != [3]float32{1, 1, 0} {
		t.Errorf("bounds not computed: %v", m.Bounds)
	}
}

func TestFromGLBMissingNormals(t *testing.T) {
	src := formats.GLBMesh{
		Positions: [][3]float32{{0, 0, 0}},
	}
	m := FromGLB(src)
	if m.Vertices[0].Normal != [3]float32{0, 1, 0} {
		t.Errorf("expected default +Y normal, got %v", m.Vertices[0].Normal)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := boxMesh()
	clone := orig.Clone()

	clone.Vertices[0].Position[0] = 99
	clone.Indices[0] = 3

	if orig.Vertices[0].Position[0] == 99 {
		t.Error("editing clone vertices modified the original")
	}
	if orig.Indices[0] == 3 {
		t.Error("editing clone indices modified the original")
	}
	if clone.Bounds != orig.Bounds {
		t.Error("clone should start with identical bounds")
	}
}

func TestTransformTranslates(t *testing.T) {
	m := boxMesh()
	m.Transform(math.Translate(10, 0, 0))

	if m.Bounds.Min[0] != 9 || m.Bounds.Max[0] != 11 {
		t.Errorf("bounds not refreshed after transform: %v", m.Bounds)
	}
	// Translation must not touch normals
	if m.Vertices[0].Normal != [3]float32{0, 1, 0} {
		t.Errorf("translation changed a normal: %v", m.Vertices[0].Normal)
	}
}

func TestTransformRotatesNormals(t *testing.T) {
	m := boxMesh()
	m.Transform(math.RotateX(float32(3.14159265 / 2))) // +Y normal -> +Z

	n := m.Vertices[0].Normal
	if n[2] < 0.99 {
		t.Errorf("normal not rotated: %v", n)
	}
}

func TestRecomputeBoundsEmptyMesh(t *testing.T) {
	m := &Mesh{}
	m.RecomputeBounds()
	if m.Bounds != (Bounds{}) {
		t.Errorf("empty mesh should have zero bounds, got %v", m.Bounds)
	}
}
