package assets

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/xglobaltents/3D-App/internal/engine/mesh"
	"github.com/xglobaltents/3D-App/internal/logger"
)

func TestMain(m *testing.M) {
	// Silence logging during tests
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func stubMesh(name string) *mesh.Mesh {
	m := &mesh.Mesh{
		Name: name,
		Vertices: []mesh.Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 1, 1}},
		},
		Indices: []uint32{0, 1, 1},
	}
	m.RecomputeBounds()
	return m
}

// stubImporter counts invocations and returns canned meshes.
type stubImporter struct {
	calls  int
	meshes []*mesh.Mesh
	err    error
}

func (s *stubImporter) load(path string) ([]*mesh.Mesh, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.meshes, nil
}

func newTestManager(imp *stubImporter) *Manager {
	m := NewManager("testroot")
	m.SetImportFunc(imp.load)
	return m
}

func TestLoadCachesByKey(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("upright")}}
	m := newTestManager(imp)
	ctx := context.Background()

	first, err := m.Load(ctx, "scene", "frames", "upright.glb")
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	second, err := m.Load(ctx, "scene", "frames", "upright.glb")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if imp.calls != 1 {
		t.Errorf("expected 1 import, got %d", imp.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("wrong mesh counts: %d, %d", len(first), len(second))
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestLoadReturnsIndependentClones(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("upright")}}
	m := newTestManager(imp)
	ctx := context.Background()

	a, _ := m.Load(ctx, "scene", "frames", "upright.glb")
	b, _ := m.Load(ctx, "scene", "frames", "upright.glb")

	a[0].Vertices[0].Position[0] = 42
	if b[0].Vertices[0].Position[0] == 42 {
		t.Error("clones share vertex storage")
	}

	// The cached template must also be untouched.
	c, _ := m.Load(ctx, "scene", "frames", "upright.glb")
	if c[0].Vertices[0].Position[0] == 42 {
		t.Error("caller mutation reached the cached template")
	}
}

func TestLoadDistinctKeys(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("part")}}
	m := newTestManager(imp)
	ctx := context.Background()

	m.Load(ctx, "scene", "frames", "upright.glb")
	m.Load(ctx, "scene", "shared", "upright.glb")
	m.Load(ctx, "scene", "frames", "rib.glb")

	if imp.calls != 3 {
		t.Errorf("distinct keys should each import, got %d calls", imp.calls)
	}
	if m.Len() != 3 {
		t.Errorf("expected 3 cached templates, got %d", m.Len())
	}
}

func TestLoadStaleSceneEvicts(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("part")}}
	m := newTestManager(imp)
	ctx := context.Background()

	m.Load(ctx, "old-scene", "frames", "part.glb")
	m.Load(ctx, "new-scene", "frames", "part.glb")

	if imp.calls != 2 {
		t.Errorf("stale entry should reload, got %d calls", imp.calls)
	}
	// Same scene again is a hit.
	m.Load(ctx, "new-scene", "frames", "part.glb")
	if imp.calls != 2 {
		t.Errorf("refreshed entry should be cached, got %d calls", imp.calls)
	}
}

func TestLoadCanceledBeforeImport(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("part")}}
	m := newTestManager(imp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Load(ctx, "scene", "frames", "part.glb")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if imp.calls != 0 {
		t.Error("canceled load should not import")
	}
}

func TestLoadCanceledDuringImport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager("testroot")
	calls := 0
	m.SetImportFunc(func(path string) ([]*mesh.Mesh, error) {
		calls++
		cancel() // cancellation lands while the import is in flight
		return []*mesh.Mesh{stubMesh("part")}, nil
	})

	_, err := m.Load(ctx, "scene", "frames", "part.glb")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.Len() != 0 {
		t.Error("canceled load must not populate the cache")
	}

	// A later load with a live context imports fresh.
	if _, err := m.Load(context.Background(), "scene", "frames", "part.glb"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 imports, got %d", calls)
	}
}

func TestLoadImportError(t *testing.T) {
	wantErr := errors.New("corrupt file")
	imp := &stubImporter{err: wantErr}
	m := newTestManager(imp)

	_, err := m.Load(context.Background(), "scene", "frames", "part.glb")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped import error, got %v", err)
	}
	if m.Len() != 0 {
		t.Error("failed import must not populate the cache")
	}
}

func TestLoadFiltersEmptyMeshes(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{
		stubMesh("solid"),
		{Name: "metadata-only"},
	}}
	m := newTestManager(imp)

	meshes, err := m.Load(context.Background(), "scene", "frames", "part.glb")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(meshes) != 1 || meshes[0].Name != "solid" {
		t.Errorf("zero-vertex mesh not filtered: %v", meshes)
	}
}

func TestClear(t *testing.T) {
	imp := &stubImporter{meshes: []*mesh.Mesh{stubMesh("part")}}
	m := newTestManager(imp)
	ctx := context.Background()

	m.Load(ctx, "scene-a", "frames", "a.glb")
	m.Load(ctx, "scene-b", "frames", "b.glb")

	m.Clear("scene-a")
	if m.Len() != 1 {
		t.Errorf("expected 1 template after Clear, got %d", m.Len())
	}

	m.ClearAll()
	if m.Len() != 0 {
		t.Errorf("expected empty cache after ClearAll, got %d", m.Len())
	}
	if hits, misses := m.Stats(); hits != 0 || misses != 0 {
		t.Error("ClearAll should reset stats")
	}
}
