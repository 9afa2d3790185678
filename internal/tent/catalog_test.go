package tent

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xglobaltents/3D-App/internal/engine/geometry"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	names := c.Names()
	if len(names) != 2 || names[0] != "colossal" || names[1] != "grande" {
		t.Fatalf("unexpected variants: %v", names)
	}

	grande, err := c.Get("grande")
	if err != nil {
		t.Fatalf("grande missing: %v", err)
	}
	if err := grande.Validate(); err != nil {
		t.Errorf("grande invalid: %v", err)
	}
	if grande.HalfWidth != 7.5 || grande.EaveHeight != 3.2 || grande.RidgeHeight != 5.1 {
		t.Errorf("grande dimensions wrong: %+v", grande)
	}

	if _, err := c.Get("nonexistent"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestLoadCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `
variants:
  compact:
    width: 6
    half_width: 3
    eave_height: 2.4
    ridge_height: 3.4
    bay_distance: 3
    arch_outer_span: 3.1
    profiles:
      upright: {width: 0.10, height: 0.10}
    baseplate: {footprint: 0.30, height: 0.015}
    purlin_offsets: [-2, 0, 2]
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	spec, err := c.Get("compact")
	if err != nil {
		t.Fatalf("compact missing: %v", err)
	}
	if spec.Name != "compact" {
		t.Errorf("name should default to the map key, got %q", spec.Name)
	}
	if spec.HalfWidth != 3 {
		t.Errorf("half width wrong: %v", spec.HalfWidth)
	}
	if spec.Profile("upright").Width != 0.10 {
		t.Errorf("profile wrong: %+v", spec.Profile("upright"))
	}
	if len(spec.PurlinOffsets) != 3 {
		t.Errorf("purlin offsets wrong: %v", spec.PurlinOffsets)
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")

	yamlContent := `
variants:
  broken:
    half_width: -1
    bay_distance: 5
    eave_height: 3
    ridge_height: 5
    arch_outer_span: 3
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog("/nonexistent/catalog.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpecificationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Specification)
		wantErr bool
	}{
		{"valid", func(s *Specification) {}, false},
		{"zero half width", func(s *Specification) { s.HalfWidth = 0 }, true},
		{"zero bay distance", func(s *Specification) { s.BayDistance = 0 }, true},
		{"zero eave", func(s *Specification) { s.EaveHeight = 0 }, true},
		{"ridge below eave", func(s *Specification) { s.RidgeHeight = 1 }, true},
		{"zero span", func(s *Specification) { s.ArchOuterSpan = 0 }, true},
	}
	for _, tt := range tests {
		s := *grandeSpec()
		tt.mutate(&s)
		err := s.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestRafterSlope(t *testing.T) {
	s := grandeSpec()
	want := (s.RidgeHeight - s.EaveHeight) / s.HalfWidth
	if !nearly(s.RafterSlope(), want) {
		t.Errorf("derived slope %v, want %v", s.RafterSlope(), want)
	}

	// Precomputed slope wins over the derived value.
	withSlope := *s
	withSlope.EaveSlope = 0.42
	if withSlope.RafterSlope() != 0.42 {
		t.Errorf("explicit slope ignored: %v", withSlope.RafterSlope())
	}
}

func TestTotalLength(t *testing.T) {
	s := grandeSpec()
	if s.TotalLength(3) != 15 {
		t.Errorf("3 bays of 5m should span 15m, got %v", s.TotalLength(3))
	}
	if s.TotalLength(0) != 0 {
		t.Errorf("zero bays should span 0, got %v", s.TotalLength(0))
	}
}

func TestMiterFor(t *testing.T) {
	s := grandeSpec()
	opts := geometry.DefaultMiterOptions()
	params := s.MiterFor("rafter", opts)

	if !nearly(params.Slope, s.RafterSlope()) {
		t.Errorf("slope %v, want %v", params.Slope, s.RafterSlope())
	}
	wantTilt := float32(gomath.Atan(float64(s.RafterSlope())))
	if !nearly(params.TiltAngle, wantTilt) {
		t.Errorf("tilt %v, want %v", params.TiltAngle, wantTilt)
	}
	wantDrop := opts.MiterDrop(s.RafterSlope(), s.Profile("rafter").Width)
	if params.Drop != wantDrop {
		t.Errorf("drop %v, want %v", params.Drop, wantDrop)
	}
}
