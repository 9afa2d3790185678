package tent

import (
	gomath "math"
	"testing"

	"github.com/xglobaltents/3D-App/pkg/math"
)

func grandeSpec() *Specification {
	spec, err := DefaultCatalog().Get("grande")
	if err != nil {
		panic(err)
	}
	return spec
}

func nearly(a, b float32) bool {
	d := float64(a - b)
	return gomath.Abs(d) < 1e-3
}

func TestFrameLinesFencePost(t *testing.T) {
	lines := FrameLines(3, 5)
	if len(lines) != 4 {
		t.Fatalf("3 bays need 4 frame lines, got %d", len(lines))
	}
	want := []float32{-7.5, -2.5, 2.5, 7.5}
	for i, z := range lines {
		if !nearly(z, want[i]) {
			t.Errorf("line %d at %v, want %v", i, z, want[i])
		}
	}
}

func TestFrameLinesSymmetry(t *testing.T) {
	for _, bays := range []int{1, 2, 7, 10} {
		lines := FrameLines(bays, 3.3)
		if len(lines) != bays+1 {
			t.Fatalf("%d bays: got %d lines", bays, len(lines))
		}
		for i := range lines {
			if !nearly(lines[i], -lines[len(lines)-1-i]) {
				t.Errorf("%d bays: lines not symmetric about zero: %v", bays, lines)
			}
		}
		// Even spacing
		for i := 1; i < len(lines); i++ {
			if !nearly(lines[i]-lines[i-1], 3.3) {
				t.Errorf("%d bays: uneven spacing: %v", bays, lines)
			}
		}
	}
}

func TestFrameLinesDegenerate(t *testing.T) {
	if FrameLines(0, 5) != nil {
		t.Error("zero bays should give nil")
	}
	if FrameLines(-1, 5) != nil {
		t.Error("negative bays should give nil")
	}
	if FrameLines(3, 0) != nil {
		t.Error("zero bay distance should give nil")
	}
}

func TestArchHeightAtEndpoints(t *testing.T) {
	s := grandeSpec()

	if h := s.ArchHeightAt(0); !nearly(h, s.RidgeHeight) {
		t.Errorf("centerline height %v, want ridge %v", h, s.RidgeHeight)
	}
	if h := s.ArchHeightAt(s.ArchOuterSpan); !nearly(h, s.EaveHeight) {
		t.Errorf("outer span height %v, want eave %v", h, s.EaveHeight)
	}
	if h := s.ArchHeightAt(-s.ArchOuterSpan); !nearly(h, s.EaveHeight) {
		t.Errorf("negative outer span height %v, want eave %v", h, s.EaveHeight)
	}
}

func TestArchHeightAtClampsPastSpan(t *testing.T) {
	s := grandeSpec()
	h := s.ArchHeightAt(s.ArchOuterSpan * 2)
	if gomath.IsNaN(float64(h)) {
		t.Fatal("height past the outer span must not be NaN")
	}
	if !nearly(h, s.EaveHeight) {
		t.Errorf("height past span %v, want eave %v", h, s.EaveHeight)
	}
}

func TestArchHeightAtMonotonic(t *testing.T) {
	s := grandeSpec()
	prev := s.ArchHeightAt(0)
	for x := float32(0.25); x <= s.ArchOuterSpan; x += 0.25 {
		h := s.ArchHeightAt(x)
		if h > prev+1e-4 {
			t.Fatalf("height increased moving outward at x=%v: %v > %v", x, h, prev)
		}
		prev = h
	}
}

func TestBilateral(t *testing.T) {
	lines := []float32{-5, 0, 5}
	out := Bilateral(lines, 7, 1.5, math.Vec3{})

	if len(out) != 6 {
		t.Fatalf("expected 6 transforms, got %d", len(out))
	}
	for i := 0; i < len(out); i += 2 {
		left, right := out[i], out[i+1]
		if left.Position.X != -7 || !left.Mirrored {
			t.Errorf("pair %d: bad left %+v", i/2, left)
		}
		if right.Position.X != 7 || right.Mirrored {
			t.Errorf("pair %d: bad right %+v", i/2, right)
		}
		if left.Position.Z != right.Position.Z {
			t.Errorf("pair %d: split across frame lines", i/2)
		}
		if left.Position.Y != 1.5 {
			t.Errorf("pair %d: wrong height %v", i/2, left.Position.Y)
		}
	}
}

func TestGableEnds(t *testing.T) {
	s := grandeSpec()
	out := s.GableEnds(4, 0, 0, math.Vec3{})

	if len(out) != 2 {
		t.Fatalf("gable parts appear exactly twice, got %d", len(out))
	}
	halfLen := s.TotalLength(4) / 2
	if !nearly(out[0].Position.Z, -halfLen) || !nearly(out[1].Position.Z, halfLen) {
		t.Errorf("gable ends misplaced: %+v", out)
	}
	if out[0].Mirrored || !out[1].Mirrored {
		t.Error("far gable end should be the mirrored one")
	}
}

func TestUprightPlanCount(t *testing.T) {
	s := grandeSpec()
	out := s.UprightPlan(3)
	if len(out) != 8 {
		t.Fatalf("3 bays need 8 uprights, got %d", len(out))
	}
}

func TestUprightPlanInset(t *testing.T) {
	s := grandeSpec()
	out := s.UprightPlan(1)
	inset := s.Profile("upright").Width / 2
	wantX := s.HalfWidth - inset
	for _, tr := range out {
		if !nearly(absF(tr.Position.X), wantX) {
			t.Errorf("upright at |x|=%v, want %v", absF(tr.Position.X), wantX)
		}
		if tr.Position.Y != 0 {
			t.Errorf("upright not at ground: %v", tr.Position.Y)
		}
	}
}

func TestBaseplatePlanMatchesUprights(t *testing.T) {
	s := grandeSpec()
	up := s.UprightPlan(2)
	bp := s.BaseplatePlan(2)
	if len(bp) != len(up) {
		t.Fatalf("one baseplate per upright: %d vs %d", len(bp), len(up))
	}
	for i := range bp {
		if bp[i].Position.Z != up[i].Position.Z {
			t.Errorf("baseplate %d not under its upright frame line", i)
		}
	}
}

func TestArchRibPlanTilt(t *testing.T) {
	s := grandeSpec()
	out := s.ArchRibPlan(1)
	if len(out) != 4 {
		t.Fatalf("1 bay needs 4 ribs, got %d", len(out))
	}

	tilt := float32(gomath.Atan(float64(s.RafterSlope())))
	for i := 0; i < len(out); i += 2 {
		left, right := out[i], out[i+1]
		if !nearly(left.Rotation.Z, -tilt) || !nearly(right.Rotation.Z, tilt) {
			t.Errorf("rib tilts not opposed: %v vs %v", left.Rotation.Z, right.Rotation.Z)
		}
		if !nearly(left.Position.Y, s.EaveHeight) {
			t.Errorf("rib not seated at eave height: %v", left.Position.Y)
		}
	}
}

func TestConnectorPlanAtEave(t *testing.T) {
	s := grandeSpec()
	for _, tr := range s.ConnectorPlan(2) {
		if !nearly(tr.Position.Y, s.EaveHeight) {
			t.Errorf("connector not at eave height: %v", tr.Position.Y)
		}
	}
}

func TestPurlinPlan(t *testing.T) {
	s := grandeSpec()
	out := s.PurlinPlan(3)
	if len(out) != len(s.PurlinOffsets) {
		t.Fatalf("expected %d purlins, got %d", len(s.PurlinOffsets), len(out))
	}
	total := s.TotalLength(3)
	for i, tr := range out {
		x := s.PurlinOffsets[i]
		if !nearly(tr.Position.X, x) {
			t.Errorf("purlin %d at x=%v, want %v", i, tr.Position.X, x)
		}
		wantY := s.ArchHeightAt(x) + PurlinClearance
		if !nearly(tr.Position.Y, wantY) {
			t.Errorf("purlin %d at y=%v, want %v", i, tr.Position.Y, wantY)
		}
		if !nearly(tr.Scale.Z, total) {
			t.Errorf("purlin %d z scale %v, want %v", i, tr.Scale.Z, total)
		}
	}
}

func TestGableSupportPlan(t *testing.T) {
	s := grandeSpec()
	out := s.GableSupportPlan(2)
	if len(out) != len(s.GableSupportOffsets)*2 {
		t.Fatalf("supports appear on both ends: got %d", len(out))
	}
	halfLen := s.TotalLength(2) / 2
	for i := 0; i < len(out); i += 2 {
		near, far := out[i], out[i+1]
		if !nearly(near.Position.Z, -halfLen) || !nearly(far.Position.Z, halfLen) {
			t.Errorf("support pair %d misplaced: %+v %+v", i/2, near.Position, far.Position)
		}
		x := s.GableSupportOffsets[i/2]
		wantScaleY := s.ArchHeightAt(x) / s.EaveHeight
		if !nearly(near.Scale.Y, wantScaleY) {
			t.Errorf("support at x=%v scale.Y=%v, want %v", x, near.Scale.Y, wantScaleY)
		}
	}
}

func TestPlansRejectDegenerateSpec(t *testing.T) {
	bad := &Specification{Name: "bad"}
	if out := bad.UprightPlan(3); out != nil {
		t.Error("degenerate spec should plan nothing")
	}
	if out := bad.PurlinPlan(3); out != nil {
		t.Error("degenerate spec should plan nothing")
	}
	if out := bad.GableSupportPlan(3); out != nil {
		t.Error("degenerate spec should plan nothing")
	}
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
