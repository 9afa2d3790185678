package camera

import (
	"testing"

	"github.com/xglobaltents/3D-App/pkg/math"
)

func viewProj(eye, center math.Vec3) math.Mat4 {
	view := math.LookAt(eye, center, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(60), 1, 0.1, 100)
	return proj.Mul(view)
}

func TestGroundPointCenterRay(t *testing.T) {
	// The view axis passes through the origin on its way down.
	vp := viewProj(math.Vec3{Y: 10, Z: 10}, math.Vec3{})

	p, ok := GroundPoint(vp, 0, 0)
	if !ok {
		t.Fatal("center ray should hit the ground")
	}
	if math.Abs(p.X) > 1e-2 || math.Abs(p.Y) > 1e-2 || math.Abs(p.Z) > 1e-2 {
		t.Errorf("expected ground hit at origin, got %v", p)
	}
}

func TestGroundPointOffCenter(t *testing.T) {
	vp := viewProj(math.Vec3{Y: 10, Z: 10}, math.Vec3{})

	p, ok := GroundPoint(vp, 0.5, 0)
	if !ok {
		t.Fatal("off-center ray should still hit the ground")
	}
	if math.Abs(p.Y) > 1e-2 {
		t.Errorf("hit must lie on the ground plane, got y=%v", p.Y)
	}
	// Looking toward -Z the camera's right is +X.
	if p.X <= 0 {
		t.Errorf("ray right of center should land at positive X, got %v", p.X)
	}
}

func TestGroundPointMissesSky(t *testing.T) {
	// Camera near the ground looking up.
	vp := viewProj(math.Vec3{Y: 1}, math.Vec3{Y: 5, Z: -5})

	if _, ok := GroundPoint(vp, 0, 0); ok {
		t.Error("upward ray must not report a ground hit")
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	vp := viewProj(math.Vec3{X: 3, Y: 10, Z: 10}, math.Vec3{})

	world := math.Vec3{X: 1, Y: 2, Z: -3}
	clip := vp.MulVec4(math.Vec4{world.X, world.Y, world.Z, 1})
	if clip[3] == 0 {
		t.Fatal("point projected to w=0")
	}
	back := Unproject(vp.Inverse(), clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3])

	if math.Abs(back.X-world.X) > 1e-2 ||
		math.Abs(back.Y-world.Y) > 1e-2 ||
		math.Abs(back.Z-world.Z) > 1e-2 {
		t.Errorf("unproject(project(p)) = %v, want %v", back, world)
	}
}
