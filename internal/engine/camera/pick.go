package camera

import (
	"github.com/xglobaltents/3D-App/pkg/math"
)

// Unproject maps a normalized device coordinate at the given depth back to
// world space through the inverse of a combined view-projection matrix.
func Unproject(invViewProj math.Mat4, ndcX, ndcY, ndcZ float32) math.Vec3 {
	v := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, ndcZ, 1})
	if v[3] != 0 {
		return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// GroundPoint casts a ray through the given NDC position and intersects it
// with the ground plane at y = 0. Returns false when the ray misses the
// ground between the near and far planes.
func GroundPoint(viewProj math.Mat4, ndcX, ndcY float32) (math.Vec3, bool) {
	inv := viewProj.Inverse()
	near := Unproject(inv, ndcX, ndcY, -1)
	far := Unproject(inv, ndcX, ndcY, 1)

	dir := far.Sub(near)
	if math.Abs(dir.Y) < 1e-6 {
		return math.Vec3{}, false
	}
	t := -near.Y / dir.Y
	if t < 0 || t > 1 {
		return math.Vec3{}, false
	}
	return near.Add(dir.Scale(t)), true
}
