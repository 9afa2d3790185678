package tent

import (
	gomath "math"

	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/pkg/math"
)

// FrameLines returns the transverse frame line positions along the length
// axis for numBays bays: numBays+1 lines ("fence-post" rule), evenly spaced
// and symmetric about zero. Degenerate inputs return nil.
func FrameLines(numBays int, bayDistance float32) []float32 {
	if numBays < 1 || bayDistance <= 0 {
		return nil
	}
	total := float32(numBays) * bayDistance
	lines := make([]float32, numBays+1)
	for i := range lines {
		lines[i] = float32(i)*bayDistance - total/2
	}
	return lines
}

// ArchHeightAt returns the arch profile height at horizontal offset x from
// the centerline: ridge height at x=0, eave height at |x|=ArchOuterSpan. The
// cosine argument is clamped so float accumulation past the outer span cannot
// produce NaN.
func (s *Specification) ArchHeightAt(x float32) float32 {
	if s.ArchOuterSpan <= 0 {
		return s.EaveHeight
	}
	ratio := math.Clamp(math.Abs(x)/s.ArchOuterSpan, 0, 1)
	f := gomath.Sin(gomath.Acos(float64(ratio)))
	return s.EaveHeight + (s.RidgeHeight-s.EaveHeight)*float32(f)
}

// Bilateral emits one pair of transforms per frame line at x = ±offsetX,
// mirrored on the -X side. The result is always even-length: instances are
// ordered left/right per line.
func Bilateral(lines []float32, offsetX, y float32, rotation math.Vec3) []instance.Transform {
	out := make([]instance.Transform, 0, len(lines)*2)
	for _, z := range lines {
		out = append(out,
			instance.Transform{
				Position: math.Vec3{X: -offsetX, Y: y, Z: z},
				Rotation: rotation,
				Mirrored: true,
			},
			instance.Transform{
				Position: math.Vec3{X: offsetX, Y: y, Z: z},
				Rotation: rotation,
			},
		)
	}
	return out
}

// GableEnds emits exactly two transforms, one per tent end, for parts that
// appear once per gable rather than once per bay.
func (s *Specification) GableEnds(numBays int, x, y float32, rotation math.Vec3) []instance.Transform {
	if numBays < 1 || s.BayDistance <= 0 {
		return nil
	}
	halfLen := s.TotalLength(numBays) / 2
	return []instance.Transform{
		{Position: math.Vec3{X: x, Y: y, Z: -halfLen}, Rotation: rotation},
		{Position: math.Vec3{X: x, Y: y, Z: halfLen}, Rotation: rotation, Mirrored: true},
	}
}

// UprightPlan places the vertical frame uprights: two per frame line at the
// eave walls, inset by half the upright profile width.
func (s *Specification) UprightPlan(numBays int) []instance.Transform {
	if s.Validate() != nil {
		return nil
	}
	lines := FrameLines(numBays, s.BayDistance)
	inset := s.Profile("upright").Width / 2
	return Bilateral(lines, s.HalfWidth-inset, 0, math.Vec3{})
}

// BaseplatePlan places one baseplate under each upright.
func (s *Specification) BaseplatePlan(numBays int) []instance.Transform {
	if s.Validate() != nil {
		return nil
	}
	lines := FrameLines(numBays, s.BayDistance)
	return Bilateral(lines, s.HalfWidth-s.Baseplate.Footprint/2, 0, math.Vec3{})
}

// ArchRibPlan places the curved roof ribs: one pair per frame line, seated at
// eave height and tilted inward by the rafter slope angle.
func (s *Specification) ArchRibPlan(numBays int) []instance.Transform {
	if s.Validate() != nil {
		return nil
	}
	lines := FrameLines(numBays, s.BayDistance)
	tilt := float32(gomath.Atan(float64(s.RafterSlope())))
	out := make([]instance.Transform, 0, len(lines)*2)
	for _, z := range lines {
		out = append(out,
			instance.Transform{
				Position: math.Vec3{X: -s.HalfWidth, Y: s.EaveHeight, Z: z},
				Rotation: math.Vec3{Z: -tilt},
				Mirrored: true,
			},
			instance.Transform{
				Position: math.Vec3{X: s.HalfWidth, Y: s.EaveHeight, Z: z},
				Rotation: math.Vec3{Z: tilt},
			},
		)
	}
	return out
}

// ConnectorPlan places the eave connectors joining uprights to ribs, one pair
// per frame line at eave height.
func (s *Specification) ConnectorPlan(numBays int) []instance.Transform {
	if s.Validate() != nil {
		return nil
	}
	lines := FrameLines(numBays, s.BayDistance)
	inset := s.Profile("upright").Width / 2
	return Bilateral(lines, s.HalfWidth-inset, s.EaveHeight, math.Vec3{})
}

// PurlinClearance is the gap between the arch profile and a purlin's underside.
const PurlinClearance = 0.02

// PurlinPlan places one longitudinal purlin per configured X offset, spanning
// the full tent length, at arch height plus clearance. The Z scale stretches
// a unit-length template across the tent.
func (s *Specification) PurlinPlan(numBays int) []instance.Transform {
	if s.Validate() != nil || numBays < 1 {
		return nil
	}
	total := s.TotalLength(numBays)
	out := make([]instance.Transform, 0, len(s.PurlinOffsets))
	for _, x := range s.PurlinOffsets {
		out = append(out, instance.Transform{
			Position: math.Vec3{X: x, Y: s.ArchHeightAt(x) + PurlinClearance},
			Scale:    math.Vec3{X: 1, Y: 1, Z: total},
		})
	}
	return out
}

// GableSupportPlan places vertical supports on both gable ends at the
// configured X offsets, reaching from ground to the arch profile.
func (s *Specification) GableSupportPlan(numBays int) []instance.Transform {
	if s.Validate() != nil || numBays < 1 {
		return nil
	}
	halfLen := s.TotalLength(numBays) / 2
	out := make([]instance.Transform, 0, len(s.GableSupportOffsets)*2)
	for _, x := range s.GableSupportOffsets {
		height := s.ArchHeightAt(x)
		scale := math.Vec3{X: 1, Y: 1, Z: 1}
		if s.EaveHeight > 0 {
			scale.Y = height / s.EaveHeight
		}
		out = append(out,
			instance.Transform{Position: math.Vec3{X: x, Z: -halfLen}, Scale: scale},
			instance.Transform{Position: math.Vec3{X: x, Z: halfLen}, Scale: scale, Mirrored: true},
		)
	}
	return out
}
