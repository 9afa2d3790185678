// Package tent defines tent specifications and the parametric placement
// planner that turns them into instance transforms.
package tent

import (
	"fmt"
	gomath "math"

	"github.com/xglobaltents/3D-App/internal/engine/geometry"
)

// Profile is the cross-section of a structural part, in meters.
type Profile struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Baseplate describes the baseplate assembly footprint.
type Baseplate struct {
	Footprint float32 `yaml:"footprint"`
	Height    float32 `yaml:"height"`
}

// Specification is the immutable per-variant record driving placement.
// All lengths are meters.
type Specification struct {
	Name          string  `yaml:"name"`
	Width         float32 `yaml:"width"`
	HalfWidth     float32 `yaml:"half_width"`
	EaveHeight    float32 `yaml:"eave_height"`
	RidgeHeight   float32 `yaml:"ridge_height"`
	BayDistance   float32 `yaml:"bay_distance"`
	ArchOuterSpan float32 `yaml:"arch_outer_span"`

	// EaveSlope is the precomputed rafter rise/run at the eave. Zero means
	// derive it from ridge/eave height and half-width.
	EaveSlope float32 `yaml:"eave_slope,omitempty"`

	Profiles  map[string]Profile `yaml:"profiles"`
	Baseplate Baseplate          `yaml:"baseplate"`

	GableSupportOffsets []float32 `yaml:"gable_support_offsets,omitempty"`
	PurlinOffsets       []float32 `yaml:"purlin_offsets,omitempty"`
}

// Validate reports the first degenerate dimension found, or nil.
func (s *Specification) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("nil specification")
	case s.HalfWidth <= 0:
		return fmt.Errorf("tent %q: half width must be positive, got %v", s.Name, s.HalfWidth)
	case s.BayDistance <= 0:
		return fmt.Errorf("tent %q: bay distance must be positive, got %v", s.Name, s.BayDistance)
	case s.EaveHeight <= 0:
		return fmt.Errorf("tent %q: eave height must be positive, got %v", s.Name, s.EaveHeight)
	case s.RidgeHeight < s.EaveHeight:
		return fmt.Errorf("tent %q: ridge height %v below eave height %v", s.Name, s.RidgeHeight, s.EaveHeight)
	case s.ArchOuterSpan <= 0:
		return fmt.Errorf("tent %q: arch outer span must be positive, got %v", s.Name, s.ArchOuterSpan)
	}
	return nil
}

// RafterSlope returns the rise/run at the eave, deriving it from ridge and
// eave heights when the specification does not carry a precomputed value.
func (s *Specification) RafterSlope() float32 {
	if s.EaveSlope > 0 {
		return s.EaveSlope
	}
	if s.HalfWidth <= 0 {
		return 0
	}
	return (s.RidgeHeight - s.EaveHeight) / s.HalfWidth
}

// Profile returns the named profile, or a zero profile when absent.
func (s *Specification) Profile(name string) Profile {
	return s.Profiles[name]
}

// TotalLength returns the tent length for the given bay count.
func (s *Specification) TotalLength(numBays int) float32 {
	if numBays < 1 {
		return 0
	}
	return float32(numBays) * s.BayDistance
}

// MiterParams holds the derived values feeding miter-cut vertex edits and
// instance-level tilt rotations.
type MiterParams struct {
	Slope     float32 // rise/run at the eave
	TiltAngle float32 // radians, atan(Slope)
	Drop      float32 // clamped vertical cut displacement, meters
}

// MiterFor derives miter parameters for a part with the named profile.
func (s *Specification) MiterFor(profileName string, opts geometry.MiterOptions) MiterParams {
	slope := s.RafterSlope()
	p := s.Profile(profileName)
	return MiterParams{
		Slope:     slope,
		TiltAngle: float32(gomath.Atan(float64(slope))),
		Drop:      opts.MiterDrop(slope, p.Width),
	}
}
