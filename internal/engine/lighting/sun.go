// Package lighting provides environment presets for 3D rendering.
package lighting

import "math"

// Environment is one lighting preset: sun angles plus light intensities.
// Presets are data; switching one swaps the whole struct, and the next frame
// reflects it.
type Environment struct {
	Name string

	// Sun angles in degrees: longitude is rotation around Y (0-360),
	// latitude is elevation from the horizon (0-90).
	SunLongitude float32
	SunLatitude  float32

	Ambient [3]float32
	Diffuse [3]float32
	Clear   [3]float32 // clear color
}

// SunDirection converts the preset's longitude/latitude angles to a
// normalized direction vector pointing towards the sun.
func (e Environment) SunDirection() [3]float32 {
	lonRad := float64(e.SunLongitude) * math.Pi / 180.0
	latRad := float64(e.SunLatitude) * math.Pi / 180.0

	// Spherical to Cartesian: longitude around Y, latitude up from horizon
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

// Presets returns the built-in environments by name.
func Presets() map[string]Environment {
	return map[string]Environment{
		"day": {
			Name:         "day",
			SunLongitude: 140,
			SunLatitude:  55,
			Ambient:      [3]float32{0.45, 0.45, 0.48},
			Diffuse:      [3]float32{0.85, 0.83, 0.78},
			Clear:        [3]float32{0.62, 0.75, 0.88},
		},
		"dusk": {
			Name:         "dusk",
			SunLongitude: 250,
			SunLatitude:  12,
			Ambient:      [3]float32{0.30, 0.26, 0.30},
			Diffuse:      [3]float32{0.80, 0.55, 0.35},
			Clear:        [3]float32{0.35, 0.28, 0.38},
		},
		"night": {
			Name:         "night",
			SunLongitude: 20,
			SunLatitude:  40,
			Ambient:      [3]float32{0.16, 0.17, 0.24},
			Diffuse:      [3]float32{0.22, 0.24, 0.34},
			Clear:        [3]float32{0.05, 0.06, 0.10},
		},
	}
}

// Preset returns the named environment, falling back to "day".
func Preset(name string) Environment {
	presets := Presets()
	if env, ok := presets[name]; ok {
		return env
	}
	return presets["day"]
}
