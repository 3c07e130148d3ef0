// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts an azimuth around +Y and an elevation above the
// horizon, both in degrees, to the unit vector pointing towards the sun.
// Azimuth 0 faces +Z.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(azimuth) * math.Pi / 180
	el := float64(elevation) * math.Pi / 180

	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// LightDirection returns the direction sunlight travels.
func LightDirection(azimuth, elevation float32) mgl32.Vec3 {
	return SunDirection(azimuth, elevation).Mul(-1)
}
