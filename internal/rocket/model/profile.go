package model

import (
	gomath "math"

	"github.com/Faultbox/launchpad/pkg/math"
)

// Profiles are (radius, height) from bottom to top.

func hullProfile() []math.Vec2 {
	return []math.Vec2{
		{X: 0, Y: -1.5},
		{X: 0.5, Y: -1.5},
		{X: 0.66, Y: -1.2},
		{X: 0.74, Y: -0.6},
		{X: 0.76, Y: 0},
		{X: 0.72, Y: 0.5},
		{X: 0.6, Y: 0.9},
		{X: 0, Y: 0.9},
	}
}

func noseProfile() []math.Vec2 {
	return []math.Vec2{
		{X: 0.6, Y: 0.9},
		{X: 0.52, Y: 1.2},
		{X: 0.36, Y: 1.55},
		{X: 0.16, Y: 1.8},
		{X: 0, Y: 1.9},
	}
}

func nozzleProfile() []math.Vec2 {
	return []math.Vec2{
		{X: 0.42, Y: -1.85},
		{X: 0.34, Y: -1.7},
		{X: 0.3, Y: -1.5},
	}
}

// flameProfile is a teardrop pointing down: tip at y = -16, nozzle at 0.
func flameProfile() []math.Vec2 {
	return []math.Vec2{
		{X: 0, Y: -16},
		{X: 2.5, Y: -11},
		{X: 4.5, Y: -6},
		{X: 5.8, Y: -2},
		{X: 6, Y: 0},
		{X: 0, Y: 0.5},
	}
}

// sphereProfile is a half circle of the given radius.
func sphereProfile(radius float32, steps int) []math.Vec2 {
	p := make([]math.Vec2, steps+1)
	for i := range p {
		a := -gomath.Pi/2 + gomath.Pi*float64(i)/float64(steps)
		p[i] = math.Vec2{
			X: radius * float32(gomath.Cos(a)),
			Y: radius * float32(gomath.Sin(a)),
		}
	}
	return p
}
