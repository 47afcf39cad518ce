// Package math provides the small vector, colour and interpolation types the
// scene animates with. Matrix work is left to mathgl.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Lerp interpolates toward other. t=0 yields v and t=1 yields other exactly.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{Lerp(v.X, other.X, t), Lerp(v.Y, other.Y, t)}
}

// Clamp limits both components to [-limit, limit].
func (v Vec2) Clamp(limit float32) Vec2 {
	return Vec2{Clamp(v.X, -limit, limit), Clamp(v.Y, -limit, limit)}
}
